package internal

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Environment overrides applied after the config file.
const (
	EnvPort          = "PORT"
	EnvAdminPassword = "ADMIN_PASSWORD"
)

// Config represents the application configuration.
type Config struct {
	App   ApplicationConfig `yaml:"app"`
	Data  DataConfig        `yaml:"data"`
	Auth  AuthConfig        `yaml:"auth"`
	Probe ProbeConfig       `yaml:"probe"`
	Chat  ChatConfig        `yaml:"chat"`
	CORS  CORSConfig        `yaml:"cors"`

	// AdminPassword is the plaintext secret from ADMIN_PASSWORD. It is never
	// read from the file and wins over Auth.AdminPasswordHash.
	AdminPassword string `yaml:"-"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Data.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	if err := c.Probe.Validate(); err != nil {
		return err
	}
	return c.Chat.Validate()
}

// ApplyEnv overrides file values with PORT and ADMIN_PASSWORD when set.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup(EnvPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPort, err)
		}
		c.App.HTTP.Port = port
	}
	if v, ok := lookup(EnvAdminPassword); ok && v != "" {
		c.AdminPassword = v
	}
	return nil
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
	// StaticDir, if set, is served at / for the browser client.
	StaticDir string `yaml:"static_dir"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// DataConfig locates the persisted state.
type DataConfig struct {
	DocumentPath string `yaml:"document_path"`
	ProjectsDir  string `yaml:"projects_dir"`
	IndexPath    string `yaml:"index_path"`
}

// Validate validates the data configuration.
func (c *DataConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DocumentPath, validation.Required),
		validation.Field(&c.ProjectsDir, validation.Required),
		validation.Field(&c.IndexPath, validation.Required),
	)
}

// AuthConfig holds authentication configuration.
//
// Mode controls bearer-token enforcement on write routes:
//   - "disabled" (default): writes are open.
//   - "token": writes need "Authorization: Bearer <Token>".
//
// AdminPasswordHash is the bcrypt hash checked by the login route.
type AuthConfig struct {
	Mode              string `yaml:"mode"`
	Token             string `yaml:"token"`
	AdminPasswordHash string `yaml:"admin_password_hash"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when write routes need a token.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// ProbeConfig configures link status checks.
type ProbeConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

// Validate validates the probe configuration.
func (c *ProbeConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Timeout, validation.Required, validation.Min(100*time.Millisecond)),
	)
}

// ChatConfig configures the Ollama proxy client.
type ChatConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

// Validate validates the chat configuration.
func (c *ChatConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Timeout, validation.Required, validation.Min(time.Second)),
	)
}

// CORSConfig lists origins allowed to call the API from a browser.
// Empty allows any origin.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 3000,
			},
		},
		Data: DataConfig{
			DocumentPath: "./data/dashboard.json",
			ProjectsDir:  "./data/projects",
			IndexPath:    "./data/index.db",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
		Probe: ProbeConfig{Timeout: 5 * time.Second},
		Chat:  ChatConfig{Timeout: 10 * time.Second},
	}
}
