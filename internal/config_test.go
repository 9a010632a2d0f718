package internal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	pkgconfig "github.com/starford/portal/pkg/config"
)

func TestAuthConfig_DisabledMode(t *testing.T) {
	cfg := AuthConfig{Mode: "disabled", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled mode should pass: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_TokenMode(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: "mysecret"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("token mode with token should pass: %v", err)
	}
	if !cfg.AuthEnabled() {
		t.Error("token mode should be enabled")
	}

	cfg = AuthConfig{Mode: "token"}
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("empty token: %v", err)
	}
}

func TestAuthConfig_InvalidMode(t *testing.T) {
	cfg := AuthConfig{Mode: "magic", Token: "x"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestDefaultConfigValid(t *testing.T) {
	if err := NewDefaultConfig().Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port", func(c *Config) { c.App.HTTP.Port = 70000 }},
		{"document path", func(c *Config) { c.Data.DocumentPath = "" }},
		{"projects dir", func(c *Config) { c.Data.ProjectsDir = "" }},
		{"probe timeout", func(c *Config) { c.Probe.Timeout = time.Millisecond }},
		{"chat timeout", func(c *Config) { c.Chat.Timeout = 0 }},
		{"auth", func(c *Config) { c.Auth = AuthConfig{Mode: "token"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{EnvPort: "9090", EnvAdminPassword: "pw"}
	lookup := func(k string) (string, bool) { v, ok := env[k]; return v, ok }

	cfg := NewDefaultConfig()
	if err := cfg.ApplyEnv(lookup); err != nil {
		t.Fatal(err)
	}
	if cfg.App.HTTP.Port != 9090 || cfg.AdminPassword != "pw" {
		t.Errorf("port = %d, password = %q", cfg.App.HTTP.Port, cfg.AdminPassword)
	}

	env[EnvPort] = "http"
	if err := cfg.ApplyEnv(lookup); err == nil {
		t.Error("expected error for non-numeric port")
	}
}

func TestLoadConfigFile(t *testing.T) {
	t.Setenv("PORTAL_TEST_TOKEN", "from-env")
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
app:
  http:
    port: 8088
data:
  document_path: /tmp/doc.json
  projects_dir: /tmp/projects
  index_path: /tmp/index.db
auth:
  mode: token
  token: ${PORTAL_TEST_TOKEN}
probe:
  timeout: 2s
cors:
  allowed_origins: ["https://dash.example"]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := NewDefaultConfig()
	if err := pkgconfig.Load(path, cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.App.HTTP.Port != 8088 || cfg.Auth.Token != "from-env" || cfg.Probe.Timeout != 2*time.Second {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Chat.Timeout != 10*time.Second {
		t.Errorf("unset chat timeout lost its default: %v", cfg.Chat.Timeout)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 {
		t.Errorf("origins = %v", cfg.CORS.AllowedOrigins)
	}
}
