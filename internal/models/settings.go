package models

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Scalar setting defaults.
const (
	DefaultSiteTitle       = "My Dashboard"
	DefaultHomepageMessage = "Welcome"
	DefaultPrimaryColor    = "#4a90e2"
	DefaultOllamaBaseURL   = "http://localhost:11434"
	// DefaultFilterKeyword marks the end of a reasoning preamble in model output.
	DefaultFilterKeyword = "</think>"
)

// Chat providers.
const (
	ProviderFlowise = "flowise"
	ProviderOllama  = "ollama"
	ProviderNone    = "none"
)

// HexColor matches a 6-digit hex color such as #ABCDEF.
var HexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ChatConfig selects the AI chat backend. Fields that do not apply to the
// selected provider may be left empty.
type ChatConfig struct {
	Provider      string `json:"provider"`
	APIURL        string `json:"apiUrl"`
	ChatflowID    string `json:"chatflowId"`
	OllamaBaseURL string `json:"ollamaBaseUrl"`
	OllamaModel   string `json:"ollamaModel"`
}

// DefaultChatConfig returns the chat settings of a fresh install.
func DefaultChatConfig() ChatConfig {
	return ChatConfig{
		Provider:      ProviderNone,
		OllamaBaseURL: DefaultOllamaBaseURL,
	}
}

// Validate validates the chat configuration.
func (c ChatConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Provider, validation.Required, validation.In(ProviderFlowise, ProviderOllama, ProviderNone)),
		validation.Field(&c.APIURL, validation.When(c.Provider == ProviderFlowise, validation.Required)),
		validation.Field(&c.OllamaBaseURL, validation.When(c.Provider == ProviderOllama, validation.Required)),
	)
}

// FilterConfig controls truncation of reasoning preambles in chat responses.
type FilterConfig struct {
	Enabled bool   `json:"enabled"`
	Keyword string `json:"keyword"`
}

// DefaultFilterConfig returns the filter settings of a fresh install.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{Enabled: false, Keyword: DefaultFilterKeyword}
}

// Validate validates the filter configuration.
func (c FilterConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Keyword, validation.When(c.Enabled, validation.Required)),
	)
}

// Apply drops everything up to and including the last occurrence of the
// keyword. Text without the keyword is returned unchanged.
func (c FilterConfig) Apply(text string) string {
	if !c.Enabled || c.Keyword == "" {
		return text
	}
	i := strings.LastIndex(text, c.Keyword)
	if i < 0 {
		return text
	}
	return strings.TrimSpace(text[i+len(c.Keyword):])
}

// ColorConfig holds the theme color.
type ColorConfig struct {
	PrimaryColor string `json:"primaryColor"`
}

// DefaultColorConfig returns the theme of a fresh install.
func DefaultColorConfig() ColorConfig {
	return ColorConfig{PrimaryColor: DefaultPrimaryColor}
}

// Validate validates the color configuration.
func (c ColorConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.PrimaryColor, validation.Required, validation.Match(HexColor).Error("must be a 6-digit hex color like #ABCDEF")),
	)
}
