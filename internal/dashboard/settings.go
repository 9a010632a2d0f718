package dashboard

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/portal/internal/apperr"
	"github.com/starford/portal/internal/models"
	"github.com/starford/portal/internal/store"
)

// Settings is the configuration registry. Each setter validates first and
// replaces the whole stored value on success.
type Settings struct {
	store *store.Store
}

// NewSettings creates a settings registry.
func NewSettings(st *store.Store) *Settings {
	return &Settings{store: st}
}

func (s *Settings) read(fn func(doc *models.Document)) {
	s.store.View(fn)
}

func (s *Settings) write(fn func(doc *models.Document)) error {
	return s.store.Update(func(doc *models.Document) error {
		fn(doc)
		return nil
	}, store.TopicSettings)
}

// SiteTitle returns the site title.
func (s *Settings) SiteTitle(_ context.Context) (title string) {
	s.read(func(doc *models.Document) { title = doc.SiteTitle })
	return title
}

// SetSiteTitle stores a non-blank title.
func (s *Settings) SetSiteTitle(_ context.Context, title string) (string, error) {
	title = strings.TrimSpace(title)
	if err := validation.Validate(title, validation.Required.Error("title is required")); err != nil {
		return "", apperr.Validation("%s", err.Error())
	}
	return title, s.write(func(doc *models.Document) { doc.SiteTitle = title })
}

// HomepageMessage returns the homepage message.
func (s *Settings) HomepageMessage(_ context.Context) (msg string) {
	s.read(func(doc *models.Document) { msg = doc.HomepageMessage })
	return msg
}

// SetHomepageMessage stores a non-blank homepage message.
func (s *Settings) SetHomepageMessage(_ context.Context, msg string) (string, error) {
	msg = strings.TrimSpace(msg)
	if err := validation.Validate(msg, validation.Required.Error("message is required")); err != nil {
		return "", apperr.Validation("%s", err.Error())
	}
	return msg, s.write(func(doc *models.Document) { doc.HomepageMessage = msg })
}

// ChatConfig returns the chat provider settings.
func (s *Settings) ChatConfig(_ context.Context) (cfg models.ChatConfig) {
	s.read(func(doc *models.Document) { cfg = doc.ChatConfig })
	return cfg
}

// SetChatConfig replaces the chat provider settings.
func (s *Settings) SetChatConfig(_ context.Context, cfg models.ChatConfig) (models.ChatConfig, error) {
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	cfg.APIURL = strings.TrimSpace(cfg.APIURL)
	cfg.ChatflowID = strings.TrimSpace(cfg.ChatflowID)
	cfg.OllamaBaseURL = strings.TrimRight(strings.TrimSpace(cfg.OllamaBaseURL), "/")
	cfg.OllamaModel = strings.TrimSpace(cfg.OllamaModel)
	if err := cfg.Validate(); err != nil {
		return models.ChatConfig{}, apperr.Validation("%s", err.Error())
	}
	return cfg, s.write(func(doc *models.Document) { doc.ChatConfig = cfg })
}

// FilterConfig returns the response filter settings.
func (s *Settings) FilterConfig(_ context.Context) (cfg models.FilterConfig) {
	s.read(func(doc *models.Document) { cfg = doc.FilterConfig })
	return cfg
}

// SetFilterConfig replaces the response filter settings. A disabled filter
// with a blank keyword keeps the default keyword.
func (s *Settings) SetFilterConfig(_ context.Context, cfg models.FilterConfig) (models.FilterConfig, error) {
	cfg.Keyword = strings.TrimSpace(cfg.Keyword)
	if err := cfg.Validate(); err != nil {
		return models.FilterConfig{}, apperr.Validation("%s", err.Error())
	}
	if cfg.Keyword == "" {
		cfg.Keyword = models.DefaultFilterKeyword
	}
	return cfg, s.write(func(doc *models.Document) { doc.FilterConfig = cfg })
}

// ColorConfig returns the theme color settings.
func (s *Settings) ColorConfig(_ context.Context) (cfg models.ColorConfig) {
	s.read(func(doc *models.Document) { cfg = doc.ColorConfig })
	return cfg
}

// SetColorConfig replaces the theme color. The color must be #RRGGBB.
func (s *Settings) SetColorConfig(_ context.Context, cfg models.ColorConfig) (models.ColorConfig, error) {
	cfg.PrimaryColor = strings.TrimSpace(cfg.PrimaryColor)
	if err := cfg.Validate(); err != nil {
		return models.ColorConfig{}, apperr.Validation("%s", err.Error())
	}
	return cfg, s.write(func(doc *models.Document) { doc.ColorConfig = cfg })
}
