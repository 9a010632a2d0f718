package internal

import (
	"fmt"
	"log/slog"

	"github.com/starford/portal/internal/auth"
	"github.com/starford/portal/internal/dashboard"
	"github.com/starford/portal/internal/index"
	"github.com/starford/portal/internal/models"
	"github.com/starford/portal/internal/probe"
	"github.com/starford/portal/internal/projects"
	"github.com/starford/portal/internal/storage"
	"github.com/starford/portal/internal/store"
)

// services is the domain layer shared by the HTTP server and the MCP server.
type services struct {
	store      *store.Store
	files      *storage.FS
	index      *index.DB
	links      *dashboard.Links
	categories *dashboard.Categories
	settings   *dashboard.Settings
	projects   *projects.Service
}

func newServices(cfg *Config, logger *slog.Logger) (*services, error) {
	st := store.New(cfg.Data.DocumentPath, logger)
	st.Load()

	files, err := storage.NewFS(cfg.Data.ProjectsDir, models.ProjectExt)
	if err != nil {
		return nil, fmt.Errorf("init projects dir: %w", err)
	}

	db, err := index.Open(cfg.Data.IndexPath)
	if err != nil {
		return nil, fmt.Errorf("init index: %w", err)
	}
	if err := index.Sync(db, files, logger); err != nil {
		logger.Warn("initial sync failed", slog.String("error", err.Error()))
	}

	return &services{
		store:      st,
		files:      files,
		index:      db,
		links:      dashboard.NewLinks(st, probe.NewHTTPChecker(cfg.Probe.Timeout)),
		categories: dashboard.NewCategories(st),
		settings:   dashboard.NewSettings(st),
		projects:   projects.NewService(files, db, logger),
	}, nil
}

func (s *services) Close() error {
	return s.index.Close()
}

// newVerifier prefers the ADMIN_PASSWORD override over the configured hash.
func newVerifier(cfg *Config, logger *slog.Logger) (auth.Verifier, error) {
	if cfg.AdminPassword != "" {
		v, err := auth.FromPassword(cfg.AdminPassword)
		if err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
		return v, nil
	}
	if cfg.Auth.AdminPasswordHash == "" {
		logger.Warn("no admin password configured, login will always fail")
	}
	return auth.NewBcrypt(cfg.Auth.AdminPasswordHash), nil
}
