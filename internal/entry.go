// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"

	"github.com/starford/portal/internal/api"
	"github.com/starford/portal/internal/chat"
	"github.com/starford/portal/internal/index"
	"github.com/starford/portal/internal/mcpserver"
	"github.com/starford/portal/internal/sse"
	"github.com/starford/portal/internal/store"
)

func (a *application) logger() *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(a.logOut, &slog.HandlerOptions{
		Level: a.config.App.LogLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// Run starts the HTTP server, the projects watcher and the SSE broker and
// blocks until ctx is cancelled or a shutdown signal arrives.
func Run(ctx context.Context, opts ...Option) error {
	app := newApplication(opts)
	if app.config == nil {
		return fmt.Errorf("config is required")
	}
	cfg := app.config
	logger := app.logger()

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("document_path", cfg.Data.DocumentPath),
		slog.String("projects_dir", cfg.Data.ProjectsDir),
		slog.String("index_path", cfg.Data.IndexPath),
		slog.String("auth_mode", cfg.Auth.Mode),
		slog.String("log_level", cfg.App.LogLevel.String()))

	svc, err := newServices(cfg, logger)
	if err != nil {
		return err
	}
	defer svc.Close()

	verifier, err := newVerifier(cfg, logger)
	if err != nil {
		return err
	}

	broker := sse.NewBroker(2 * time.Second)
	defer broker.Close()
	svc.store.OnChange(func(topics ...store.Topic) {
		for _, t := range topics {
			broker.PublishChange(string(t))
		}
	})

	handler := newHTTPHandler(cfg, api.Deps{
		Logger:      logger,
		Links:       svc.links,
		Categories:  svc.categories,
		Settings:    svc.settings,
		Projects:    svc.projects,
		Verifier:    verifier,
		Chat:        chat.NewOllama(cfg.Chat.Timeout),
		Events:      broker,
		AuthEnabled: cfg.Auth.AuthEnabled(),
		AuthToken:   cfg.Auth.Token,
	})

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := index.Watch(gCtx, svc.index, svc.files, svc.files.Root(), logger, func(kind, name string) {
			broker.PublishProjectEvent(kind, name)
		})
		if err != nil {
			logger.Warn("watcher unavailable", slog.String("error", err.Error()))
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}
		// Stops the watcher once the server is down.
		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	svc.store.Save()
	logger.Info("Server stopped successfully")
	return nil
}

var errShutdown = errors.New("shutdown")

// newHTTPHandler builds the root handler: middleware, health checks, the API
// under /api and, when configured, the static client at /.
func newHTTPHandler(cfg *Config, deps api.Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	health := func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
	r.Get("/health/live", health)
	r.Get("/health/ready", health)

	r.Mount("/api", api.NewRouter(deps))

	if cfg.App.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(cfg.App.StaticDir)))
	}

	origins := cfg.CORS.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "Range", "Last-Event-ID"},
		ExposedHeaders: []string{"Content-Range", "Accept-Ranges", "Content-Length"},
	}).Handler(r)
}

// RunMCP serves the dashboard tools over stdio. Logs go to the configured
// writer so stdout stays reserved for the protocol.
func RunMCP(_ context.Context, opts ...Option) error {
	app := newApplication(append([]Option{WithLogOutput(os.Stderr)}, opts...))
	if app.config == nil {
		return fmt.Errorf("config is required")
	}
	logger := app.logger()

	svc, err := newServices(app.config, logger)
	if err != nil {
		return err
	}
	defer svc.Close()

	srv := mcpserver.New(mcpserver.Deps{
		Links:      svc.links,
		Categories: svc.categories,
		Settings:   svc.settings,
		Projects:   svc.projects,
	}, app.version)

	logger.Info("MCP server starting on stdio", slog.String("version", app.version))
	return srv.ServeStdio()
}
