package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/portal/internal/auth"
	"github.com/starford/portal/internal/chat"
	"github.com/starford/portal/internal/dashboard"
	"github.com/starford/portal/internal/projects"
)

// ChatClient is the Ollama proxy used by the chat routes.
type ChatClient interface {
	Models(ctx context.Context, baseURL string) ([]chat.Model, error)
	Chat(ctx context.Context, baseURL, model string, messages []chat.Message) (string, error)
}

// Deps are the services behind the API.
type Deps struct {
	Logger     *slog.Logger
	Links      *dashboard.Links
	Categories *dashboard.Categories
	Settings   *dashboard.Settings
	Projects   *projects.Service
	Verifier   auth.Verifier
	Chat       ChatClient
	// Images fetches upstream images for the image proxy. Nil uses a
	// client with a 30s timeout.
	Images *http.Client
	// Events, if non-nil, is mounted at GET /events.
	Events http.Handler

	AuthEnabled bool
	AuthToken   string
}

// NewRouter creates a chi router with all API routes mounted. Reads are open;
// writes go through AuthMiddleware.
func NewRouter(d Deps) chi.Router {
	h := NewHandler(d)

	r := chi.NewRouter()

	r.Post("/admin/login", h.Login)

	r.Get("/links", h.ListLinks)
	r.Get("/categories", h.ListCategories)
	r.Get("/homepage-message", h.GetHomepageMessage)
	r.Get("/site-title", h.GetSiteTitle)
	r.Get("/chat-config", h.GetChatConfig)
	r.Get("/filter-config", h.GetFilterConfig)
	r.Get("/color-config", h.GetColorConfig)
	r.Get("/ollama-models", h.OllamaModels)
	r.Post("/ollama-chat", h.OllamaChat)
	r.Get("/image-proxy", h.ImageProxy)
	r.Post("/status/{id}", h.LinkStatus)

	r.Get("/projects", h.ListProjects)
	r.Get("/projects/search", h.SearchProjects)
	r.Get("/projects/{name}", h.GetProject)

	if d.Events != nil {
		r.Get("/events", d.Events.ServeHTTP)
	}

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(d.AuthEnabled, d.AuthToken))

		r.Post("/links", h.CreateLink)
		r.Put("/links/{id}", h.UpdateLink)
		r.Delete("/links/{id}", h.DeleteLink)

		r.Post("/categories", h.CreateCategory)
		r.Post("/categories/reorder", h.ReorderCategories)
		r.Put("/categories/{id}", h.RenameCategory)
		r.Delete("/categories/{id}", h.DeleteCategory)
		r.Patch("/categories/{id}/privacy", h.SetCategoryPrivacy)

		r.Post("/homepage-message", h.SetHomepageMessage)
		r.Post("/site-title", h.SetSiteTitle)
		r.Post("/chat-config", h.SetChatConfig)
		r.Post("/filter-config", h.SetFilterConfig)
		r.Post("/color-config", h.SetColorConfig)

		r.Post("/projects/{name}", h.WriteProject)
		r.Delete("/projects/{name}", h.DeleteProject)
	})

	return r
}
