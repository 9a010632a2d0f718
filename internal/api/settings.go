package api

import (
	"net/http"

	"github.com/starford/portal/internal/models"
)

// GetHomepageMessage handles GET /homepage-message.
func (h *Handler) GetHomepageMessage(w http.ResponseWriter, r *http.Request) {
	writeOK(w, envelope{"message": h.Settings.HomepageMessage(r.Context())})
}

// SetHomepageMessage handles POST /homepage-message.
func (h *Handler) SetHomepageMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if !decodeJSON(w, r, maxBodyBytes, &req) {
		return
	}
	msg, err := h.Settings.SetHomepageMessage(r.Context(), req.Message)
	if err != nil {
		h.fail(w, r, "homepage message update", err)
		return
	}
	writeOK(w, envelope{"message": msg})
}

// GetSiteTitle handles GET /site-title.
func (h *Handler) GetSiteTitle(w http.ResponseWriter, r *http.Request) {
	writeOK(w, envelope{"title": h.Settings.SiteTitle(r.Context())})
}

// SetSiteTitle handles POST /site-title.
func (h *Handler) SetSiteTitle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
	}
	if !decodeJSON(w, r, maxBodyBytes, &req) {
		return
	}
	title, err := h.Settings.SetSiteTitle(r.Context(), req.Title)
	if err != nil {
		h.fail(w, r, "site title update", err)
		return
	}
	writeOK(w, envelope{"title": title})
}

// GetChatConfig handles GET /chat-config.
func (h *Handler) GetChatConfig(w http.ResponseWriter, r *http.Request) {
	writeOK(w, envelope{"config": h.Settings.ChatConfig(r.Context())})
}

// SetChatConfig handles POST /chat-config.
func (h *Handler) SetChatConfig(w http.ResponseWriter, r *http.Request) {
	var cfg models.ChatConfig
	if !decodeJSON(w, r, maxBodyBytes, &cfg) {
		return
	}
	saved, err := h.Settings.SetChatConfig(r.Context(), cfg)
	if err != nil {
		h.fail(w, r, "chat config update", err)
		return
	}
	writeOK(w, envelope{"config": saved})
}

// GetFilterConfig handles GET /filter-config.
func (h *Handler) GetFilterConfig(w http.ResponseWriter, r *http.Request) {
	writeOK(w, envelope{"config": h.Settings.FilterConfig(r.Context())})
}

// SetFilterConfig handles POST /filter-config.
func (h *Handler) SetFilterConfig(w http.ResponseWriter, r *http.Request) {
	var cfg models.FilterConfig
	if !decodeJSON(w, r, maxBodyBytes, &cfg) {
		return
	}
	saved, err := h.Settings.SetFilterConfig(r.Context(), cfg)
	if err != nil {
		h.fail(w, r, "filter config update", err)
		return
	}
	writeOK(w, envelope{"config": saved})
}

// GetColorConfig handles GET /color-config.
func (h *Handler) GetColorConfig(w http.ResponseWriter, r *http.Request) {
	writeOK(w, envelope{"config": h.Settings.ColorConfig(r.Context())})
}

// SetColorConfig handles POST /color-config.
func (h *Handler) SetColorConfig(w http.ResponseWriter, r *http.Request) {
	var cfg models.ColorConfig
	if !decodeJSON(w, r, maxBodyBytes, &cfg) {
		return
	}
	saved, err := h.Settings.SetColorConfig(r.Context(), cfg)
	if err != nil {
		h.fail(w, r, "color config update", err)
		return
	}
	writeOK(w, envelope{"config": saved})
}
