package api

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/starford/portal/internal/apperr"
)

// Handler holds API route handlers.
type Handler struct {
	Deps
}

// NewHandler creates a new Handler.
func NewHandler(d Deps) *Handler {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Images == nil {
		d.Images = &http.Client{Timeout: 30 * time.Second}
	}
	return &Handler{Deps: d}
}

// idParam parses the {id} URL parameter.
func idParam(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, apperr.Validation("invalid id")
	}
	return id, nil
}

// nameParam returns the {name} URL parameter, unescaping encoded characters.
func nameParam(r *http.Request) string {
	raw := chi.URLParam(r, "name")
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// Login handles POST /admin/login. It verifies the admin password and
// issues no session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, maxBodyBytes, &req) {
		return
	}
	if h.Verifier == nil || !h.Verifier.Verify(req.Password) {
		h.fail(w, r, "login", apperr.Unauthorized("invalid password"))
		return
	}
	writeOK(w, nil)
}
