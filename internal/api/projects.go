package api

import (
	"net/http"
	"strconv"
)

const maxProjectBytes = 10 << 20

// ListProjects handles GET /projects.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	names, err := h.Projects.List(r.Context())
	if err != nil {
		h.fail(w, r, "listing projects", err)
		return
	}
	writeOK(w, envelope{"projects": names})
}

// SearchProjects handles GET /projects/search?q=&limit=.
func (h *Handler) SearchProjects(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.Projects.Search(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		h.fail(w, r, "project search", err)
		return
	}
	writeOK(w, envelope{"results": results})
}

// GetProject handles GET /projects/{name}.
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	p, err := h.Projects.Read(r.Context(), nameParam(r))
	if err != nil {
		h.fail(w, r, "reading project", err)
		return
	}
	writeOK(w, envelope{"name": p.Name, "content": p.Content})
}

// WriteProject handles POST /projects/{name}. It creates or overwrites.
func (h *Handler) WriteProject(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest
	if !decodeJSON(w, r, maxProjectBytes, &req) {
		return
	}
	if req.Content == nil {
		writeJSON(w, http.StatusBadRequest, errorBody("content is required"))
		return
	}
	name, err := h.Projects.Write(r.Context(), nameParam(r), *req.Content)
	if err != nil {
		h.fail(w, r, "saving project", err)
		return
	}
	writeOK(w, envelope{"name": name})
}

// DeleteProject handles DELETE /projects/{name}.
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.Projects.Delete(r.Context(), nameParam(r)); err != nil {
		h.fail(w, r, "deleting project", err)
		return
	}
	writeOK(w, nil)
}
