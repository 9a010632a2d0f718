package api

import (
	"net/http"
	"strings"
)

// ListLinks handles GET /links.
func (h *Handler) ListLinks(w http.ResponseWriter, r *http.Request) {
	writeOK(w, envelope{"links": h.Links.List(r.Context())})
}

// CreateLink handles POST /links.
func (h *Handler) CreateLink(w http.ResponseWriter, r *http.Request) {
	var req LinkRequest
	if !decodeJSON(w, r, maxBodyBytes, &req) {
		return
	}
	link, err := h.Links.Create(r.Context(), req.input())
	if err != nil {
		h.fail(w, r, "link creation", err)
		return
	}
	writeOK(w, envelope{"link": link})
}

// UpdateLink handles PUT /links/{id}.
func (h *Handler) UpdateLink(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.fail(w, r, "link update", err)
		return
	}
	var req LinkRequest
	if !decodeJSON(w, r, maxBodyBytes, &req) {
		return
	}
	link, err := h.Links.Update(r.Context(), id, req.input())
	if err != nil {
		h.fail(w, r, "link update", err)
		return
	}
	writeOK(w, envelope{"link": link})
}

// DeleteLink handles DELETE /links/{id}.
func (h *Handler) DeleteLink(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.fail(w, r, "link deletion", err)
		return
	}
	if err := h.Links.Delete(r.Context(), id); err != nil {
		h.fail(w, r, "link deletion", err)
		return
	}
	writeOK(w, nil)
}

// LinkStatus handles POST /status/{id}. The URL in the body wins; without
// one the stored link's URL is probed.
func (h *Handler) LinkStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.fail(w, r, "status check", err)
		return
	}
	var req StatusRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, maxBodyBytes, &req) {
		return
	}
	target := strings.TrimSpace(req.URL)
	if target == "" {
		link, err := h.Links.Get(r.Context(), id)
		if err != nil {
			h.fail(w, r, "status check", err)
			return
		}
		target = link.URL
	}

	status := "offline"
	if h.Links.CheckStatus(r.Context(), target) {
		status = "online"
	}
	writeOK(w, envelope{"status": status})
}
