package api

import "net/http"

// ListCategories handles GET /categories.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	writeOK(w, envelope{"categories": h.Categories.List(r.Context())})
}

// CreateCategory handles POST /categories.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if !decodeJSON(w, r, maxBodyBytes, &req) {
		return
	}
	c, err := h.Categories.Create(r.Context(), req.Name)
	if err != nil {
		h.fail(w, r, "category creation", err)
		return
	}
	writeOK(w, envelope{"category": c})
}

// RenameCategory handles PUT /categories/{id}.
func (h *Handler) RenameCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.fail(w, r, "category update", err)
		return
	}
	var req CategoryRequest
	if !decodeJSON(w, r, maxBodyBytes, &req) {
		return
	}
	c, err := h.Categories.Rename(r.Context(), id, req.Name)
	if err != nil {
		h.fail(w, r, "category update", err)
		return
	}
	writeOK(w, envelope{"category": c})
}

// DeleteCategory handles DELETE /categories/{id}. Links in the category are
// kept with a null categoryId.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.fail(w, r, "category deletion", err)
		return
	}
	if err := h.Categories.Delete(r.Context(), id); err != nil {
		h.fail(w, r, "category deletion", err)
		return
	}
	writeOK(w, nil)
}

// SetCategoryPrivacy handles PATCH /categories/{id}/privacy.
func (h *Handler) SetCategoryPrivacy(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.fail(w, r, "privacy update", err)
		return
	}
	var req PrivacyRequest
	if !decodeJSON(w, r, maxBodyBytes, &req) {
		return
	}
	if req.Private == nil {
		writeJSON(w, http.StatusBadRequest, errorBody("private must be a boolean"))
		return
	}
	c, err := h.Categories.SetPrivacy(r.Context(), id, *req.Private)
	if err != nil {
		h.fail(w, r, "privacy update", err)
		return
	}
	writeOK(w, envelope{"category": c})
}

// ReorderCategories handles POST /categories/reorder.
func (h *Handler) ReorderCategories(w http.ResponseWriter, r *http.Request) {
	var req ReorderRequest
	if !decodeJSON(w, r, maxBodyBytes, &req) {
		return
	}
	if req.CategoryOrder == nil {
		writeJSON(w, http.StatusBadRequest, errorBody("categoryOrder must be an array"))
		return
	}
	cs, err := h.Categories.Reorder(r.Context(), req.CategoryOrder)
	if err != nil {
		h.fail(w, r, "category reorder", err)
		return
	}
	writeOK(w, envelope{"categories": cs})
}
