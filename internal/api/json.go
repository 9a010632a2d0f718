package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/starford/portal/internal/apperr"
)

// envelope is the response body shape: success plus named data fields.
type envelope map[string]any

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", slog.String("error", err.Error()))
	}
}

func writeOK(w http.ResponseWriter, data envelope) {
	body := envelope{"success": true}
	for k, v := range data {
		body[k] = v
	}
	writeJSON(w, http.StatusOK, body)
}

func errorBody(msg string) envelope {
	return envelope{"success": false, "error": msg}
}

// decodeJSON reads a JSON request body into v. A failure has already been
// answered with 400 when it returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return false
	}
	return true
}

// fail maps err onto a status code. Unclassified errors are logged and
// answered with a generic message naming op.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorBody(apperr.Message(err, "invalid request")))
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody(apperr.Message(err, "not found")))
	case errors.Is(err, apperr.ErrForbidden):
		writeJSON(w, http.StatusBadRequest, errorBody(apperr.Message(err, "operation not allowed")))
	case errors.Is(err, apperr.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorBody(apperr.Message(err, "unauthorized")))
	default:
		h.Logger.Error(op+" failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("server error during "+op))
	}
}
