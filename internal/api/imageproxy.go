package api

import (
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/starford/portal/internal/apperr"
)

// Response headers copied from the upstream image.
var proxiedHeaders = []string{
	"Content-Type",
	"Content-Length",
	"Content-Range",
	"Accept-Ranges",
	"Cache-Control",
}

// ImageProxy handles GET /image-proxy?url=. It streams the upstream body and
// forwards Range so partial content works.
func (h *Handler) ImageProxy(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("url"))
	if raw == "" {
		h.fail(w, r, "image proxy", apperr.Validation("url parameter is required"))
		return
	}
	target, err := url.Parse(raw)
	if err != nil || (target.Scheme != "http" && target.Scheme != "https") || target.Host == "" {
		h.fail(w, r, "image proxy", apperr.Validation("url must be an absolute http(s) URL"))
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, target.String(), nil)
	if err != nil {
		h.fail(w, r, "image proxy", apperr.Upstream(err, "image proxy: build request"))
		return
	}
	if rng := r.Header.Get("Range"); rng != "" {
		req.Header.Set("Range", rng)
	}

	resp, err := h.Images.Do(req)
	if err != nil {
		h.fail(w, r, "image proxy", apperr.Upstream(err, "image proxy: fetch"))
		return
	}
	defer resp.Body.Close()

	for _, k := range proxiedHeaders {
		if v := resp.Header.Get(k); v != "" {
			w.Header().Set(k, v)
		}
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		h.Logger.Warn("image proxy: copy interrupted",
			slog.String("url", target.Redacted()),
			slog.String("error", err.Error()))
	}
}
