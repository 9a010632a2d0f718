package internal

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/starford/portal/internal/api"
	"github.com/starford/portal/internal/testutil"
)

func testHandler(t *testing.T, mutate func(*Config)) http.Handler {
	t.Helper()
	cfg := NewDefaultConfig()
	dir := t.TempDir()
	cfg.Data.DocumentPath = filepath.Join(dir, "dashboard.json")
	cfg.Data.ProjectsDir = filepath.Join(dir, "projects")
	cfg.Data.IndexPath = filepath.Join(dir, "index.db")
	if mutate != nil {
		mutate(cfg)
	}

	svc, err := newServices(cfg, testutil.Logger())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { svc.Close() })

	verifier, err := newVerifier(cfg, testutil.Logger())
	if err != nil {
		t.Fatal(err)
	}
	return newHTTPHandler(cfg, api.Deps{
		Logger:     testutil.Logger(),
		Links:      svc.links,
		Categories: svc.categories,
		Settings:   svc.settings,
		Projects:   svc.projects,
		Verifier:   verifier,
	})
}

func TestHealthEndpoints(t *testing.T) {
	h := testHandler(t, nil)
	for _, path := range []string{"/health/live", "/health/ready"} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ok"`) {
			t.Errorf("%s = %d %s", path, w.Code, w.Body.String())
		}
	}
}

func TestAPIMounted(t *testing.T) {
	h := testHandler(t, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/categories", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "navigation") {
		t.Errorf("categories = %d %s", w.Code, w.Body.String())
	}
}

func TestAdminPasswordOverride(t *testing.T) {
	h := testHandler(t, func(c *Config) { c.AdminPassword = "letmein" })

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(`{"password":"letmein"}`)))
	if w.Code != http.StatusOK {
		t.Errorf("login = %d %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(`{"password":"nope"}`)))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong login = %d", w.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	h := testHandler(t, func(c *Config) { c.CORS.AllowedOrigins = []string{"https://dash.example"} })

	req := httptest.NewRequest(http.MethodOptions, "/api/links", nil)
	req.Header.Set("Origin", "https://dash.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://dash.example" {
		t.Errorf("allow-origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodOptions, "/api/links", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("foreign origin allowed: %q", got)
	}
}

func TestStaticClient(t *testing.T) {
	static := t.TempDir()
	if err := os.WriteFile(filepath.Join(static, "index.html"), []byte("<h1>dash</h1>"), 0o644); err != nil {
		t.Fatal(err)
	}
	h := testHandler(t, func(c *Config) { c.App.StaticDir = static })

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "dash") {
		t.Errorf("static = %d %s", w.Code, w.Body.String())
	}
}
