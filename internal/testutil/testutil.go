// Package testutil provides shared test helpers for the document store,
// the projects directory and the search index.
package testutil

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/starford/portal/internal/index"
	"github.com/starford/portal/internal/models"
	"github.com/starford/portal/internal/storage"
	"github.com/starford/portal/internal/store"
)

// Logger returns a logger that discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// TestDB creates a temporary SQLite index that is closed on cleanup.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	db, err := index.Open(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestProjects creates a temporary projects directory with a storage.Provider.
func TestProjects(t *testing.T) (string, storage.Provider) {
	t.Helper()
	dir := t.TempDir()
	fs, err := storage.NewFS(dir, models.ProjectExt)
	if err != nil {
		t.Fatal(err)
	}
	return dir, fs
}

// TestStore creates a loaded document store backed by a temporary file.
func TestStore(t *testing.T) *store.Store {
	t.Helper()
	st := store.New(filepath.Join(t.TempDir(), "dashboard.json"), Logger())
	st.Load()
	return st
}
