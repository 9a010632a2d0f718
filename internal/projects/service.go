// Package projects manages Markdown notes stored as individual files.
package projects

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/starford/portal/internal/apperr"
	"github.com/starford/portal/internal/index"
	"github.com/starford/portal/internal/models"
	"github.com/starford/portal/internal/storage"
)

// Service reads and writes notes in the projects directory. Writes are
// last-writer-wins; there is no locking between concurrent writers.
type Service struct {
	store  storage.Provider
	index  index.ProjectIndex
	logger *slog.Logger
}

// NewService creates a project service. idx may be nil when search is not
// available.
func NewService(store storage.Provider, idx index.ProjectIndex, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, index: idx, logger: logger}
}

// SanitizeName reduces name to its base component and forces the .md
// extension. It returns "" when nothing usable remains.
func SanitizeName(name string) string {
	name = strings.TrimSpace(strings.ReplaceAll(name, `\`, "/"))
	base := filepath.Base(name)
	if base == "." || base == "/" || base == ".." || base == "" {
		return ""
	}
	if !strings.HasSuffix(base, models.ProjectExt) {
		base += models.ProjectExt
	}
	if base == models.ProjectExt {
		return ""
	}
	return base
}

func sanitized(name string) (string, error) {
	clean := SanitizeName(name)
	if clean == "" {
		return "", apperr.Validation("project name is required")
	}
	return clean, nil
}

// List returns the names of all notes, sorted.
func (s *Service) List(_ context.Context) ([]string, error) {
	metas, err := s.store.List()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(metas))
	for _, m := range metas {
		names = append(names, m.Name)
	}
	return names, nil
}

// Read returns the content of a note.
func (s *Service) Read(_ context.Context, name string) (*models.Project, error) {
	clean, err := sanitized(name)
	if err != nil {
		return nil, err
	}
	data, err := s.store.Read(clean)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.NotFound("project not found")
		}
		return nil, err
	}
	return &models.Project{Name: clean, Content: string(data)}, nil
}

// Write creates or overwrites a note and returns its sanitized name.
func (s *Service) Write(_ context.Context, name, content string) (string, error) {
	clean, err := sanitized(name)
	if err != nil {
		return "", err
	}
	data := []byte(content)
	if err := s.store.Write(clean, data); err != nil {
		return "", err
	}
	if s.index != nil {
		if err := index.IndexFile(s.index, clean, data); err != nil {
			s.logger.Warn("projects: index failed", slog.String("name", clean), slog.String("error", err.Error()))
		}
	}
	return clean, nil
}

// Delete removes a note.
func (s *Service) Delete(_ context.Context, name string) error {
	clean, err := sanitized(name)
	if err != nil {
		return err
	}
	if err := s.store.Delete(clean); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return apperr.NotFound("project not found")
		}
		return err
	}
	if s.index != nil {
		if err := s.index.DeleteProject(clean); err != nil {
			s.logger.Warn("projects: unindex failed", slog.String("name", clean), slog.String("error", err.Error()))
		}
	}
	return nil
}

// Search runs a full-text query over note titles, tags and bodies.
func (s *Service) Search(_ context.Context, query string, limit int) ([]index.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperr.Validation("query parameter 'q' is required")
	}
	if s.index == nil {
		return []index.SearchResult{}, nil
	}
	results, err := s.index.Search(query, limit)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []index.SearchResult{}
	}
	return results, nil
}
