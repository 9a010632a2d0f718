// Package store owns the dashboard JSON document: loading it over defaults,
// serialising mutations and rewriting the file after each one.
package store

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/starford/portal/internal/models"
	"github.com/starford/portal/internal/storage"
)

// Topic names the part of the document a mutation touched.
type Topic string

const (
	TopicLinks      Topic = "links"
	TopicCategories Topic = "categories"
	TopicSettings   Topic = "settings"
)

// Listener is notified after a mutation has been applied and flushed.
type Listener func(topics ...Topic)

// Store is the single owner of the in-memory document.
//
// Every mutation runs inside Update, which holds the write lock across
// mutate → save, so id allocation and persistence form one critical section.
type Store struct {
	path   string
	logger *slog.Logger

	mu  sync.RWMutex
	doc *models.Document

	lmu       sync.Mutex
	listeners []Listener
}

// New creates a store for the document at path, populated with defaults.
// Call Load to read the persisted copy.
func New(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	doc := models.NewDocument()
	doc.EnsureDefaultCategory(time.Now().UTC())
	return &Store{path: path, logger: logger, doc: doc}
}

// Path returns the document file path.
func (s *Store) Path() string { return s.path }

// Load reads the persisted document and merges it over defaults. A missing,
// unreadable or malformed file is logged and leaves the defaults in place.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := models.NewDocument()
	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		s.logger.Info("store: no document yet, using defaults", slog.String("path", s.path))
	case err != nil:
		s.logger.Warn("store: read failed, using defaults",
			slog.String("path", s.path), slog.String("error", err.Error()))
	default:
		if mergeErr := merge(doc, data, s.logger); mergeErr != nil {
			s.logger.Warn("store: invalid document, using defaults",
				slog.String("path", s.path), slog.String("error", mergeErr.Error()))
			doc = models.NewDocument()
		}
	}

	doc.RepairCounters()
	doc.EnsureDefaultCategory(time.Now().UTC())
	s.doc = doc

	s.logger.Info("store: document loaded",
		slog.Int("links", len(doc.Links)),
		slog.Int("categories", len(doc.Categories)))
}

// Save rewrites the document file. Failures are logged, never returned:
// an in-memory mutation stays applied even when the disk write fails.
func (s *Store) Save() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.saveLocked()
}

func (s *Store) saveLocked() {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		s.logger.Error("store: encode failed", slog.String("error", err.Error()))
		return
	}
	if err := storage.WriteFileAtomic(s.path, data); err != nil {
		s.logger.Error("store: save failed",
			slog.String("path", s.path), slog.String("error", err.Error()))
	}
}

// View runs fn with read access to the document. fn must not retain or
// mutate anything it is handed.
func (s *Store) View(fn func(doc *models.Document)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.doc)
}

// Snapshot returns a deep copy of the current document.
func (s *Store) Snapshot() *models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone()
}

// Update runs fn under the write lock and persists the document when fn
// succeeds. fn must validate before mutating: a returned error means the
// document was left untouched and nothing is saved.
func (s *Store) Update(fn func(doc *models.Document) error, topics ...Topic) error {
	s.mu.Lock()
	if err := fn(s.doc); err != nil {
		s.mu.Unlock()
		return err
	}
	s.saveLocked()
	s.mu.Unlock()

	s.notify(topics)
	return nil
}

// OnChange registers a listener for applied mutations.
func (s *Store) OnChange(l Listener) {
	s.lmu.Lock()
	defer s.lmu.Unlock()
	s.listeners = append(s.listeners, l)
}

func (s *Store) notify(topics []Topic) {
	if len(topics) == 0 {
		return
	}
	s.lmu.Lock()
	ls := append([]Listener(nil), s.listeners...)
	s.lmu.Unlock()
	for _, l := range ls {
		l(topics...)
	}
}
