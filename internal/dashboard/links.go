package dashboard

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/portal/internal/apperr"
	"github.com/starford/portal/internal/models"
	"github.com/starford/portal/internal/store"
)

// Checker reports whether a URL answers a lightweight liveness probe.
type Checker interface {
	Check(ctx context.Context, url string) bool
}

// LinkInput carries the mutable fields of a link.
type LinkInput struct {
	Name       string `json:"name"`
	URL        string `json:"url"`
	CategoryID *int   `json:"categoryId"`
}

// Validate validates the link input. Name and URL must be non-blank.
func (in LinkInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required),
		validation.Field(&in.URL, validation.Required),
	)
}

func (in LinkInput) normalized() LinkInput {
	in.Name = strings.TrimSpace(in.Name)
	in.URL = strings.TrimSpace(in.URL)
	return in
}

// Links manages dashboard links.
//
// List is unfiltered: hiding links of private categories is left to the
// client, and the API returns every link regardless of category privacy.
type Links struct {
	store   *store.Store
	checker Checker
}

// NewLinks creates a link manager. checker may be nil, in which case every
// status check reports unreachable.
func NewLinks(st *store.Store, checker Checker) *Links {
	return &Links{store: st, checker: checker}
}

// List returns all links in insertion order.
func (l *Links) List(_ context.Context) []models.Link {
	var out []models.Link
	l.store.View(func(doc *models.Document) {
		out = make([]models.Link, len(doc.Links))
		for i, link := range doc.Links {
			out[i] = link.Clone()
		}
	})
	return out
}

// Get returns a single link.
func (l *Links) Get(_ context.Context, id int) (models.Link, error) {
	var (
		out   models.Link
		found bool
	)
	l.store.View(func(doc *models.Document) {
		if i := doc.LinkIndex(id); i >= 0 {
			out = doc.Links[i].Clone()
			found = true
		}
	})
	if !found {
		return models.Link{}, apperr.NotFound("link not found")
	}
	return out, nil
}

// Create adds a link and assigns it the next id.
func (l *Links) Create(_ context.Context, in LinkInput) (models.Link, error) {
	in = in.normalized()
	if err := in.Validate(); err != nil {
		return models.Link{}, apperr.Validation("%s", err.Error())
	}

	var created models.Link
	err := l.store.Update(func(doc *models.Document) error {
		created = models.Link{
			ID:         doc.NextID,
			Name:       in.Name,
			URL:        in.URL,
			CategoryID: copyID(in.CategoryID),
			CreatedAt:  time.Now().UTC(),
		}
		doc.NextID++
		doc.Links = append(doc.Links, created)
		created = created.Clone()
		return nil
	}, store.TopicLinks)
	return created, err
}

// Update replaces name, URL and category of a link. ID and CreatedAt never change.
func (l *Links) Update(_ context.Context, id int, in LinkInput) (models.Link, error) {
	in = in.normalized()
	if err := in.Validate(); err != nil {
		return models.Link{}, apperr.Validation("%s", err.Error())
	}

	var updated models.Link
	err := l.store.Update(func(doc *models.Document) error {
		i := doc.LinkIndex(id)
		if i < 0 {
			return apperr.NotFound("link not found")
		}
		now := time.Now().UTC()
		link := &doc.Links[i]
		link.Name = in.Name
		link.URL = in.URL
		link.CategoryID = copyID(in.CategoryID)
		link.UpdatedAt = &now
		updated = link.Clone()
		return nil
	}, store.TopicLinks)
	return updated, err
}

// Delete removes a link.
func (l *Links) Delete(_ context.Context, id int) error {
	return l.store.Update(func(doc *models.Document) error {
		i := doc.LinkIndex(id)
		if i < 0 {
			return apperr.NotFound("link not found")
		}
		doc.Links = append(doc.Links[:i], doc.Links[i+1:]...)
		return nil
	}, store.TopicLinks)
}

// CheckStatus probes url. The result is best effort: any failure reads as down.
func (l *Links) CheckStatus(ctx context.Context, url string) bool {
	if l.checker == nil || strings.TrimSpace(url) == "" {
		return false
	}
	return l.checker.Check(ctx, strings.TrimSpace(url))
}

// CoerceCategoryID converts a decoded JSON value into a category reference.
// Numbers and numeric strings become ids; nil, empty strings and anything
// non-numeric become nil.
func CoerceCategoryID(v any) *int {
	switch t := v.(type) {
	case float64:
		if t != math.Trunc(t) || math.IsInf(t, 0) || math.IsNaN(t) {
			return nil
		}
		id := int(t)
		return &id
	case int:
		id := t
		return &id
	case string:
		s := strings.TrimSpace(t)
		if s == "" || s == "null" {
			return nil
		}
		id, err := strconv.Atoi(s)
		if err != nil {
			return nil
		}
		return &id
	}
	return nil
}

func copyID(id *int) *int {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
