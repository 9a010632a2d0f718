// Package dashboard implements the category, link and settings operations
// on top of the document store.
package dashboard

import (
	"context"
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/portal/internal/apperr"
	"github.com/starford/portal/internal/models"
	"github.com/starford/portal/internal/store"
)

// OrderAssignment moves one category to a new display position.
type OrderAssignment struct {
	ID    int `json:"id"`
	Order int `json:"order"`
}

// Categories manages link categories.
type Categories struct {
	store *store.Store
}

// NewCategories creates a category manager.
func NewCategories(st *store.Store) *Categories {
	return &Categories{store: st}
}

// List returns the navigation category followed by the others sorted by
// Order. Ties keep insertion order.
func (c *Categories) List(_ context.Context) []models.Category {
	var out []models.Category
	c.store.View(func(doc *models.Document) {
		out = append([]models.Category{}, doc.Categories...)
	})
	sortCategories(out)
	return out
}

// Create appends a category at the end of the display order.
func (c *Categories) Create(_ context.Context, name string) (models.Category, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return models.Category{}, err
	}

	var created models.Category
	err := c.store.Update(func(doc *models.Document) error {
		created = models.Category{
			ID:        doc.NextCategoryID,
			Name:      name,
			Private:   false,
			Order:     countOrdinary(doc.Categories),
			IsDefault: false,
			CreatedAt: time.Now().UTC(),
		}
		doc.NextCategoryID++
		doc.Categories = append(doc.Categories, created)
		return nil
	}, store.TopicCategories)
	return created, err
}

// Rename changes a category's display name.
func (c *Categories) Rename(_ context.Context, id int, name string) (models.Category, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return models.Category{}, err
	}

	var updated models.Category
	err := c.store.Update(func(doc *models.Document) error {
		i := doc.CategoryIndex(id)
		if i < 0 {
			return apperr.NotFound("category not found")
		}
		doc.Categories[i].Name = name
		updated = doc.Categories[i]
		return nil
	}, store.TopicCategories)
	return updated, err
}

// Delete removes a category and orphans the links filed under it.
// The navigation category cannot be deleted.
func (c *Categories) Delete(_ context.Context, id int) error {
	return c.store.Update(func(doc *models.Document) error {
		i := doc.CategoryIndex(id)
		if i < 0 {
			return apperr.NotFound("category not found")
		}
		if doc.Categories[i].IsDefault {
			return apperr.Forbidden("the default category cannot be deleted")
		}
		doc.Categories = append(doc.Categories[:i], doc.Categories[i+1:]...)
		for j := range doc.Links {
			if doc.Links[j].CategoryID != nil && *doc.Links[j].CategoryID == id {
				doc.Links[j].CategoryID = nil
			}
		}
		return nil
	}, store.TopicCategories, store.TopicLinks)
}

// SetPrivacy sets the private flag of a category.
func (c *Categories) SetPrivacy(_ context.Context, id int, private bool) (models.Category, error) {
	var updated models.Category
	err := c.store.Update(func(doc *models.Document) error {
		i := doc.CategoryIndex(id)
		if i < 0 {
			return apperr.NotFound("category not found")
		}
		doc.Categories[i].Private = private
		updated = doc.Categories[i]
		return nil
	}, store.TopicCategories)
	return updated, err
}

// Reorder applies order assignments and re-sorts the stored list.
// Unknown ids are skipped. The navigation category keeps its pinned
// position at the top, so assignments targeting it are skipped too.
// A negative order fails validation and nothing is applied.
func (c *Categories) Reorder(_ context.Context, assignments []OrderAssignment) ([]models.Category, error) {
	for _, a := range assignments {
		if err := validation.Validate(a.Order, validation.Min(0)); err != nil {
			return nil, apperr.Validation("order for category %d: %s", a.ID, err.Error())
		}
	}

	var out []models.Category
	err := c.store.Update(func(doc *models.Document) error {
		for _, a := range assignments {
			i := doc.CategoryIndex(a.ID)
			if i < 0 || doc.Categories[i].IsDefault {
				continue
			}
			doc.Categories[i].Order = a.Order
		}
		sortCategories(doc.Categories)
		out = append([]models.Category{}, doc.Categories...)
		return nil
	}, store.TopicCategories)
	return out, err
}

func sortCategories(cs []models.Category) {
	sort.SliceStable(cs, func(i, j int) bool {
		if cs[i].IsDefault != cs[j].IsDefault {
			return cs[i].IsDefault
		}
		return cs[i].Order < cs[j].Order
	})
}

func countOrdinary(cs []models.Category) int {
	n := 0
	for _, c := range cs {
		if !c.IsDefault {
			n++
		}
	}
	return n
}

func validateName(name string) error {
	if err := validation.Validate(name, validation.Required.Error("name is required")); err != nil {
		return apperr.Validation("%s", err.Error())
	}
	return nil
}
