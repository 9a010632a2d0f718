// Package models defines the domain types for the dashboard document.
package models

import "time"

// DefaultCategoryID is reserved for the navigation category. The id counter
// starts at 1, so it is never handed out to an ordinary category.
const DefaultCategoryID = -1

// DefaultCategoryName is the display name of the navigation category.
const DefaultCategoryName = "navigation"

// Link is a dashboard entry. CategoryID is a weak reference: nil means the
// link is not filed under any category.
type Link struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	URL        string     `json:"url"`
	CategoryID *int       `json:"categoryId"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

// Category groups links for display. Exactly one category has IsDefault set.
type Category struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Private   bool      `json:"private"`
	Order     int       `json:"order"`
	IsDefault bool      `json:"isDefault"`
	CreatedAt time.Time `json:"createdAt"`
}

// Document is the aggregate persisted as a single JSON file.
type Document struct {
	Links           []Link       `json:"links"`
	Categories      []Category   `json:"categories"`
	NextID          int          `json:"nextId"`
	NextCategoryID  int          `json:"nextCategoryId"`
	SiteTitle       string       `json:"siteTitle"`
	HomepageMessage string       `json:"homepageMessage"`
	ChatConfig      ChatConfig   `json:"chatConfig"`
	FilterConfig    FilterConfig `json:"filterConfig"`
	ColorConfig     ColorConfig  `json:"colorConfig"`
}

// NewDocument returns a document populated with defaults and no categories.
// Callers run EnsureDefaultCategory before exposing it.
func NewDocument() *Document {
	return &Document{
		Links:           []Link{},
		Categories:      []Category{},
		NextID:          1,
		NextCategoryID:  1,
		SiteTitle:       DefaultSiteTitle,
		HomepageMessage: DefaultHomepageMessage,
		ChatConfig:      DefaultChatConfig(),
		FilterConfig:    DefaultFilterConfig(),
		ColorConfig:     DefaultColorConfig(),
	}
}

// EnsureDefaultCategory makes the navigation category the single default
// and moves it to position 0, inserting it when none is flagged. Extra
// default flags are cleared, and ordinary categories holding the reserved id
// or a duplicate id get fresh ids from NextCategoryID, so RepairCounters
// must run first. It reports whether the document changed.
func (d *Document) EnsureDefaultCategory(now time.Time) bool {
	changed := false
	def := -1
	for i, c := range d.Categories {
		if !c.IsDefault {
			continue
		}
		if def < 0 || (c.ID == DefaultCategoryID && d.Categories[def].ID != DefaultCategoryID) {
			def = i
		}
	}

	var head Category
	if def < 0 {
		head = Category{
			ID:        DefaultCategoryID,
			Name:      DefaultCategoryName,
			Private:   false,
			Order:     -1,
			IsDefault: true,
			CreatedAt: now,
		}
		changed = true
	} else {
		head = d.Categories[def]
		if head.ID != DefaultCategoryID || def != 0 {
			head.ID = DefaultCategoryID
			changed = true
		}
	}

	rest := make([]Category, 0, len(d.Categories))
	seen := map[int]bool{DefaultCategoryID: true}
	for i, c := range d.Categories {
		if i == def {
			continue
		}
		if c.IsDefault {
			c.IsDefault = false
			changed = true
		}
		if c.Order < 0 {
			c.Order = 0
			changed = true
		}
		if seen[c.ID] {
			c.ID = d.NextCategoryID
			d.NextCategoryID++
			changed = true
		}
		seen[c.ID] = true
		rest = append(rest, c)
	}
	d.Categories = append([]Category{head}, rest...)
	return changed
}

// RepairCounters raises NextID and NextCategoryID above every id in use.
// Counters are never lowered.
func (d *Document) RepairCounters() {
	for _, l := range d.Links {
		if l.ID >= d.NextID {
			d.NextID = l.ID + 1
		}
	}
	for _, c := range d.Categories {
		if c.ID >= d.NextCategoryID {
			d.NextCategoryID = c.ID + 1
		}
	}
	if d.NextID < 1 {
		d.NextID = 1
	}
	if d.NextCategoryID < 1 {
		d.NextCategoryID = 1
	}
}

// CategoryIndex returns the position of the category with id, or -1.
func (d *Document) CategoryIndex(id int) int {
	for i, c := range d.Categories {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// LinkIndex returns the position of the link with id, or -1.
func (d *Document) LinkIndex(id int) int {
	for i, l := range d.Links {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy safe to hand out of the store lock.
func (d *Document) Clone() *Document {
	out := *d
	out.Links = make([]Link, len(d.Links))
	for i, l := range d.Links {
		out.Links[i] = l.Clone()
	}
	out.Categories = append([]Category(nil), d.Categories...)
	if out.Categories == nil {
		out.Categories = []Category{}
	}
	return &out
}

// Clone returns a copy of l that shares no pointers with it.
func (l Link) Clone() Link {
	if l.CategoryID != nil {
		id := *l.CategoryID
		l.CategoryID = &id
	}
	if l.UpdatedAt != nil {
		t := *l.UpdatedAt
		l.UpdatedAt = &t
	}
	return l
}
