package store

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/starford/portal/internal/models"
)

// merge overlays the persisted document onto doc. Known top-level fields
// replace their defaults; the three config objects are reconciled key by key
// so a file written by an older version keeps defaults for keys it lacks.
// Unknown keys and values of the wrong type are dropped.
func merge(doc *models.Document, data []byte, logger *slog.Logger) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("store: decode document: %w", err)
	}
	if raw == nil {
		return fmt.Errorf("store: document is not an object")
	}

	field := func(key string, dst any) {
		v, ok := raw[key]
		if !ok || isNull(v) {
			return
		}
		if err := json.Unmarshal(v, dst); err != nil {
			logger.Warn("store: ignoring malformed field",
				slog.String("field", key), slog.String("error", err.Error()))
		}
	}

	var links []models.Link
	field("links", &links)
	if links != nil {
		doc.Links = links
	}
	var categories []models.Category
	field("categories", &categories)
	if categories != nil {
		doc.Categories = categories
	}
	field("nextId", &doc.NextID)
	field("nextCategoryId", &doc.NextCategoryID)
	field("siteTitle", &doc.SiteTitle)
	field("homepageMessage", &doc.HomepageMessage)

	if obj := object(raw, "chatConfig", logger); obj != nil {
		c := &doc.ChatConfig
		if p, ok := stringKey(obj, "provider"); ok && validProvider(p) {
			c.Provider = p
		}
		stringInto(obj, "apiUrl", &c.APIURL)
		stringInto(obj, "chatflowId", &c.ChatflowID)
		stringInto(obj, "ollamaBaseUrl", &c.OllamaBaseURL)
		stringInto(obj, "ollamaModel", &c.OllamaModel)
	}

	if obj := object(raw, "filterConfig", logger); obj != nil {
		c := &doc.FilterConfig
		if b, ok := boolKey(obj, "enabled"); ok {
			c.Enabled = b
		}
		if k, ok := stringKey(obj, "keyword"); ok && k != "" {
			c.Keyword = k
		}
	}

	if obj := object(raw, "colorConfig", logger); obj != nil {
		if col, ok := stringKey(obj, "primaryColor"); ok && models.HexColor.MatchString(col) {
			doc.ColorConfig.PrimaryColor = col
		}
	}

	return nil
}

func object(raw map[string]json.RawMessage, key string, logger *slog.Logger) map[string]json.RawMessage {
	v, ok := raw[key]
	if !ok || isNull(v) {
		return nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(v, &obj); err != nil {
		logger.Warn("store: ignoring malformed config object",
			slog.String("field", key), slog.String("error", err.Error()))
		return nil
	}
	return obj
}

func stringKey(obj map[string]json.RawMessage, key string) (string, bool) {
	v, ok := obj[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", false
	}
	return s, true
}

func stringInto(obj map[string]json.RawMessage, key string, dst *string) {
	if s, ok := stringKey(obj, key); ok {
		*dst = s
	}
}

func boolKey(obj map[string]json.RawMessage, key string) (bool, bool) {
	v, ok := obj[key]
	if !ok {
		return false, false
	}
	var b bool
	if err := json.Unmarshal(v, &b); err != nil {
		return false, false
	}
	return b, true
}

func isNull(v json.RawMessage) bool {
	return string(v) == "null"
}

func validProvider(p string) bool {
	switch p {
	case models.ProviderFlowise, models.ProviderOllama, models.ProviderNone:
		return true
	}
	return false
}
