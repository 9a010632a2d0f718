// Package parser reads the searchable parts of a project note: YAML
// frontmatter, a title and tags.
package parser

import (
	"bytes"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var hashtagRe = regexp.MustCompile(`(?:^|\s)#([A-Za-z][A-Za-z0-9_/-]*)`)

// Result holds what the index stores for one note.
type Result struct {
	Frontmatter map[string]any
	Body        string
	Tags        []string
	Title       string
}

// Parse splits data into frontmatter and body and derives title and tags.
// Malformed frontmatter is not an error; the whole input becomes the body.
func Parse(data []byte) (*Result, error) {
	fm, body := splitFrontmatter(data)
	return &Result{
		Frontmatter: fm,
		Body:        body,
		Tags:        collectTags(fm, body),
		Title:       title(fm, body),
	}, nil
}

func splitFrontmatter(data []byte) (map[string]any, string) {
	const fence = "---"
	src := bytes.TrimLeft(data, "\r\n")
	if !bytes.HasPrefix(src, []byte(fence)) {
		return nil, string(data)
	}
	rest := src[len(fence):]
	end := bytes.Index(rest, []byte("\n"+fence))
	if end < 0 {
		return nil, string(data)
	}

	var fm map[string]any
	if err := yaml.Unmarshal(rest[:end], &fm); err != nil {
		return nil, string(data)
	}
	body := rest[end+1+len(fence):]
	return fm, strings.TrimLeft(string(body), "\r\n")
}

// collectTags merges frontmatter tags (a list or a comma separated string)
// with inline #hashtags, first occurrence wins.
func collectTags(fm map[string]any, body string) []string {
	var (
		out  []string
		seen = map[string]bool{}
	)
	add := func(tag string) {
		tag = strings.TrimPrefix(strings.TrimSpace(tag), "#")
		if tag == "" || seen[tag] {
			return
		}
		seen[tag] = true
		out = append(out, tag)
	}

	switch v := fm["tags"].(type) {
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				add(s)
			}
		}
	case string:
		for _, s := range strings.Split(v, ",") {
			add(s)
		}
	}
	for _, m := range hashtagRe.FindAllStringSubmatch(body, -1) {
		add(m[1])
	}
	return out
}

// title prefers frontmatter "title", then the first level-one heading.
func title(fm map[string]any, body string) string {
	if s, ok := fm["title"].(string); ok && strings.TrimSpace(s) != "" {
		return strings.TrimSpace(s)
	}
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(line[2:])
		}
	}
	return ""
}
