package index

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/starford/portal/internal/parser"
	"github.com/starford/portal/internal/storage"
)

// ProjectRow represents a row in the projects table.
type ProjectRow struct {
	Name      string
	Title     string
	Checksum  string
	Tags      []string
	UpdatedAt time.Time
}

// SearchResult represents one search hit.
type SearchResult struct {
	Name    string   `json:"name"`
	Title   string   `json:"title"`
	Snippet string   `json:"snippet"`
	Tags    []string `json:"tags"`
}

// UpsertProject inserts or replaces a project and its FTS entry within a transaction.
func (db *DB) UpsertProject(p ProjectRow, body string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	if p.Tags == nil {
		p.Tags = []string{}
	}
	tagsJSON, _ := json.Marshal(p.Tags)
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}

	_, err = tx.Exec(`
		INSERT INTO projects (name, title, checksum, tags, body, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			title      = excluded.title,
			checksum   = excluded.checksum,
			tags       = excluded.tags,
			body       = excluded.body,
			updated_at = excluded.updated_at
	`, p.Name, p.Title, p.Checksum, string(tagsJSON), body, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("index: upsert project: %w", err)
	}

	if err := ftsUpsert(tx, p.Name, p.Title, body, p.Tags); err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteProject removes a project and its FTS entry. Missing rows are not an error.
func (db *DB) DeleteProject(name string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDelete(tx, name)
	if _, err := tx.Exec(`DELETE FROM projects WHERE name = ?`, name); err != nil {
		return fmt.Errorf("index: delete project: %w", err)
	}
	return tx.Commit()
}

// AllChecksums returns name → checksum for every indexed project.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT name, checksum FROM projects`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var name, cs string
		if err := rows.Scan(&name, &cs); err != nil {
			return nil, err
		}
		out[name] = cs
	}
	return out, rows.Err()
}

// IndexFile parses a note and upserts it into idx.
func IndexFile(idx ProjectIndex, name string, data []byte) error {
	res, err := parser.Parse(data)
	if err != nil {
		return err
	}
	return idx.UpsertProject(ProjectRow{
		Name:      name,
		Title:     res.Title,
		Checksum:  storage.Checksum(data),
		Tags:      res.Tags,
		UpdatedAt: time.Now().UTC(),
	}, res.Body)
}

func decodeTags(raw string) []string {
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil || tags == nil {
		return []string{}
	}
	return tags
}
