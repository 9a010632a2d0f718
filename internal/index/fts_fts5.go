//go:build sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
	"strings"
)

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS projects_fts USING fts5(
			name UNINDEXED,
			title,
			body,
			tags,
			tokenize = 'unicode61 remove_diacritics 2'
		);
	`)
	return err
}

func ftsUpsert(tx *sql.Tx, name, title, body string, tags []string) error {
	_, _ = tx.Exec(`DELETE FROM projects_fts WHERE name = ?`, name)
	_, err := tx.Exec(`INSERT INTO projects_fts (name, title, body, tags) VALUES (?, ?, ?, ?)`,
		name, title, body, strings.Join(tags, " "))
	if err != nil {
		return fmt.Errorf("index: upsert fts: %w", err)
	}
	return nil
}

func ftsDelete(tx *sql.Tx, name string) {
	_, _ = tx.Exec(`DELETE FROM projects_fts WHERE name = ?`, name)
}

// Search performs an FTS5 query and returns hits ranked by relevance with
// highlighted snippets.
func (db *DB) Search(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(`
		SELECT f.name,
		       f.title,
		       snippet(projects_fts, 2, '<b>', '</b>', '...', 64),
		       p.tags
		FROM projects_fts f
		JOIN projects p ON p.name = f.name
		WHERE projects_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}
	defer rows.Close()

	var out []SearchResult
	for rows.Next() {
		var (
			r    SearchResult
			tags string
		)
		if err := rows.Scan(&r.Name, &r.Title, &r.Snippet, &tags); err != nil {
			return nil, err
		}
		r.Tags = decodeTags(tags)
		out = append(out, r)
	}
	return out, rows.Err()
}
