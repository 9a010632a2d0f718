package index

// ProjectIndex is the search index consumed by the projects service and the
// watcher. *DB is the only production implementation.
type ProjectIndex interface {
	UpsertProject(p ProjectRow, body string) error
	DeleteProject(name string) error
	AllChecksums() (map[string]string, error)
	Search(query string, limit int) ([]SearchResult, error)
}

var _ ProjectIndex = (*DB)(nil)
