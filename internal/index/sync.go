package index

import (
	"log/slog"

	"github.com/starford/portal/internal/storage"
)

// Sync brings the index in line with the projects directory. Changed files
// are re-indexed and rows without a file are dropped.
func Sync(idx ProjectIndex, store storage.Provider, logger *slog.Logger) error {
	metas, err := store.List()
	if err != nil {
		return err
	}
	checksums, err := idx.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		disk[m.Name] = struct{}{}
		if checksums[m.Name] == m.Checksum {
			continue
		}
		data, err := store.Read(m.Name)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("name", m.Name), slog.String("error", err.Error()))
			continue
		}
		if err := IndexFile(idx, m.Name, data); err != nil {
			logger.Warn("sync: index failed", slog.String("name", m.Name), slog.String("error", err.Error()))
			continue
		}
		logger.Debug("sync: indexed", slog.String("name", m.Name))
	}

	for name := range checksums {
		if _, ok := disk[name]; ok {
			continue
		}
		if err := idx.DeleteProject(name); err != nil {
			logger.Warn("sync: delete failed", slog.String("name", name), slog.String("error", err.Error()))
			continue
		}
		logger.Debug("sync: removed stale", slog.String("name", name))
	}
	return nil
}
