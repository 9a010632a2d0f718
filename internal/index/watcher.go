package index

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/portal/internal/models"
	"github.com/starford/portal/internal/storage"
)

// Event kinds passed to EventCallback.
const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)

// EventCallback is called after a watcher-driven index change.
type EventCallback func(kind, name string)

const reconcileDelay = 200 * time.Millisecond

// Watch watches the projects directory and keeps idx current until ctx is
// cancelled. Subdirectories are ignored. Renames delete the old name and
// schedule a reconciliation pass to pick up the new one.
func Watch(ctx context.Context, idx ProjectIndex, store storage.Provider, dir string, logger *slog.Logger, cb EventCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return err
	}
	logger.Info("watcher: started", slog.String("dir", dir))

	emit := func(kind, name string) {
		if cb != nil {
			cb(kind, name)
		}
	}

	var (
		reconcileTimer *time.Timer
		reconcileCh    <-chan time.Time
	)
	scheduleReconcile := func() {
		if reconcileTimer == nil {
			reconcileTimer = time.NewTimer(reconcileDelay)
			reconcileCh = reconcileTimer.C
			return
		}
		reconcileTimer.Reset(reconcileDelay)
	}

	for {
		select {
		case <-ctx.Done():
			if reconcileTimer != nil {
				reconcileTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-reconcileCh:
			reconcile(idx, store, logger, emit)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			name := filepath.Base(ev.Name)
			if filepath.Dir(ev.Name) != filepath.Clean(dir) || !strings.HasSuffix(name, models.ProjectExt) {
				continue
			}

			switch {
			case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
				data, err := store.Read(name)
				if err != nil {
					logger.Warn("watcher: read failed", slog.String("name", name), slog.String("error", err.Error()))
					continue
				}
				if err := IndexFile(idx, name, data); err != nil {
					logger.Warn("watcher: index failed", slog.String("name", name), slog.String("error", err.Error()))
					continue
				}
				kind := EventUpdated
				if ev.Op&fsnotify.Create != 0 {
					kind = EventCreated
				}
				logger.Debug("watcher: indexed", slog.String("name", name), slog.String("op", kind))
				emit(kind, name)

			case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				if err := idx.DeleteProject(name); err != nil {
					logger.Warn("watcher: delete failed", slog.String("name", name), slog.String("error", err.Error()))
				} else {
					logger.Debug("watcher: deleted", slog.String("name", name))
					emit(EventDeleted, name)
				}
				if ev.Op&fsnotify.Rename != 0 {
					scheduleReconcile()
				}
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", err.Error()))
		}
	}
}

// reconcile drops rows whose file is gone and indexes files whose checksum
// differs from the stored one.
func reconcile(idx ProjectIndex, store storage.Provider, logger *slog.Logger, emit EventCallback) {
	checksums, err := idx.AllChecksums()
	if err != nil {
		logger.Warn("reconcile: all checksums failed", slog.String("error", err.Error()))
		return
	}
	metas, err := store.List()
	if err != nil {
		logger.Warn("reconcile: list failed", slog.String("error", err.Error()))
		return
	}

	disk := make(map[string]string, len(metas))
	for _, m := range metas {
		disk[m.Name] = m.Checksum
	}
	for name := range checksums {
		if _, ok := disk[name]; ok {
			continue
		}
		if err := idx.DeleteProject(name); err == nil {
			emit(EventDeleted, name)
		}
	}
	for name, cs := range disk {
		if checksums[name] == cs {
			continue
		}
		data, err := store.Read(name)
		if err != nil {
			continue
		}
		if err := IndexFile(idx, name, data); err == nil {
			logger.Debug("reconcile: indexed", slog.String("name", name))
			emit(EventCreated, name)
		}
	}
}
