// Package watch streams journal file changes to a callback using fsnotify.
// It powers the live calendar-refresh events; navigation and capture never
// depend on it and always rescan the directory themselves.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// EventCallback receives journal changes. kind is one of "created",
// "updated", "deleted"; path is absolute.
type EventCallback func(kind, path string)

// Watch observes root recursively until ctx is cancelled and invokes cb for
// every change to a file accepted by recognized. Directories created at
// runtime are added to the watch list. fsnotify reports a rename as an event
// on the old path only; it is surfaced as a deletion, and the new path
// arrives as a separate create event.
func Watch(ctx context.Context, root string, recognized func(basename string) bool, logger *slog.Logger, cb EventCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addDirsRecursive(w, root); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("root", root))

	for {
		select {
		case <-ctx.Done():
			logger.Info("watcher: stopped")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursive(w, ev.Name); addErr != nil {
						logger.Warn("watcher: add new dir failed",
							slog.String("path", ev.Name),
							slog.String("error", addErr.Error()))
					}
					emitExisting(ev.Name, recognized, cb)
					continue
				}
			}

			if !recognized(filepath.Base(ev.Name)) {
				continue
			}

			switch {
			case ev.Op&fsnotify.Create != 0:
				logger.Debug("watcher: created", slog.String("path", ev.Name))
				cb("created", ev.Name)
			case ev.Op&fsnotify.Write != 0:
				logger.Debug("watcher: updated", slog.String("path", ev.Name))
				cb("updated", ev.Name)
			case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				logger.Debug("watcher: deleted", slog.String("path", ev.Name))
				cb("deleted", ev.Name)
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// addDirsRecursive registers dir and all its subdirectories with the watcher.
func addDirsRecursive(w *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return w.Add(p)
		}
		return nil
	})
}

// emitExisting reports recognized files already present inside a directory
// that appeared at runtime, e.g. notes moved in with their parent folder.
func emitExisting(dir string, recognized func(string) bool, cb EventCallback) {
	_ = filepath.WalkDir(dir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		if recognized(d.Name()) {
			cb("created", p)
		}
		return nil
	})
}
