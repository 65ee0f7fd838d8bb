// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rules

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the rules file into a Store whenever it changes.
// A file that fails to parse is logged and the previous rules stay in place.
type Watcher struct {
	path     string
	store    *Store
	debounce time.Duration
}

func NewWatcher(path string, store *Store) *Watcher {
	return &Watcher{
		path:     path,
		store:    store,
		debounce: 200 * time.Millisecond,
	}
}

// Run watches until ctx is done. The containing directory is watched so
// editors that replace the file on save are picked up.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create rules watcher: %w", err)
	}
	defer fw.Close()

	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	slog.Info("watching rules file", "path", w.path)

	target := filepath.Clean(w.path)
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			slog.Error("rules watcher error", "error", err)

		case <-timer.C:
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	r, err := Load(w.path)
	if err != nil {
		slog.Error("error reloading rules, keeping previous", "path", w.path, "error", err)
		return
	}
	w.store.Set(r)
	slog.Info("rules reloaded", "path", w.path, "categories", len(r.Categories), "jury", len(r.Jury))
}
