package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

// Reloading is a Catalog backed by a taxonomy file that is reloaded when the file changes.
// A file that fails to load is logged and the previous taxonomy stays in use.
type Reloading struct {
	path    string
	current atomic.Pointer[Taxonomy]
	reloads atomic.Int64
}

var _ Catalog = (*Reloading)(nil)

// Watch loads path and keeps reloading it until ctx is done.
// The directory is watched rather than the file so editors that replace the file are seen.
func Watch(ctx context.Context, path string) (*Reloading, error) {
	t, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	r := &Reloading{path: filepath.Clean(path)}
	r.current.Store(t)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create categories watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(r.path)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch categories file: %w", err)
	}

	slog.Info("Watching categories file", "path", r.path)
	go r.loop(ctx, watcher)
	return r, nil
}

func (r *Reloading) loop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != r.path || !event.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			r.reload()
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("Categories watcher error", "path", r.path, "error", err)
		}
	}
}

func (r *Reloading) reload() {
	t, err := LoadFile(r.path)
	if err != nil {
		slog.Warn("Keeping previous categories, reload failed", "path", r.path, "error", err)
		return
	}
	r.current.Store(t)
	r.reloads.Add(1)
	slog.Info("Categories reloaded", "path", r.path, "main_categories", len(t.order))
}

// Reloads counts successful reloads after the initial load.
func (r *Reloading) Reloads() int64 {
	return r.reloads.Load()
}

func (r *Reloading) Current() *Taxonomy {
	return r.current.Load()
}

func (r *Reloading) Main(id int) (MainCategory, bool) {
	return r.Current().Main(id)
}

func (r *Reloading) Sub(main, sub int) (SubCategory, bool) {
	return r.Current().Sub(main, sub)
}
