package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a catalog override file when it changes on disk, so rate
// adjustments take effect without restarting the quote service. Editors
// tend to fire several filesystem events per save, so reloads are
// debounced.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *slog.Logger
}

// DefaultDebounceInterval is how long the watcher waits after the last
// filesystem event before reloading.
const DefaultDebounceInterval = 250 * time.Millisecond

// NewWatcher creates a watcher for a catalog override file.
func NewWatcher(path string, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		path:     path,
		debounce: DefaultDebounceInterval,
		logger:   logger.With("component", "catalog.watcher"),
	}
}

// Watch blocks until the context is cancelled, invoking onReload with a
// freshly loaded catalog after each debounced change. A file that fails
// integrity validation is logged and skipped; the previous catalog stays
// live.
func (w *Watcher) Watch(ctx context.Context, onReload func(*Catalog)) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer fsw.Close()

	// Watch the directory, not the file: editors replace files on save and
	// the watch on the old inode would be lost.
	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.logger.Info("watching catalog file", "path", w.path)

	var timer *time.Timer
	var timerCh <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerCh = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)

		case <-timerCh:
			timerCh = nil
			timer = nil
			c, err := LoadFromFile(w.path)
			if err != nil {
				w.logger.Error("catalog reload failed, keeping previous catalog", "error", err)
				continue
			}
			w.logger.Info("catalog reloaded", "path", w.path)
			onReload(c)
		}
	}
}
