// Package watch re-runs an action when a watched ontology file changes.
// Events are debounced so editors that write in bursts trigger one rebuild.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long to wait for more changes before acting.
const DefaultDebounce = 500 * time.Millisecond

// Watcher observes a single file and invokes a callback after changes
// settle.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *slog.Logger
	onChange func(path string) error
}

// New creates a watcher for path. The callback runs after each debounced
// change; a callback error is logged, not fatal, so a transiently broken
// file does not stop the watch.
func New(path string, debounce time.Duration, logger *slog.Logger, onChange func(path string) error) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{path: path, debounce: debounce, logger: logger, onChange: onChange}
}

// Run watches until the context is cancelled. The file's directory is
// watched rather than the file itself, since editors replace files on save
// and the inode-level watch would go stale.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	absPath, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("resolve watch path: %w", err)
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(absPath), err)
	}

	w.logger.Info("watching for changes", "path", absPath, "debounce", w.debounce)

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Name != absPath {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug("change detected", "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			if err := w.onChange(absPath); err != nil {
				w.logger.Warn("rebuild failed", "error", err)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}
