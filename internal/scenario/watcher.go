package scenario

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a scenario file whenever it changes on disk. Editors
// replace files in odd ways (rename-and-create, chmod churn), so events are
// filtered and debounced before a reload is attempted.
type Watcher struct {
	path     string
	logger   *slog.Logger
	debounce time.Duration
}

// NewWatcher prepares a watcher for the given scenario file.
func NewWatcher(path string, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{path: path, logger: logger, debounce: 200 * time.Millisecond}
}

// Watch blocks until ctx is cancelled, invoking onChange with each
// successfully reloaded scenario. Load failures are logged and skipped; the
// previous scenario stays in effect.
func (w *Watcher) Watch(ctx context.Context, onChange func(*Scenario)) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("scenario: create watcher: %w", err)
	}
	defer fw.Close()

	// Watch the directory, not the file: rename-and-create replacement
	// would otherwise drop the watch.
	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("scenario: watch %q: %w", dir, err)
	}
	w.logger.Info("watching scenario", "path", w.path)

	var timer *time.Timer
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.shouldProcess(event) {
				continue
			}
			// Rearm the debounce window.
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			pending = timer.C

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "error", err)

		case <-pending:
			pending = nil
			s, err := Load(w.path)
			if err != nil {
				w.logger.Error("scenario reload failed", "path", w.path, "error", err)
				continue
			}
			w.logger.Info("scenario reloaded", "path", w.path, "name", s.Name, "rule", s.Rule)
			onChange(s)
		}
	}
}

func (w *Watcher) shouldProcess(event fsnotify.Event) bool {
	if event.Op&fsnotify.Chmod == fsnotify.Chmod {
		return false
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	match, err := filepath.Match(filepath.Base(w.path), filepath.Base(event.Name))
	return err == nil && match
}
