package source

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gogpu/welllog/internal/wlog"
)

// DefaultDebounce coalesces editor save bursts into one reload.
const DefaultDebounce = 150 * time.Millisecond

// Watch calls fn after path is written, created or renamed into place,
// until ctx is cancelled. Bursts of events within debounce are coalesced.
//
// The parent directory is watched rather than the file so that editors
// that replace the file atomically keep triggering reloads.
func Watch(ctx context.Context, path string, debounce time.Duration, fn func()) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("source: watch %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("source: create watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("source: watch %s: %w", path, err)
	}

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	const relevant = fsnotify.Write | fsnotify.Create | fsnotify.Rename
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || ev.Op&relevant == 0 {
				continue
			}
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			wlog.Logger().Warn("source: watcher error", "path", path, "err", err)
		case <-timer.C:
			wlog.Logger().Debug("source: snapshot changed", "path", path)
			fn()
		}
	}
}
