package schema

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the schema file at path whenever it changes and calls fn
// with the fresh registry. Reload errors are also delivered to fn so a
// development server can report them without dying; fn is never called
// concurrently. Watch blocks until ctx is canceled.
//
// Editors often replace files by rename, so the parent directory is
// watched rather than the file itself.
func Watch(ctx context.Context, path string, fn func(*Registry, error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("schema: watch: %w", err)
	}
	defer w.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("schema: watch %q: %w", path, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("schema: watch %q: %w", path, err)
	}

	// Debounce bursts of write events from editors and atomic saves.
	const settle = 100 * time.Millisecond
	var timer *time.Timer
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(settle)
			} else {
				timer.Reset(settle)
			}
			pending = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fn(nil, fmt.Errorf("schema: watch %q: %w", path, err))
		case <-pending:
			pending = nil
			fn(LoadFile(abs))
		}
	}
}
