package app

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher calls back when watched input files change, so a path can be
// replanned while the operator edits the hole list.
type Watcher struct {
	watcher   *fsnotify.Watcher
	mu        sync.Mutex
	callbacks map[string]func(string)
	debounce  time.Duration
	timers    map[string]*time.Timer
}

// NewWatcher creates a watcher that coalesces bursts of events within debounce.
func NewWatcher(debounce time.Duration) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &Watcher{
		watcher:   w,
		callbacks: make(map[string]func(string)),
		debounce:  debounce,
		timers:    make(map[string]*time.Timer),
	}, nil
}

// Watch registers callback for each file. Directories are watched rather than
// the files themselves so editors that replace files on save are handled.
func (w *Watcher) Watch(files []string, callback func(string)) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", file, err)
		}

		if err := w.watcher.Add(filepath.Dir(absPath)); err != nil {
			return fmt.Errorf("failed to watch %s: %w", absPath, err)
		}

		w.callbacks[absPath] = callback
	}

	return nil
}

// Run dispatches events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.handleFileChange(event.Name)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			zap.S().Errorw("watcher error", "error", err)
		}
	}
}

// handleFileChange handles a file change event with debouncing.
func (w *Watcher) handleFileChange(filePath string) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	callback, exists := w.callbacks[absPath]
	if !exists {
		return
	}

	if timer, exists := w.timers[absPath]; exists {
		timer.Stop()
	}

	w.timers[absPath] = time.AfterFunc(w.debounce, func() {
		zap.S().Debugw("input changed", "path", absPath)
		callback(absPath)
	})
}

// Close stops the watcher and pending callbacks.
func (w *Watcher) Close() error {
	w.mu.Lock()
	for _, timer := range w.timers {
		timer.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}
