// Package watcher provides a debounced filesystem watcher used to rebuild
// the docs site when component docs or configuration change.
package watcher

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/rafters-ui/rafters/internal/logging"
)

// DefaultDebounce batches rapid editor save bursts into one rebuild.
const DefaultDebounce = 250 * time.Millisecond

// Handler receives the batched set of changed paths.
type Handler func(paths []string)

// Watcher watches directories and invokes a handler with debounced change
// batches.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	debounce  time.Duration
	handler   Handler
	logger    logging.Logger
	exts      map[string]bool
}

// New creates a watcher. Only files whose extension is in exts trigger the
// handler; an empty exts list means every file counts.
func New(handler Handler, logger logging.Logger, exts ...string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	extSet := make(map[string]bool, len(exts))
	for _, ext := range exts {
		extSet[ext] = true
	}

	return &Watcher{
		fsWatcher: fsWatcher,
		debounce:  DefaultDebounce,
		handler:   handler,
		logger:    logger,
		exts:      extSet,
	}, nil
}

// Add registers a directory to watch.
func (w *Watcher) Add(dir string) error {
	return w.fsWatcher.Add(dir)
}

// Start runs the event loop until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) {
	var (
		pending []string
		timer   *time.Timer
		timerC  <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			_ = w.fsWatcher.Close()
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) {
				continue
			}
			if len(w.exts) > 0 && !w.exts[filepath.Ext(event.Name)] {
				continue
			}
			pending = append(pending, event.Name)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn(ctx, err, "file watcher error")

		case <-timerC:
			if len(pending) > 0 {
				batch := dedupe(pending)
				pending = nil
				w.handler(batch)
			}
			timerC = nil
		}
	}
}

func dedupe(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	out := paths[:0]
	for _, p := range paths {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}
