// Package watch reloads a document file when it changes on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/AliArsal1512/clarifai-app/internal/astdoc"
)

// Handler receives the reloaded document, or the error that prevented it.
type Handler func(doc *astdoc.Document, err error)

type Options struct {
	// Debounce is how long to wait for more writes before reloading.
	// Default: 150ms
	Debounce time.Duration
	Logger   *slog.Logger
}

func DefaultOptions() Options {
	return Options{Debounce: 150 * time.Millisecond}
}

// Watcher watches one document file. The parent directory is watched so
// editors that replace the file by rename are still seen.
//
// The handler is called from a single goroutine.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	handler  Handler
	debounce time.Duration
	logger   *slog.Logger

	changes  chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	mu       sync.RWMutex
	watching bool
}

func New(path string, handler Handler, opts *Options) (*Watcher, error) {
	if opts == nil {
		defaults := DefaultOptions()
		opts = &defaults
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		path:     abs,
		watcher:  w,
		handler:  handler,
		debounce: opts.Debounce,
		logger:   logger,
		changes:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching. Both goroutines exit when Stop is called or ctx is
// canceled.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.watching {
		w.mu.Unlock()
		return nil
	}
	w.watching = true
	w.mu.Unlock()

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		w.mu.Lock()
		w.watching = false
		w.mu.Unlock()
		return fmt.Errorf("failed to watch %s: %w", w.path, err)
	}

	go w.processEvents(ctx)
	go w.debounceLoop(ctx)
	return nil
}

func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.watcher.Close()

		w.mu.Lock()
		w.watching = false
		w.mu.Unlock()
	})
}

func (w *Watcher) IsWatching() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.watching
}

func (w *Watcher) Path() string { return w.path }

func (w *Watcher) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			select {
			case w.changes <- struct{}{}:
			default:
				// a reload is already pending
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("document watcher error", slog.String("error", err.Error()))
		}
	}
}

func (w *Watcher) debounceLoop(ctx context.Context) {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case <-w.changes:
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
		case <-timerC:
			timer = nil
			timerC = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	doc, err := astdoc.Load(w.path)
	if err != nil {
		w.logger.Warn("document reload failed",
			slog.String("path", w.path),
			slog.String("error", err.Error()))
	} else {
		w.logger.Debug("document reloaded", slog.String("path", w.path), slog.String("id", doc.ID))
	}
	if w.handler != nil {
		w.handler(doc, err)
	}
}
