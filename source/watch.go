package source

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/andareed/siftly-rangeview/logging"
)

const defaultDebounce = 300 * time.Millisecond

// Watcher reports changes to a single local file. It watches the parent
// directory so editors that replace the file on save are still seen.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	changes  chan string
	doneCh   chan struct{}
	running  bool
}

// NewWatcher prepares a watcher for path. Call Start to begin.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &Watcher{
		watcher:  fw,
		path:     abs,
		debounce: debounce,
		changes:  make(chan string, 1),
		doneCh:   make(chan struct{}),
	}, nil
}

// Changes delivers the watched path after each debounced burst of writes.
// The channel is closed once the watcher stops.
func (w *Watcher) Changes() <-chan string { return w.changes }

// Start begins watching. It returns immediately; the loop ends when ctx is
// cancelled or Close is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	defer w.mu.Unlock()

	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.running = true
	logging.Infof("source: watching %s", w.path)

	go w.run(ctx)
	return nil
}

// Close stops the watcher and waits for its loop to exit.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	w.mu.Lock()
	running := w.running
	w.mu.Unlock()
	if running {
		<-w.doneCh
	}
	return err
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)
	defer close(w.changes)

	var (
		timer  *time.Timer
		fireCh <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			logging.Debugf("source: %s on %s", ev.Op, ev.Name)
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
			fireCh = timer.C

		case <-fireCh:
			fireCh = nil
			select {
			case w.changes <- w.path:
			default:
				// a change is already queued
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Warnf("source: watcher error: %v", err)
		}
	}
}
