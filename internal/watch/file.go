package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pfrederiksen/mytime-ics/internal/logger"
)

// DefaultDebounce is how long a file must stay quiet before FileTrigger fires.
const DefaultDebounce = 500 * time.Millisecond

// FileTrigger fires when a single file is created or written. Rapid saves are
// debounced into one signal.
type FileTrigger struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	path        string
	dir         string
	debounceDur time.Duration
	pendingAt   time.Time
	pending     bool
	ch          chan struct{}
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
	stopped     bool
}

// NewFileTrigger creates a trigger for path. A debounce of zero uses DefaultDebounce.
func NewFileTrigger(path string, debounce time.Duration) (*FileTrigger, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	return &FileTrigger{
		watcher:     watcher,
		path:        abs,
		dir:         filepath.Dir(abs),
		debounceDur: debounce,
		ch:          make(chan struct{}, 1),
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// C returns the signal channel.
func (ft *FileTrigger) C() <-chan struct{} {
	return ft.ch
}

// Start watches the file's directory, so that editors which replace the file
// on save are still seen.
func (ft *FileTrigger) Start(ctx context.Context) error {
	ft.mu.Lock()
	if ft.running || ft.stopped {
		ft.mu.Unlock()
		return nil
	}
	ft.running = true
	ft.mu.Unlock()

	if err := ft.watcher.Add(ft.dir); err != nil {
		ft.mu.Lock()
		ft.running = false
		ft.mu.Unlock()
		return fmt.Errorf("watching %s: %w", ft.dir, err)
	}

	logger.Debug("watching file", logger.Fields{"path": ft.path})

	go ft.run(ctx)
	return nil
}

// Stop stops the watcher and waits for cleanup.
func (ft *FileTrigger) Stop() {
	ft.mu.Lock()
	if ft.stopped {
		ft.mu.Unlock()
		return
	}
	ft.stopped = true
	wasRunning := ft.running
	ft.running = false
	ft.mu.Unlock()

	close(ft.stopCh)
	if wasRunning {
		<-ft.doneCh
	}

	if err := ft.watcher.Close(); err != nil {
		logger.Warn("closing file watcher", logger.Fields{"error": err.Error()})
	}
}

func (ft *FileTrigger) run(ctx context.Context) {
	defer close(ft.doneCh)

	tick := ft.debounceDur / 5
	if tick <= 0 {
		tick = time.Millisecond
	}
	debounceTicker := time.NewTicker(tick)
	defer debounceTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ft.stopCh:
			return

		case event, ok := <-ft.watcher.Events:
			if !ok {
				return
			}
			ft.handleEvent(event)

		case err, ok := <-ft.watcher.Errors:
			if !ok {
				return
			}
			logger.IncrCounter("watch.errors")
			logger.Error("file watcher error", logger.Fields{"path": ft.path}, err)

		case <-debounceTicker.C:
			ft.processDebounced()
		}
	}
}

func (ft *FileTrigger) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != ft.path {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	ft.mu.Lock()
	ft.pending = true
	ft.pendingAt = time.Now()
	ft.mu.Unlock()
}

func (ft *FileTrigger) processDebounced() {
	ft.mu.Lock()
	ready := ft.pending && time.Since(ft.pendingAt) >= ft.debounceDur
	if ready {
		ft.pending = false
	}
	ft.mu.Unlock()

	if ready {
		logger.IncrCounter("watch.file_changes")
		notify(ft.ch)
	}
}

// notify sends without blocking; a signal already waiting covers this one.
func notify(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}
