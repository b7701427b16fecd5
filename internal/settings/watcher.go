package settings

import (
	"context"
	"os"
	"sync"
	"time"
)

// defaultPollInterval is how often the watcher checks the settings file.
const defaultPollInterval = 500 * time.Millisecond

// watcher monitors the settings file for external modification by
// polling its modification time.
type watcher struct {
	mu sync.Mutex

	path     string
	modTime  time.Time
	interval time.Duration
	handler  func()

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
}

func newWatcher(path string, interval time.Duration, handler func()) *watcher {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &watcher{
		path:     path,
		interval: interval,
		handler:  handler,
		ctx:      ctx,
		cancel:   cancel,
	}
	if info, err := os.Stat(path); err == nil {
		w.modTime = info.ModTime()
	}
	return w
}

// start begins polling. Calling start on a running watcher is a no-op.
func (w *watcher) start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return
	}
	w.started = true
	w.wg.Add(1)
	go w.loop()
}

// stop halts polling and waits for the poll goroutine to exit.
func (w *watcher) stop() {
	w.mu.Lock()
	if !w.started {
		w.mu.Unlock()
		return
	}
	w.started = false
	w.mu.Unlock()

	w.cancel()
	w.wg.Wait()
}

// markClean records the current modification time so a write performed
// by the bridge itself does not trigger a reload.
func (w *watcher) markClean() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if info, err := os.Stat(w.path); err == nil {
		w.modTime = info.ModTime()
	}
}

func (w *watcher) loop() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			w.check()
		}
	}
}

func (w *watcher) check() {
	info, err := os.Stat(w.path)
	if err != nil {
		return
	}

	w.mu.Lock()
	changed := info.ModTime().After(w.modTime)
	if changed {
		w.modTime = info.ModTime()
	}
	handler := w.handler
	w.mu.Unlock()

	if changed && handler != nil {
		handler()
	}
}
