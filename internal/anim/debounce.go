package anim

import (
	"sync"
	"time"

	"github.com/dshills/clickfx/internal/click"
)

// Request describes one animation trigger.
type Request struct {
	Button click.Button
	Color  string
	X      int
	Y      int
}

// Debouncer owns the debounce timer. It holds at most one pending
// request; a trigger arriving while one is pending replaces it, so only
// the most recent request in a window can fire.
type Debouncer struct {
	mu sync.Mutex

	window  time.Duration
	fire    func(Request)
	timer   *time.Timer
	pending *Request
	last    time.Time
}

// NewDebouncer creates a debouncer that invokes fire at most roughly
// once per window.
func NewDebouncer(window time.Duration, fire func(Request)) *Debouncer {
	return &Debouncer{window: window, fire: fire}
}

// Trigger requests an animation. If the quiet period has elapsed the
// request fires immediately; otherwise it becomes (or replaces) the
// pending request.
func (d *Debouncer) Trigger(req Request) {
	d.mu.Lock()
	now := time.Now()

	if d.pending == nil && now.Sub(d.last) >= d.window {
		d.last = now
		fn := d.fire
		d.mu.Unlock()
		fn(req)
		return
	}

	r := req
	d.pending = &r
	if d.timer == nil {
		delay := d.window - now.Sub(d.last)
		if delay < 0 {
			delay = 0
		}
		d.timer = time.AfterFunc(delay, d.flush)
	}
	d.mu.Unlock()
}

// Cancel drops the pending request and stops the timer. A request that
// already fired is unaffected.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
}

// Pending reports whether a request is waiting on the timer.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

func (d *Debouncer) flush() {
	d.mu.Lock()
	d.timer = nil
	req := d.pending
	d.pending = nil
	if req == nil {
		d.mu.Unlock()
		return
	}
	d.last = time.Now()
	fn := d.fire
	d.mu.Unlock()
	fn(*req)
}
