package click

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Source delivers global button-press events. Implementations are
// host-provided (an input adapter or a UI toolkit event loop).
type Source interface {
	// Subscribe registers a handler for button-press events and returns
	// a cancel function that deregisters it.
	Subscribe(handler func(Event)) (cancel func(), err error)
}

// Gate reports whether the effect for a button is currently enabled and,
// if so, which color it should use. It is consulted on every event so
// configuration changes take effect immediately.
type Gate interface {
	ButtonEffect(b Button) (color string, enabled bool)
}

// Forward receives an event that passed the per-button gate, together
// with the configured color for that button.
type Forward func(ev Event, color string)

// Dispatcher routes button-press events from a Source to a Forward target.
type Dispatcher struct {
	mu sync.Mutex

	source  Source
	gate    Gate
	forward Forward

	// prepare runs on every activation, before the listener is
	// registered. The applet uses it to regenerate colored icons.
	prepare func() error

	cancel func()
	logger *zap.Logger
}

// NewDispatcher creates a dispatcher in the inactive state. prepare may
// be nil.
func NewDispatcher(source Source, gate Gate, forward Forward, prepare func() error, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		source:  source,
		gate:    gate,
		forward: forward,
		prepare: prepare,
		logger:  logger,
	}
}

// Active reports whether the listener is currently registered.
func (d *Dispatcher) Active() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cancel != nil
}

// SetActive transitions the dispatcher between its two states.
// Activating always deregisters any existing listener first, then runs
// the prepare hook, then registers. Deactivating only deregisters.
func (d *Dispatcher) SetActive(active bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	if !active {
		return nil
	}

	if d.prepare != nil {
		if err := d.prepare(); err != nil {
			d.logger.Warn("activation prepare hook failed", zap.Error(err))
		}
	}

	cancel, err := d.source.Subscribe(d.handle)
	if err != nil {
		return fmt.Errorf("subscribe to event source: %w", err)
	}
	d.cancel = cancel
	return nil
}

// handle routes one event to the forward target if its button is
// recognized and its per-button effect is enabled.
func (d *Dispatcher) handle(ev Event) {
	switch ev.Button {
	case ButtonLeft, ButtonMiddle, ButtonRight:
	default:
		return
	}

	color, enabled := d.gate.ButtonEffect(ev.Button)
	if !enabled {
		return
	}
	d.forward(ev, color)
}
