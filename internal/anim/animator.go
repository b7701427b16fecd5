package anim

import (
	"time"

	"go.uber.org/zap"

	"github.com/dshills/clickfx/internal/click"
	"github.com/dshills/clickfx/internal/icon"
	"github.com/dshills/clickfx/internal/settings"
)

// defaultWindow is the debounce window applied when none is configured.
const defaultWindow = 100 * time.Millisecond

// Options is the record handed to the renderer on every invocation.
type Options struct {
	// Opacity of the rendered effect, in [0,1].
	Opacity float64

	// IconSize is the rendered size in pixels.
	IconSize int

	// Timeout is how long the effect stays visible.
	Timeout time.Duration

	// Mode names the animation style.
	Mode string
}

// Renderer draws a click effect. Implementations are host-provided:
// the applet only resolves the icon and computes the options.
type Renderer interface {
	Animate(handle icon.Handle, x, y int, opts Options)
}

// Animator resolves icon handles for debounced triggers and invokes
// the renderer. A trigger whose icon cannot be resolved is skipped
// silently; absence is an expected state before first generation.
type Animator struct {
	cache    *icon.Cache
	bridge   *settings.Bridge
	renderer Renderer
	debounce *Debouncer
	logger   *zap.Logger
}

// Option configures an Animator.
type Option func(*Animator)

// WithDebounceWindow overrides the debounce window.
func WithDebounceWindow(window time.Duration) Option {
	return func(a *Animator) {
		a.debounce = NewDebouncer(window, a.fire)
	}
}

// NewAnimator creates an animator over the given cache, settings
// bridge, and renderer.
func NewAnimator(cache *icon.Cache, bridge *settings.Bridge, renderer Renderer, logger *zap.Logger, opts ...Option) *Animator {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Animator{
		cache:    cache,
		bridge:   bridge,
		renderer: renderer,
		logger:   logger,
	}
	a.debounce = NewDebouncer(defaultWindow, a.fire)
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Trigger requests an animation for a dispatched click event. The
// request passes through the debouncer before anything is rendered.
func (a *Animator) Trigger(ev click.Event, color string) {
	a.debounce.Trigger(Request{Button: ev.Button, Color: color, X: ev.X, Y: ev.Y})
}

// Cancel drops any pending debounced request. Called on deactivation so
// no animation fires after teardown.
func (a *Animator) Cancel() {
	a.debounce.Cancel()
}

func (a *Animator) fire(req Request) {
	s := a.bridge.Snapshot()

	key := icon.Key{Mode: s.IconMode, Click: req.Button, Color: req.Color}
	handle, ok := a.cache.Lookup(key)
	if !ok {
		a.logger.Debug("no icon for click, skipping animation",
			zap.String("mode", key.Mode),
			zap.String("click", key.Click.String()),
			zap.String("color", key.Color))
		return
	}

	a.renderer.Animate(handle, req.X, req.Y, Options{
		Opacity:  s.Opacity,
		IconSize: s.Size,
		Timeout:  s.AnimationTime,
		Mode:     s.AnimationMode,
	})
}
