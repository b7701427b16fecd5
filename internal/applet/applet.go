package applet

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dshills/clickfx/internal/anim"
	"github.com/dshills/clickfx/internal/click"
	"github.com/dshills/clickfx/internal/icon"
	"github.com/dshills/clickfx/internal/settings"
)

// Monitor answers the fullscreen-state query for the current display.
type Monitor interface {
	InFullscreen() bool
}

// Deps carries the host-provided collaborators.
type Deps struct {
	// Source delivers global button-press events.
	Source click.Source

	// Renderer draws the click effect.
	Renderer anim.Renderer

	// Monitor answers fullscreen queries. May be nil; fullscreen
	// notifications then never deactivate the applet.
	Monitor Monitor

	// Logger defaults to a no-op logger.
	Logger *zap.Logger

	// SettingsPath overrides the settings file location. Defaults to
	// the user config directory under the applet UUID.
	SettingsPath string

	// CacheDir overrides the icon cache location. Defaults to the user
	// cache directory under the applet UUID.
	CacheDir string

	// DebounceWindow overrides the animation debounce window.
	DebounceWindow time.Duration

	// SettingsPollInterval overrides the settings watcher interval.
	SettingsPollInterval time.Duration
}

// Applet is one enabled instance of the click-effect plugin.
type Applet struct {
	meta    Metadata
	monitor Monitor
	logger  *zap.Logger

	bridge     *settings.Bridge
	cache      *icon.Cache
	animator   *anim.Animator
	dispatcher *click.Dispatcher

	subs []*settings.Subscription
}

// New constructs an applet. Failure to create the icon cache directory
// is fatal and leaves no partially initialized state.
func New(meta Metadata, deps Deps) (*Applet, error) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	settingsPath := deps.SettingsPath
	if settingsPath == "" {
		var err error
		settingsPath, err = settings.DefaultPath(meta.UUID)
		if err != nil {
			return nil, err
		}
	}
	cacheDir := deps.CacheDir
	if cacheDir == "" {
		var err error
		cacheDir, err = icon.DefaultDir(meta.UUID)
		if err != nil {
			return nil, err
		}
	}

	cache, err := icon.NewCache(cacheDir, meta.IconsDir(), logger)
	if err != nil {
		return nil, fmt.Errorf("initialize icon cache: %w", err)
	}

	var bridgeOpts []settings.Option
	if deps.SettingsPollInterval > 0 {
		bridgeOpts = append(bridgeOpts, settings.WithPollInterval(deps.SettingsPollInterval))
	}
	bridge := settings.NewBridge(settings.NewStore(settingsPath), logger, bridgeOpts...)

	var animOpts []anim.Option
	if deps.DebounceWindow > 0 {
		animOpts = append(animOpts, anim.WithDebounceWindow(deps.DebounceWindow))
	}
	animator := anim.NewAnimator(cache, bridge, deps.Renderer, logger, animOpts...)

	a := &Applet{
		meta:     meta,
		monitor:  deps.Monitor,
		logger:   logger,
		bridge:   bridge,
		cache:    cache,
		animator: animator,
	}
	a.dispatcher = click.NewDispatcher(deps.Source, bridge, animator.Trigger, a.regenerate, logger)
	return a, nil
}

// Settings exposes the settings bridge, for hosts that surface a
// configuration UI.
func (a *Applet) Settings() *settings.Bridge {
	return a.bridge
}

// Active reports whether the click listener is registered.
func (a *Applet) Active() bool {
	return a.dispatcher.Active()
}

// Enable loads settings, subscribes to color changes, and activates the
// dispatcher.
func (a *Applet) Enable() error {
	if err := a.bridge.Load(); err != nil {
		a.logger.Warn("settings load failed, continuing with defaults", zap.Error(err))
	}

	for _, key := range settings.ColorKeys() {
		a.subs = append(a.subs, a.bridge.SubscribeKey(key, a.onColorChange))
	}

	if err := a.dispatcher.SetActive(true); err != nil {
		return fmt.Errorf("activate click dispatcher: %w", err)
	}
	a.logger.Info("applet enabled", zap.String("uuid", a.meta.UUID))
	return nil
}

// Disable deregisters everything: settings subscriptions, the pending
// debounced animation, the click listener, and the settings watcher.
func (a *Applet) Disable() {
	for _, sub := range a.subs {
		sub.Unsubscribe()
	}
	a.subs = nil

	a.animator.Cancel()
	if err := a.dispatcher.SetActive(false); err != nil {
		a.logger.Warn("deactivate click dispatcher", zap.Error(err))
	}
	a.bridge.Close()
	a.logger.Info("applet disabled", zap.String("uuid", a.meta.UUID))
}

// HandleFullscreenChange flips the active state opposite to the
// display's fullscreen state, when deactivate-on-fullscreen is set.
func (a *Applet) HandleFullscreenChange() {
	if a.monitor == nil || !a.bridge.Snapshot().DeactivateOnFullscreen {
		return
	}

	fullscreen := a.monitor.InFullscreen()
	if err := a.dispatcher.SetActive(!fullscreen); err != nil {
		a.logger.Warn("fullscreen toggle failed", zap.Bool("fullscreen", fullscreen), zap.Error(err))
		return
	}
	a.logger.Debug("fullscreen state changed", zap.Bool("fullscreen", fullscreen))
}

// regenerate is the dispatcher's activation prepare hook: it ensures a
// colored icon exists for every enabled click type.
func (a *Applet) regenerate() error {
	s := a.bridge.Snapshot()
	a.cache.EnsureAll(s.IconMode, s.Colors())
	return nil
}

// onColorChange regenerates icons whenever a color key changes. Other
// keys are passive mirrors consulted at use time.
func (a *Applet) onColorChange(change settings.Change) {
	a.logger.Debug("click color changed",
		zap.String("key", change.Key),
		zap.Any("value", change.NewValue))
	_ = a.regenerate()
}
