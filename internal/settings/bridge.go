package settings

import (
	"fmt"
	"sync"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.uber.org/zap"

	"github.com/dshills/clickfx/internal/click"
)

// Bridge binds the persisted configuration to an in-memory Settings
// mirror. It owns the store, the change notifier, and the file watcher.
type Bridge struct {
	mu sync.RWMutex

	current  Settings
	store    *Store
	notifier *notifier
	watcher  *watcher
	logger   *zap.Logger

	enableWatcher bool
	pollInterval  time.Duration
	loaded        bool
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithWatcher enables or disables live reload of the settings file.
func WithWatcher(enable bool) Option {
	return func(b *Bridge) {
		b.enableWatcher = enable
	}
}

// WithPollInterval sets the watcher polling interval.
func WithPollInterval(interval time.Duration) Option {
	return func(b *Bridge) {
		b.pollInterval = interval
	}
}

// NewBridge creates a bridge over the given store. Call Load before use.
func NewBridge(store *Store, logger *zap.Logger, opts ...Option) *Bridge {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &Bridge{
		current:       Defaults(),
		store:         store,
		notifier:      newNotifier(),
		logger:        logger,
		enableWatcher: true,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Load reads the settings file into the mirror and starts the watcher.
// A missing file is created with defaults. An unreadable or invalid file
// leaves the affected fields at their defaults; that is logged, not
// fatal.
func (b *Bridge) Load() error {
	b.mu.Lock()
	if b.loaded {
		b.mu.Unlock()
		return nil
	}
	b.loaded = true
	b.mu.Unlock()

	raw, err := b.store.Load()
	if err != nil {
		b.logger.Warn("settings unreadable, using defaults", zap.Error(err))
	}

	if raw == "" {
		encoded, encErr := encodeAll("", Defaults())
		if encErr != nil {
			return encErr
		}
		if saveErr := b.store.Save(encoded); saveErr != nil {
			b.logger.Warn("failed to write default settings", zap.Error(saveErr))
		}
	} else {
		b.mu.Lock()
		if applyErr := applyAll(raw, &b.current); applyErr != nil {
			b.logger.Warn("settings contain invalid values", zap.Error(applyErr))
		}
		b.mu.Unlock()
	}

	if b.enableWatcher {
		b.watcher = newWatcher(b.store.Path(), b.pollInterval, b.reload)
		b.watcher.start()
	}
	return nil
}

// Close stops the watcher. The last loaded values remain readable.
func (b *Bridge) Close() {
	if b.watcher != nil {
		b.watcher.stop()
	}
}

// Snapshot returns a copy of the current mirror.
func (b *Bridge) Snapshot() Settings {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.current
}

// ButtonEffect implements click.Gate: it reports the configured color
// for a button and whether its effect is enabled.
func (b *Bridge) ButtonEffect(btn click.Button) (string, bool) {
	s := b.Snapshot()
	if !s.EnabledFor(btn) {
		return "", false
	}
	return s.ColorFor(btn), true
}

// Subscribe registers an observer for all settings changes.
func (b *Bridge) Subscribe(observer Observer) *Subscription {
	return b.notifier.subscribe(observer)
}

// SubscribeKey registers an observer for changes to one external key.
func (b *Bridge) SubscribeKey(key string, observer Observer) *Subscription {
	return b.notifier.subscribeKey(key, observer)
}

// Set updates one external key, persists it, and notifies observers.
// The value is validated through the binding table before anything is
// written.
func (b *Bridge) Set(key string, value any) error {
	bd, ok := lookupBinding(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	raw, err := b.store.Load()
	if err != nil {
		return err
	}
	raw, err = sjson.Set(raw, key, value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	b.mu.Lock()
	next := b.current
	if err := bd.apply(&next, gjson.Get(raw, key)); err != nil {
		b.mu.Unlock()
		return fmt.Errorf("%s: %w", key, err)
	}
	old := bd.value(b.current)
	b.current = next
	b.mu.Unlock()

	if err := b.store.Save(raw); err != nil {
		return err
	}
	if b.watcher != nil {
		b.watcher.markClean()
	}

	newValue := bd.value(next)
	if old != newValue {
		b.notifier.notify(Change{Key: key, OldValue: old, NewValue: newValue, Source: "set"})
	}
	return nil
}

// reload re-applies the bindings after an external file change and
// notifies any keys whose values differ from the mirror.
func (b *Bridge) reload() {
	raw, err := b.store.Load()
	if err != nil || raw == "" {
		return
	}

	b.mu.Lock()
	old := b.current
	next := b.current
	if applyErr := applyAll(raw, &next); applyErr != nil {
		b.logger.Warn("reloaded settings contain invalid values", zap.Error(applyErr))
	}
	b.current = next
	b.mu.Unlock()

	for _, bd := range bindings {
		oldValue := bd.value(old)
		newValue := bd.value(next)
		if oldValue != newValue {
			b.notifier.notify(Change{Key: bd.key, OldValue: oldValue, NewValue: newValue, Source: "reload"})
		}
	}
}

func lookupBinding(key string) (binding, bool) {
	for _, bd := range bindings {
		if bd.key == key {
			return bd, true
		}
	}
	return binding{}, false
}
