package settings

import "sync"

// Change describes one settings value change.
type Change struct {
	// Key is the external key that changed.
	Key string

	// OldValue is the previous value (may be nil on first load).
	OldValue any

	// NewValue is the new value.
	NewValue any

	// Source identifies where the change came from ("load", "set",
	// "reload").
	Source string
}

// Observer is called when a settings change occurs.
type Observer func(change Change)

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	notifier *notifier
}

// Unsubscribe removes this subscription. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

// notifier manages settings change subscriptions. Observers are invoked
// outside the lock, so they may call back into the Bridge.
type notifier struct {
	mu sync.RWMutex

	globalObservers map[uint64]Observer
	keyObservers    map[string]map[uint64]Observer
	nextID          uint64
}

func newNotifier() *notifier {
	return &notifier{
		globalObservers: make(map[uint64]Observer),
		keyObservers:    make(map[string]map[uint64]Observer),
	}
}

func (n *notifier) subscribe(observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.globalObservers[id] = observer
	return &Subscription{id: id, notifier: n}
}

func (n *notifier) subscribeKey(key string, observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	if n.keyObservers[key] == nil {
		n.keyObservers[key] = make(map[uint64]Observer)
	}
	n.keyObservers[key][id] = observer
	return &Subscription{id: id, notifier: n}
}

func (n *notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.globalObservers, id)
	for key, observers := range n.keyObservers {
		delete(observers, id)
		if len(observers) == 0 {
			delete(n.keyObservers, key)
		}
	}
}

func (n *notifier) notify(change Change) {
	n.mu.RLock()
	observers := make([]Observer, 0, len(n.globalObservers))
	for _, obs := range n.globalObservers {
		observers = append(observers, obs)
	}
	for _, obs := range n.keyObservers[change.Key] {
		observers = append(observers, obs)
	}
	n.mu.RUnlock()

	for _, obs := range observers {
		obs(change)
	}
}
