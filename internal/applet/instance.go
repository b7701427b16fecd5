package applet

import "sync"

// The host plugin contract runs one applet per lifecycle. The handle
// lives here, constructed by Enable and dropped by Disable so the next
// Enable builds fresh state.
var (
	instanceMu  sync.Mutex
	instance    *Applet
	initialized bool
	meta        Metadata
	deps        Deps
)

// Init records the metadata and collaborators for subsequent Enable
// calls. It does not construct the applet.
func Init(m Metadata, d Deps) {
	instanceMu.Lock()
	defer instanceMu.Unlock()
	meta = m
	deps = d
	initialized = true
}

// Enable constructs and enables the process-wide applet instance.
func Enable() error {
	instanceMu.Lock()
	defer instanceMu.Unlock()

	if !initialized {
		return ErrNotInitialized
	}
	if instance != nil {
		return ErrAlreadyEnabled
	}

	a, err := New(meta, deps)
	if err != nil {
		return err
	}
	if err := a.Enable(); err != nil {
		return err
	}
	instance = a
	return nil
}

// Disable tears down and drops the process-wide instance. Calling it
// with no enabled instance is a no-op.
func Disable() {
	instanceMu.Lock()
	defer instanceMu.Unlock()

	if instance == nil {
		return
	}
	instance.Disable()
	instance = nil
}

// Instance returns the enabled applet, or nil.
func Instance() *Applet {
	instanceMu.Lock()
	defer instanceMu.Unlock()
	return instance
}
