package applet

import "errors"

var (
	// ErrNotInitialized indicates Enable was called before Init.
	ErrNotInitialized = errors.New("applet not initialized")

	// ErrAlreadyEnabled indicates Enable was called twice without an
	// intervening Disable.
	ErrAlreadyEnabled = errors.New("applet already enabled")
)
