//go:build !linux

package x11screen

import "errors"

// Screen is unavailable off Linux.
type Screen struct{}

// NewScreen reports that X11 queries require Linux.
func NewScreen() (*Screen, error) {
	return nil, errors.New("x11 display queries are only available on Linux")
}

// Close is a no-op off Linux.
func (s *Screen) Close() {}

// PointerPosition always fails off Linux.
func (s *Screen) PointerPosition() (int, int, error) {
	return 0, 0, errors.New("x11 display queries are only available on Linux")
}

// InFullscreen always reports false off Linux.
func (s *Screen) InFullscreen() bool { return false }
