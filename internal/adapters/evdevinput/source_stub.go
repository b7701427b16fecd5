//go:build !linux

package evdevinput

import (
	"errors"

	"go.uber.org/zap"

	"github.com/dshills/clickfx/internal/click"
)

// PositionFunc reports the current pointer position in screen
// coordinates.
type PositionFunc func() (x, y int, err error)

// Source is unavailable off Linux.
type Source struct{}

// NewSource reports that evdev input requires Linux.
func NewSource(string, PositionFunc, *zap.Logger) (*Source, error) {
	return nil, errors.New("evdev input is only available on Linux")
}

// Subscribe always fails off Linux.
func (s *Source) Subscribe(func(click.Event)) (func(), error) {
	return nil, errors.New("evdev input is only available on Linux")
}

// Close is a no-op off Linux.
func (s *Source) Close() {}

// DeviceInfo describes one input device for --list-devices output.
type DeviceInfo struct {
	Path      string
	Name      string
	IsPointer bool
	IsVirtual bool
}

// ListDevices reports that evdev input requires Linux.
func ListDevices() ([]DeviceInfo, error) {
	return nil, errors.New("evdev input is only available on Linux")
}
