//go:build linux

package x11screen

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// Screen wraps an X11 connection for display-state queries.
type Screen struct {
	xu *xgbutil.XUtil
}

// NewScreen connects to the X server.
func NewScreen() (*Screen, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}
	return &Screen{xu: xu}, nil
}

// Close releases the X connection.
func (s *Screen) Close() {
	if s.xu != nil {
		s.xu.Conn().Close()
	}
}

// PointerPosition returns the pointer's root-window coordinates.
func (s *Screen) PointerPosition() (int, int, error) {
	reply, err := xproto.QueryPointer(s.xu.Conn(), s.xu.RootWin()).Reply()
	if err != nil {
		return 0, 0, fmt.Errorf("query pointer: %w", err)
	}
	return int(reply.RootX), int(reply.RootY), nil
}

// InFullscreen reports whether the currently active window carries the
// _NET_WM_STATE_FULLSCREEN state. Query failures count as not
// fullscreen.
func (s *Screen) InFullscreen() bool {
	active, err := ewmh.ActiveWindowGet(s.xu)
	if err != nil || active == 0 {
		return false
	}
	states, err := ewmh.WmStateGet(s.xu, active)
	if err != nil {
		return false
	}
	for _, state := range states {
		if state == "_NET_WM_STATE_FULLSCREEN" {
			return true
		}
	}
	return false
}
