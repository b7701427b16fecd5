package evdevinput

import "github.com/dshills/clickfx/internal/click"

// Raw evdev constants, mirrored here so the translation table stays
// portable; the evdev package itself only builds on Linux.
const (
	evKey uint16 = 0x01

	btnLeft   uint16 = 0x110
	btnRight  uint16 = 0x111
	btnMiddle uint16 = 0x112
)

// buttonForCode maps an evdev key code to a click button.
// Codes outside the three handled buttons map to ButtonNone.
func buttonForCode(code uint16) click.Button {
	switch code {
	case btnLeft:
		return click.ButtonLeft
	case btnMiddle:
		return click.ButtonMiddle
	case btnRight:
		return click.ButtonRight
	default:
		return click.ButtonNone
	}
}
