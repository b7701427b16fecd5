package click

import "time"

// Button represents a mouse button.
type Button uint8

const (
	// ButtonNone indicates no recognized button.
	ButtonNone Button = iota
	// ButtonLeft is the primary (left) mouse button.
	ButtonLeft
	// ButtonMiddle is the middle mouse button (scroll wheel click).
	ButtonMiddle
	// ButtonRight is the secondary (right) mouse button.
	ButtonRight
)

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	default:
		return "none"
	}
}

// Buttons lists the buttons the dispatcher handles, in a fixed order.
func Buttons() []Button {
	return []Button{ButtonLeft, ButtonMiddle, ButtonRight}
}

// ButtonFromCode maps a numeric button identifier to a Button.
// The mapping is fixed: 1 is left, 2 is middle, 3 is right. Any other
// code maps to ButtonNone.
func ButtonFromCode(code int) Button {
	switch code {
	case 1:
		return ButtonLeft
	case 2:
		return ButtonMiddle
	case 3:
		return ButtonRight
	default:
		return ButtonNone
	}
}

// Event represents a single button-press notification from the source.
type Event struct {
	// Button is the pressed button.
	Button Button

	// X, Y are screen coordinates of the pointer at press time.
	// Sources that cannot report a position leave them zero.
	X int
	Y int

	// Time is when the event occurred.
	Time time.Time
}
