package settings

import (
	"time"

	"github.com/dshills/clickfx/internal/click"
)

// External key names. These match the persisted configuration exactly
// and never change independently of it.
const (
	KeyAnimationTime          = "animation-time"
	KeyIconMode               = "icon-mode"
	KeySize                   = "size"
	KeyLeftEnabled            = "left-click-effect-enabled"
	KeyRightEnabled           = "right-click-effect-enabled"
	KeyMiddleEnabled          = "middle-click-effect-enabled"
	KeyLeftColor              = "left-click-color"
	KeyMiddleColor            = "middle-click-color"
	KeyRightColor             = "right-click-color"
	KeyOpacity                = "general-opacity"
	KeyAnimationMode          = "animation-mode"
	KeyDeactivateOnFullscreen = "deactivate-on-fullscreen"
)

// ColorKeys lists the keys whose changes require icon regeneration.
func ColorKeys() []string {
	return []string{KeyLeftColor, KeyMiddleColor, KeyRightColor}
}

// Settings is the in-memory mirror of the persisted configuration.
// Mutating a copy does not affect the stored configuration; use
// Bridge.Set to update values.
type Settings struct {
	// AnimationTime is how long a triggered animation stays visible.
	// Persisted as milliseconds under "animation-time".
	AnimationTime time.Duration

	// IconMode selects which base icon asset is colorized.
	IconMode string

	// Size is the rendered icon size in pixels.
	Size int

	// Per-button effect enable flags.
	LeftEnabled   bool
	RightEnabled  bool
	MiddleEnabled bool

	// Per-button effect colors, normalized "#rrggbb" hex strings.
	LeftColor   string
	MiddleColor string
	RightColor  string

	// Opacity is the effect opacity in [0,1].
	Opacity float64

	// AnimationMode names the animation style handed to the renderer.
	AnimationMode string

	// DeactivateOnFullscreen suspends the applet while the current
	// display is fullscreen.
	DeactivateOnFullscreen bool
}

// Defaults returns the configuration used before any file exists.
func Defaults() Settings {
	return Settings{
		AnimationTime:          500 * time.Millisecond,
		IconMode:               "default",
		Size:                   40,
		LeftEnabled:            true,
		RightEnabled:           true,
		MiddleEnabled:          true,
		LeftColor:              "#ffa500",
		MiddleColor:            "#00ff00",
		RightColor:             "#ff0000",
		Opacity:                0.8,
		AnimationMode:          "expand",
		DeactivateOnFullscreen: true,
	}
}

// ColorFor returns the configured color for a button.
func (s Settings) ColorFor(b click.Button) string {
	switch b {
	case click.ButtonLeft:
		return s.LeftColor
	case click.ButtonMiddle:
		return s.MiddleColor
	case click.ButtonRight:
		return s.RightColor
	default:
		return ""
	}
}

// EnabledFor reports whether the effect for a button is enabled.
func (s Settings) EnabledFor(b click.Button) bool {
	switch b {
	case click.ButtonLeft:
		return s.LeftEnabled
	case click.ButtonMiddle:
		return s.MiddleEnabled
	case click.ButtonRight:
		return s.RightEnabled
	default:
		return false
	}
}

// Colors returns the per-button color table used for icon regeneration.
func (s Settings) Colors() map[click.Button]string {
	return map[click.Button]string{
		click.ButtonLeft:   s.LeftColor,
		click.ButtonMiddle: s.MiddleColor,
		click.ButtonRight:  s.RightColor,
	}
}
