package settings

import (
	"fmt"
	"strings"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// binding ties one external key to its mirror field. apply copies a
// parsed JSON value into the mirror; value reads the mirror field back
// for persistence.
type binding struct {
	key   string
	apply func(s *Settings, v gjson.Result) error
	value func(s Settings) any
}

// bindings is the static binding table. Order matters only for
// deterministic serialization.
var bindings = []binding{
	{
		key: KeyAnimationTime,
		apply: func(s *Settings, v gjson.Result) error {
			ms := v.Int()
			if ms <= 0 {
				return fmt.Errorf("animation-time must be positive, got %d", ms)
			}
			s.AnimationTime = time.Duration(ms) * time.Millisecond
			return nil
		},
		value: func(s Settings) any { return s.AnimationTime.Milliseconds() },
	},
	{
		key: KeyIconMode,
		apply: func(s *Settings, v gjson.Result) error {
			mode := strings.TrimSpace(v.String())
			if mode == "" {
				return fmt.Errorf("icon-mode must not be empty")
			}
			s.IconMode = mode
			return nil
		},
		value: func(s Settings) any { return s.IconMode },
	},
	{
		key: KeySize,
		apply: func(s *Settings, v gjson.Result) error {
			size := int(v.Int())
			if size <= 0 {
				return fmt.Errorf("size must be positive, got %d", size)
			}
			s.Size = size
			return nil
		},
		value: func(s Settings) any { return s.Size },
	},
	{
		key:   KeyLeftEnabled,
		apply: func(s *Settings, v gjson.Result) error { s.LeftEnabled = v.Bool(); return nil },
		value: func(s Settings) any { return s.LeftEnabled },
	},
	{
		key:   KeyRightEnabled,
		apply: func(s *Settings, v gjson.Result) error { s.RightEnabled = v.Bool(); return nil },
		value: func(s Settings) any { return s.RightEnabled },
	},
	{
		key:   KeyMiddleEnabled,
		apply: func(s *Settings, v gjson.Result) error { s.MiddleEnabled = v.Bool(); return nil },
		value: func(s Settings) any { return s.MiddleEnabled },
	},
	{
		key: KeyLeftColor,
		apply: func(s *Settings, v gjson.Result) error {
			color, err := NormalizeColor(v.String())
			if err != nil {
				return err
			}
			s.LeftColor = color
			return nil
		},
		value: func(s Settings) any { return s.LeftColor },
	},
	{
		key: KeyMiddleColor,
		apply: func(s *Settings, v gjson.Result) error {
			color, err := NormalizeColor(v.String())
			if err != nil {
				return err
			}
			s.MiddleColor = color
			return nil
		},
		value: func(s Settings) any { return s.MiddleColor },
	},
	{
		key: KeyRightColor,
		apply: func(s *Settings, v gjson.Result) error {
			color, err := NormalizeColor(v.String())
			if err != nil {
				return err
			}
			s.RightColor = color
			return nil
		},
		value: func(s Settings) any { return s.RightColor },
	},
	{
		key: KeyOpacity,
		apply: func(s *Settings, v gjson.Result) error {
			opacity := v.Float()
			if opacity < 0 || opacity > 1 {
				return fmt.Errorf("general-opacity must be in [0,1], got %v", opacity)
			}
			s.Opacity = opacity
			return nil
		},
		value: func(s Settings) any { return s.Opacity },
	},
	{
		key: KeyAnimationMode,
		apply: func(s *Settings, v gjson.Result) error {
			mode := strings.TrimSpace(v.String())
			if mode == "" {
				return fmt.Errorf("animation-mode must not be empty")
			}
			s.AnimationMode = mode
			return nil
		},
		value: func(s Settings) any { return s.AnimationMode },
	},
	{
		key:   KeyDeactivateOnFullscreen,
		apply: func(s *Settings, v gjson.Result) error { s.DeactivateOnFullscreen = v.Bool(); return nil },
		value: func(s Settings) any { return s.DeactivateOnFullscreen },
	},
}

// NormalizeColor validates a color string and returns its canonical
// lowercase "#rrggbb" form.
func NormalizeColor(raw string) (string, error) {
	c, err := colorful.Hex(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("invalid color %q: %w", raw, err)
	}
	return strings.ToLower(c.Hex()), nil
}

// applyAll copies every bound key present in the raw JSON document into
// the mirror. Keys that are absent or fail validation leave the mirror
// field untouched; the first validation error is returned after all
// bindings have been attempted.
func applyAll(raw string, s *Settings) error {
	var firstErr error
	for _, b := range bindings {
		v := gjson.Get(raw, b.key)
		if !v.Exists() {
			continue
		}
		if err := b.apply(s, v); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("%s: %w", b.key, err)
		}
	}
	return firstErr
}

// encodeAll serializes the mirror onto the raw JSON document, preserving
// any unbound keys the document already contains.
func encodeAll(raw string, s Settings) (string, error) {
	var err error
	for _, b := range bindings {
		raw, err = sjson.Set(raw, b.key, b.value(s))
		if err != nil {
			return "", fmt.Errorf("encode %s: %w", b.key, err)
		}
	}
	return raw, nil
}
