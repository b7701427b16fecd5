package settings

import (
	"testing"
	"time"

	"github.com/tidwall/gjson"
)

func TestApplyAll(t *testing.T) {
	raw := `{
		"animation-time": 250,
		"icon-mode": "ring",
		"size": 24,
		"left-click-effect-enabled": false,
		"left-click-color": "#AB12CD",
		"general-opacity": 0.5,
		"animation-mode": "pulse",
		"deactivate-on-fullscreen": false
	}`

	s := Defaults()
	if err := applyAll(raw, &s); err != nil {
		t.Fatalf("applyAll() error = %v", err)
	}

	if s.AnimationTime != 250*time.Millisecond {
		t.Errorf("AnimationTime = %v, want 250ms", s.AnimationTime)
	}
	if s.IconMode != "ring" {
		t.Errorf("IconMode = %q, want %q", s.IconMode, "ring")
	}
	if s.Size != 24 {
		t.Errorf("Size = %d, want 24", s.Size)
	}
	if s.LeftEnabled {
		t.Error("LeftEnabled = true, want false")
	}
	if s.LeftColor != "#ab12cd" {
		t.Errorf("LeftColor = %q, want normalized %q", s.LeftColor, "#ab12cd")
	}
	if s.Opacity != 0.5 {
		t.Errorf("Opacity = %v, want 0.5", s.Opacity)
	}
	if s.AnimationMode != "pulse" {
		t.Errorf("AnimationMode = %q, want %q", s.AnimationMode, "pulse")
	}
	if s.DeactivateOnFullscreen {
		t.Error("DeactivateOnFullscreen = true, want false")
	}

	// Keys absent from the document keep their previous values.
	if s.RightColor != Defaults().RightColor {
		t.Errorf("RightColor = %q, want default %q", s.RightColor, Defaults().RightColor)
	}
}

func TestApplyAll_InvalidColorKeepsPrevious(t *testing.T) {
	s := Defaults()
	err := applyAll(`{"left-click-color": "not-a-color"}`, &s)
	if err == nil {
		t.Fatal("expected error for invalid color")
	}
	if s.LeftColor != Defaults().LeftColor {
		t.Errorf("LeftColor = %q, want unchanged default %q", s.LeftColor, Defaults().LeftColor)
	}
}

func TestApplyAll_InvalidValuesRejected(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"zero animation time", `{"animation-time": 0}`},
		{"negative size", `{"size": -5}`},
		{"opacity above one", `{"general-opacity": 1.5}`},
		{"empty icon mode", `{"icon-mode": ""}`},
		{"empty animation mode", `{"animation-mode": "  "}`},
	}

	for _, tt := range tests {
		s := Defaults()
		if err := applyAll(tt.raw, &s); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
		if s != Defaults() {
			t.Errorf("%s: mirror modified by invalid value", tt.name)
		}
	}
}

func TestEncodeAll_RoundTrip(t *testing.T) {
	want := Settings{
		AnimationTime:          750 * time.Millisecond,
		IconMode:               "target",
		Size:                   64,
		LeftEnabled:            true,
		RightEnabled:           false,
		MiddleEnabled:          true,
		LeftColor:              "#112233",
		MiddleColor:            "#445566",
		RightColor:             "#778899",
		Opacity:                0.25,
		AnimationMode:          "pulse",
		DeactivateOnFullscreen: true,
	}

	raw, err := encodeAll("", want)
	if err != nil {
		t.Fatalf("encodeAll() error = %v", err)
	}

	got := Settings{}
	if err := applyAll(raw, &got); err != nil {
		t.Fatalf("applyAll() error = %v", err)
	}
	if got != want {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestEncodeAll_PreservesUnboundKeys(t *testing.T) {
	raw, err := encodeAll(`{"custom-key": "kept"}`, Defaults())
	if err != nil {
		t.Fatalf("encodeAll() error = %v", err)
	}
	if gjson.Get(raw, "custom-key").String() != "kept" {
		t.Error("unbound key was not preserved across encode")
	}
}

func TestNormalizeColor(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"#ff0000", "#ff0000", false},
		{"#FF00AA", "#ff00aa", false},
		{"  #00ff00  ", "#00ff00", false},
		{"red", "", true},
		{"", "", true},
		{"#gg0000", "", true},
	}

	for _, tt := range tests {
		got, err := NormalizeColor(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("NormalizeColor(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("NormalizeColor(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizeColor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestColorKeys(t *testing.T) {
	keys := ColorKeys()
	if len(keys) != 3 {
		t.Fatalf("ColorKeys() returned %d keys, want 3", len(keys))
	}
	for _, key := range keys {
		if _, ok := lookupBinding(key); !ok {
			t.Errorf("color key %q has no binding", key)
		}
	}
}
