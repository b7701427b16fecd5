package evdevinput

import (
	"testing"

	"github.com/dshills/clickfx/internal/click"
)

func TestButtonForCode(t *testing.T) {
	tests := []struct {
		code uint16
		want click.Button
	}{
		{btnLeft, click.ButtonLeft},
		{btnMiddle, click.ButtonMiddle},
		{btnRight, click.ButtonRight},
		{0x113, click.ButtonNone}, // BTN_SIDE
		{0, click.ButtonNone},
	}

	for _, tt := range tests {
		if got := buttonForCode(tt.code); got != tt.want {
			t.Errorf("buttonForCode(%#x) = %v, want %v", tt.code, got, tt.want)
		}
	}
}
