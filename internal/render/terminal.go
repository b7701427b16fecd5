package render

import (
	"fmt"
	"math"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/clickfx/internal/anim"
	"github.com/dshills/clickfx/internal/icon"
)

// cellsPerSize converts the configured icon size in pixels to a radius
// in terminal cells.
const cellsPerSize = 8

type effect struct {
	x, y  int
	color colorful.Color
	start time.Time
	opts  anim.Options
}

// Terminal renders click effects as expanding rings of cells on a tcell
// screen. It implements anim.Renderer.
type Terminal struct {
	mu      sync.Mutex
	screen  tcell.Screen
	effects []*effect
}

// NewTerminal creates a renderer that draws onto the given screen. The
// caller owns the screen lifecycle.
func NewTerminal(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

// Animate adds an effect at the click location. The effect color is the
// fill color of the referenced icon file.
func (t *Terminal) Animate(handle icon.Handle, x, y int, opts anim.Options) {
	color, err := fillColor(handle.Path)
	if err != nil {
		color = colorful.Color{R: 1, G: 1, B: 1}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.effects = append(t.effects, &effect{
		x:     x,
		y:     y,
		color: color,
		start: time.Now(),
		opts:  opts,
	})
}

// Active reports whether any effect is still animating.
func (t *Terminal) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.effects) > 0
}

// Render paints all active effects for the given frame time and drops
// expired ones. It does not call Show; the host's draw loop does.
func (t *Terminal) Render(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	alive := t.effects[:0]
	for _, e := range t.effects {
		if e.opts.Timeout <= 0 {
			continue
		}
		progress := float64(now.Sub(e.start)) / float64(e.opts.Timeout)
		if progress >= 1 {
			continue
		}
		t.paint(e, clamp01(progress))
		alive = append(alive, e)
	}
	t.effects = alive
}

func (t *Terminal) paint(e *effect, progress float64) {
	maxRadius := float64(e.opts.IconSize) / cellsPerSize
	if maxRadius < 1 {
		maxRadius = 1
	}

	var radius float64
	switch e.opts.Mode {
	case "shrink":
		radius = (1 - EaseOutQuad(progress)) * maxRadius
	case "pulse":
		radius = math.Sin(progress*math.Pi) * maxRadius
	default: // "expand"
		radius = EaseOutCubic(progress) * maxRadius
	}

	intensity := (1 - EaseSmoothstep(progress)) * e.opts.Opacity
	faded := colorful.Color{}.BlendRgb(e.color, clamp01(intensity))
	style := tcell.StyleDefault.Foreground(
		tcell.NewRGBColor(
			int32(faded.R*255),
			int32(faded.G*255),
			int32(faded.B*255),
		),
	)

	if radius < 0.5 {
		t.screen.SetContent(e.x, e.y, '•', nil, style)
		return
	}

	// Cells are roughly twice as tall as wide; stretch x to keep the
	// ring visually circular.
	steps := int(radius*8) + 8
	for i := 0; i < steps; i++ {
		angle := 2 * math.Pi * float64(i) / float64(steps)
		x := e.x + int(math.Round(math.Cos(angle)*radius*2))
		y := e.y + int(math.Round(math.Sin(angle)*radius))
		t.screen.SetContent(x, y, '•', nil, style)
	}
}

// fillColor extracts the first fill attribute color from an SVG file.
func fillColor(path string) (colorful.Color, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return colorful.Color{}, err
	}

	const marker = `fill="`
	idx := strings.Index(string(data), marker)
	if idx < 0 {
		return colorful.Color{}, fmt.Errorf("no fill attribute in %s", path)
	}
	rest := string(data)[idx+len(marker):]
	end := strings.IndexByte(rest, '"')
	if end < 0 {
		return colorful.Color{}, fmt.Errorf("unterminated fill attribute in %s", path)
	}

	c, err := colorful.Hex(rest[:end])
	if err != nil {
		return colorful.Color{}, fmt.Errorf("fill color in %s: %w", path, err)
	}
	return c, nil
}
