package anim

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/dshills/clickfx/internal/click"
	"github.com/dshills/clickfx/internal/icon"
	"github.com/dshills/clickfx/internal/settings"
)

type recordingRenderer struct {
	mu      sync.Mutex
	handles []icon.Handle
	opts    []Options
	xs, ys  []int
}

func (r *recordingRenderer) Animate(handle icon.Handle, x, y int, opts Options) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handles = append(r.handles, handle)
	r.opts = append(r.opts, opts)
	r.xs = append(r.xs, x)
	r.ys = append(r.ys, y)
}

func (r *recordingRenderer) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handles)
}

func newTestAnimator(t *testing.T) (*Animator, *icon.Cache, *settings.Bridge, *recordingRenderer) {
	t.Helper()

	baseDir := t.TempDir()
	svg := `<svg xmlns="http://www.w3.org/2000/svg"><circle fill="#000000"/></svg>`
	if err := os.WriteFile(filepath.Join(baseDir, "default.svg"), []byte(svg), 0o644); err != nil {
		t.Fatalf("write base icon: %v", err)
	}

	cache, err := icon.NewCache(filepath.Join(t.TempDir(), "icons"), baseDir, zap.NewNop())
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}

	bridge := settings.NewBridge(
		settings.NewStore(filepath.Join(t.TempDir(), "settings.json")),
		zap.NewNop(),
		settings.WithWatcher(false),
	)
	if err := bridge.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	t.Cleanup(bridge.Close)

	renderer := &recordingRenderer{}
	a := NewAnimator(cache, bridge, renderer, zap.NewNop(), WithDebounceWindow(10*time.Millisecond))
	return a, cache, bridge, renderer
}

func TestAnimator_MissingIconSkipsSilently(t *testing.T) {
	a, _, _, renderer := newTestAnimator(t)

	a.Trigger(click.Event{Button: click.ButtonLeft}, "#ff0000")

	time.Sleep(50 * time.Millisecond)
	if renderer.count() != 0 {
		t.Errorf("renderer invoked %d times with no icon, want 0", renderer.count())
	}
}

func TestAnimator_RendersWithConfiguredOptions(t *testing.T) {
	a, cache, bridge, renderer := newTestAnimator(t)

	s := bridge.Snapshot()
	if _, err := cache.Generate(icon.Key{Mode: s.IconMode, Click: click.ButtonLeft, Color: "#ff0000"}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	a.Trigger(click.Event{Button: click.ButtonLeft, X: 100, Y: 200}, "#ff0000")

	if renderer.count() != 1 {
		t.Fatalf("renderer invoked %d times, want 1", renderer.count())
	}
	opts := renderer.opts[0]
	if opts.Opacity != s.Opacity {
		t.Errorf("Opacity = %v, want %v", opts.Opacity, s.Opacity)
	}
	if opts.IconSize != s.Size {
		t.Errorf("IconSize = %d, want %d", opts.IconSize, s.Size)
	}
	if opts.Timeout != s.AnimationTime {
		t.Errorf("Timeout = %v, want %v", opts.Timeout, s.AnimationTime)
	}
	if opts.Mode != s.AnimationMode {
		t.Errorf("Mode = %q, want %q", opts.Mode, s.AnimationMode)
	}
	if renderer.xs[0] != 100 || renderer.ys[0] != 200 {
		t.Errorf("position = (%d,%d), want (100,200)", renderer.xs[0], renderer.ys[0])
	}
}

func TestAnimator_CancelSuppressesPending(t *testing.T) {
	a, cache, bridge, renderer := newTestAnimator(t)

	s := bridge.Snapshot()
	if _, err := cache.Generate(icon.Key{Mode: s.IconMode, Click: click.ButtonLeft, Color: "#ff0000"}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	a.Trigger(click.Event{Button: click.ButtonLeft}, "#ff0000") // leading edge
	a.Trigger(click.Event{Button: click.ButtonLeft}, "#ff0000") // pending
	a.Cancel()

	time.Sleep(50 * time.Millisecond)
	if renderer.count() != 1 {
		t.Errorf("renderer invoked %d times, want 1 (pending canceled)", renderer.count())
	}
}
