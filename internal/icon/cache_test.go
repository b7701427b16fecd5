package icon

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/dshills/clickfx/internal/click"
)

const testBaseSVG = `<?xml version="1.0"?>
<svg xmlns="http://www.w3.org/2000/svg" width="48" height="48">
  <circle cx="24" cy="24" r="20" fill="#000000"/>
  <rect x="10" y="10" width="4" height="4" fill="#000000"/>
</svg>
`

func newTestCache(t *testing.T) *Cache {
	t.Helper()

	baseDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(baseDir, "default.svg"), []byte(testBaseSVG), 0o644); err != nil {
		t.Fatalf("write base icon: %v", err)
	}

	c, err := NewCache(filepath.Join(t.TempDir(), "icons"), baseDir, zap.NewNop())
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}
	return c
}

func TestNewCache_UncreatableDirIsFatal(t *testing.T) {
	// A regular file where the parent directory should be forces
	// MkdirAll to fail.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}

	_, err := NewCache(filepath.Join(blocker, "icons"), t.TempDir(), zap.NewNop())
	if err == nil {
		t.Fatal("expected error when cache dir cannot be created")
	}
}

func TestCache_LookupWithoutGeneration(t *testing.T) {
	c := newTestCache(t)

	key := Key{Mode: "default", Click: click.ButtonLeft, Color: "#ff0000"}
	if _, ok := c.Lookup(key); ok {
		t.Error("Lookup() resolved a handle with no file and no prior generation")
	}
}

func TestCache_GenerateThenLookup(t *testing.T) {
	c := newTestCache(t)
	key := Key{Mode: "default", Click: click.ButtonLeft, Color: "#ff0000"}

	if _, err := c.Generate(key); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	h, ok := c.Lookup(key)
	if !ok {
		t.Fatal("Lookup() missed after Generate()")
	}
	if filepath.Base(h.Path) != "default_left_#ff0000.svg" {
		t.Errorf("cache file name = %q, want %q", filepath.Base(h.Path), "default_left_#ff0000.svg")
	}
}

func TestCache_GenerateReplacesOnlyFill(t *testing.T) {
	c := newTestCache(t)
	key := Key{Mode: "default", Click: click.ButtonLeft, Color: "#ff0000"}

	h, err := c.Generate(key)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	got, err := os.ReadFile(h.Path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	want := bytes.ReplaceAll([]byte(testBaseSVG), []byte(`fill="#000000"`), []byte(`fill="#ff0000"`))
	if !bytes.Equal(got, want) {
		t.Errorf("generated content mismatch:\ngot  %s\nwant %s", got, want)
	}
	if strings.Contains(string(got), "#000000") {
		t.Error("generated icon still contains the base fill color")
	}
}

func TestCache_GenerateIdempotent(t *testing.T) {
	c := newTestCache(t)
	key := Key{Mode: "default", Click: click.ButtonMiddle, Color: "#00ff00"}

	h1, err := c.Generate(key)
	if err != nil {
		t.Fatalf("first Generate() error = %v", err)
	}
	first, err := os.ReadFile(h1.Path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	h2, err := c.Generate(key)
	if err != nil {
		t.Fatalf("second Generate() error = %v", err)
	}
	second, err := os.ReadFile(h2.Path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("second Generate() changed the cache file contents")
	}
}

func TestCache_ColorChangeLeavesOldEntryUntouched(t *testing.T) {
	c := newTestCache(t)

	oldKey := Key{Mode: "default", Click: click.ButtonLeft, Color: "#ff0000"}
	h, err := c.Generate(oldKey)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	before, err := os.ReadFile(h.Path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	c.EnsureAll("default", map[click.Button]string{click.ButtonLeft: "#0000ff"})

	newKey := Key{Mode: "default", Click: click.ButtonLeft, Color: "#0000ff"}
	if _, ok := c.Lookup(newKey); !ok {
		t.Error("new color entry was not generated")
	}

	after, err := os.ReadFile(h.Path)
	if err != nil {
		t.Fatalf("old entry unreadable after regeneration: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Error("old color entry was modified by regeneration for a new color")
	}
}

func TestCache_EnsureAllGeneratesEveryClickType(t *testing.T) {
	c := newTestCache(t)

	colors := map[click.Button]string{
		click.ButtonLeft:   "#111111",
		click.ButtonMiddle: "#222222",
		click.ButtonRight:  "#333333",
	}
	c.EnsureAll("default", colors)

	for b, color := range colors {
		if _, ok := c.Lookup(Key{Mode: "default", Click: b, Color: color}); !ok {
			t.Errorf("missing icon for %s/%s", b, color)
		}
	}
}

func TestCache_EnsureAllMissingBaseIconNonFatal(t *testing.T) {
	c := newTestCache(t)

	// No base icon exists for this mode. EnsureAll logs and moves on;
	// the entries stay absent so a later call can retry.
	c.EnsureAll("missing-mode", map[click.Button]string{click.ButtonLeft: "#ff0000"})

	if _, ok := c.Lookup(Key{Mode: "missing-mode", Click: click.ButtonLeft, Color: "#ff0000"}); ok {
		t.Error("entry resolved even though generation failed")
	}
}

func TestCache_LookupReconstructsFromExistingFile(t *testing.T) {
	c := newTestCache(t)
	key := Key{Mode: "default", Click: click.ButtonRight, Color: "#abcdef"}

	if _, err := c.Generate(key); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// Drop the in-memory handles. The file still exists, so lookup must
	// reconstruct the handle rather than report absent.
	c.Invalidate()

	if _, ok := c.Lookup(key); !ok {
		t.Error("Lookup() failed to reconstruct handle from existing cache file")
	}
}

func TestWriteBaseIcons(t *testing.T) {
	dir := t.TempDir()
	if err := WriteBaseIcons(dir); err != nil {
		t.Fatalf("WriteBaseIcons() error = %v", err)
	}

	for _, mode := range Modes() {
		data, err := os.ReadFile(filepath.Join(dir, mode+".svg"))
		if err != nil {
			t.Fatalf("base icon %s missing: %v", mode, err)
		}
		if !strings.Contains(string(data), `fill="#000000"`) {
			t.Errorf("base icon %s lacks the black fill attribute", mode)
		}
	}

	// Second write must not clobber an edited file.
	custom := filepath.Join(dir, "default.svg")
	if err := os.WriteFile(custom, []byte("custom"), 0o644); err != nil {
		t.Fatalf("write custom icon: %v", err)
	}
	if err := WriteBaseIcons(dir); err != nil {
		t.Fatalf("second WriteBaseIcons() error = %v", err)
	}
	data, err := os.ReadFile(custom)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "custom" {
		t.Error("WriteBaseIcons overwrote an existing base icon")
	}
}
