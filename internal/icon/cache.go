package icon

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/dshills/clickfx/internal/click"
)

// baseFill is the fill attribute every base icon uses. Generation
// replaces each occurrence literally; nothing else in the file changes.
const baseFill = `fill="#000000"`

// Handle is a reference to a generated icon file.
type Handle struct {
	Path string
}

// Key identifies one colored icon variant.
type Key struct {
	Mode  string
	Click click.Button
	Color string
}

// FileName returns the cache file name for this key.
func (k Key) FileName() string {
	return fmt.Sprintf("%s_%s_%s.svg", k.Mode, k.Click, k.Color)
}

// Cache memoizes colored icon handles and persists the generated files
// under a cache directory.
type Cache struct {
	mu sync.RWMutex

	dir     string // generated icons
	baseDir string // base monochrome icons, one per mode
	handles map[Key]Handle
	logger  *zap.Logger
}

// DefaultDir returns the cache directory for an applet identifier,
// under the user cache directory.
func DefaultDir(id string) (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve user cache dir: %w", err)
	}
	return filepath.Join(cacheDir, id, "icons"), nil
}

// NewCache creates a cache rooted at dir, reading base icons from
// baseDir. Failure to create dir is fatal: the applet cannot run
// without its cache directory.
func NewCache(dir, baseDir string, logger *zap.Logger) (*Cache, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create icon cache dir %s: %w", dir, err)
	}
	return &Cache{
		dir:     dir,
		baseDir: baseDir,
		handles: make(map[Key]Handle),
		logger:  logger,
	}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

// Lookup resolves a handle for the key. It checks the in-memory map
// first; on a miss it checks whether the cache file already exists and,
// if so, memoizes a handle for it. Lookup never generates.
func (c *Cache) Lookup(key Key) (Handle, bool) {
	c.mu.RLock()
	h, ok := c.handles[key]
	c.mu.RUnlock()
	if ok {
		return h, true
	}

	path := filepath.Join(c.dir, key.FileName())
	if _, err := os.Stat(path); err != nil {
		return Handle{}, false
	}

	h = Handle{Path: path}
	c.mu.Lock()
	c.handles[key] = h
	c.mu.Unlock()
	return h, true
}

// Generate creates the colored icon for the key, replacing the cache
// file's contents if it already exists, and memoizes the handle.
func (c *Cache) Generate(key Key) (Handle, error) {
	src := filepath.Join(c.baseDir, key.Mode+".svg")
	data, err := os.ReadFile(src)
	if err != nil {
		return Handle{}, fmt.Errorf("read base icon %s: %w", src, err)
	}

	colored := bytes.ReplaceAll(data, []byte(baseFill), []byte(`fill="`+key.Color+`"`))
	path := filepath.Join(c.dir, key.FileName())
	if err := os.WriteFile(path, colored, 0o644); err != nil {
		return Handle{}, fmt.Errorf("write colored icon %s: %w", path, err)
	}

	h := Handle{Path: path}
	c.mu.Lock()
	c.handles[key] = h
	c.mu.Unlock()
	return h, nil
}

// EnsureAll makes sure a colored icon exists for every click type given
// the current mode and per-button colors. Keys that already resolve are
// skipped, so repeated calls are idempotent. Generation failures are
// logged and leave the entry absent; a later call retries.
func (c *Cache) EnsureAll(mode string, colors map[click.Button]string) {
	for _, b := range click.Buttons() {
		color, ok := colors[b]
		if !ok || color == "" {
			continue
		}
		key := Key{Mode: mode, Click: b, Color: color}
		if _, ok := c.Lookup(key); ok {
			continue
		}
		if _, err := c.Generate(key); err != nil {
			c.logger.Warn("icon generation failed",
				zap.String("mode", mode),
				zap.String("click", b.String()),
				zap.String("color", color),
				zap.Error(err))
		}
	}
}

// Invalidate drops the in-memory handles so the next lookups consult
// the filesystem again. Cache files are never deleted.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handles = make(map[Key]Handle)
}
