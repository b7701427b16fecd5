package icon

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed assets/*.svg
var baseAssets embed.FS

// Modes lists the icon modes shipped with the applet.
func Modes() []string {
	return []string{"default", "ring", "target"}
}

// WriteBaseIcons materializes the embedded base icons into dir, which
// becomes a valid baseDir for NewCache. Existing files are left alone
// so a user-customized base icon survives restarts.
func WriteBaseIcons(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create base icon dir %s: %w", dir, err)
	}

	for _, mode := range Modes() {
		dst := filepath.Join(dir, mode+".svg")
		if _, err := os.Stat(dst); err == nil {
			continue
		}
		data, err := baseAssets.ReadFile("assets/" + mode + ".svg")
		if err != nil {
			return fmt.Errorf("embedded icon %s: %w", mode, err)
		}
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return fmt.Errorf("write base icon %s: %w", dst, err)
		}
	}
	return nil
}
