package applet

import "path/filepath"

// Metadata identifies an applet installation.
type Metadata struct {
	// UUID is the unique applet identifier. It names the settings and
	// cache directories.
	UUID string

	// Path is the installation directory. Base icons live in its
	// "icons" subdirectory.
	Path string
}

// IconsDir returns the base icon directory for this installation.
func (m Metadata) IconsDir() string {
	return filepath.Join(m.Path, "icons")
}
