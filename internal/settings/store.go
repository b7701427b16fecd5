package settings

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store persists the raw settings document to a single JSON file.
// Writes are atomic (temp file plus rename).
type Store struct {
	path string
}

// NewStore creates a store for the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the settings file path.
func (s *Store) Path() string {
	return s.path
}

// DefaultPath returns the settings path for an applet identifier,
// under the user configuration directory.
func DefaultPath(id string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, id, "settings.json"), nil
}

// Load reads the raw settings document. A missing file is not an error;
// it returns an empty document.
func (s *Store) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read settings %s: %w", s.path, err)
	}
	return string(data), nil
}

// Save writes the raw settings document.
func (s *Store) Save(raw string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append([]byte(raw), '\n'), 0o600); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("persist settings: %w", err)
	}
	return nil
}
