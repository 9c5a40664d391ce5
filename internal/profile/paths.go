// Package profile manages the on-disk layout under ~/.pombo. Each profile
// owns its snapshot store, lock and logs, so several profiles can exist
// side by side the way browser profiles do.
package profile

import (
	"os"
	"path/filepath"
)

// BaseDir returns ~/.pombo.
func BaseDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".pombo")
}

// Dir returns the profile-specific directory.
func Dir(name string) string {
	return filepath.Join(BaseDir(), "profiles", name)
}

// SnapshotDBPath returns the sqlite snapshot database path.
func SnapshotDBPath(name string) string {
	return filepath.Join(Dir(name), "snapshots.db")
}

// PebbleDir returns the pebble snapshot directory.
func PebbleDir(name string) string {
	return filepath.Join(Dir(name), "pebble")
}

// LogDir returns the log directory for a profile.
func LogDir(name string) string {
	return filepath.Join(Dir(name), "logs")
}

// LogPath returns the daemon log file path.
func LogPath(name string) string {
	return filepath.Join(LogDir(name), "pombod.log")
}

// ConfigPath returns the global config file path.
func ConfigPath() string {
	return filepath.Join(BaseDir(), "config.toml")
}

// EnsureDir creates the profile directory tree with owner-only permissions.
func EnsureDir(name string) error {
	for _, d := range []string{Dir(name), LogDir(name)} {
		if err := os.MkdirAll(d, 0700); err != nil {
			return err
		}
	}
	return nil
}
