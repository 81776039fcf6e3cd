package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	appName     = "fpm"
	configFile  = "config.toml"
	historyFile = "history.json"
)

// ConfigDir returns the per-user configuration directory for fpm,
// honoring XDG_CONFIG_HOME.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, appName)
}

// ConfigPath returns the full path to the default config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), configFile)
}

// DefaultHistoryPath returns the history file location inside dir.
func DefaultHistoryPath(dir string) string {
	return filepath.Join(dir, historyFile)
}

// EnsureDir creates dir if it doesn't exist.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}
