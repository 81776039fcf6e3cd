// Package config loads fpm's TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config represents the complete fpm configuration.
type Config struct {
	General GeneralConfig     `toml:"general"`
	Output  OutputConfig      `toml:"output"`
	History HistoryConfig     `toml:"history"`
	Flatpak FlatpakConfig     `toml:"flatpak"`
	Aliases map[string]string `toml:"aliases"`

	// Dir is the directory the config was loaded from. Relative paths in
	// the file are resolved against it.
	Dir string `toml:"-"`
}

// GeneralConfig contains general fpm settings.
type GeneralConfig struct {
	// AutoConfirm passes -y to the wrapped tools (like the --yes flag).
	AutoConfirm bool `toml:"auto_confirm"`

	// DryRun prints commands instead of running them.
	DryRun bool `toml:"dry_run"`

	// UseSudo elevates mutating dnf commands with sudo when not root.
	UseSudo bool `toml:"use_sudo"`

	// AutoClean runs "dnf clean packages" after a successful update.
	AutoClean bool `toml:"auto_clean"`
}

// OutputConfig contains output formatting settings.
type OutputConfig struct {
	// Color enables colored output (respects NO_COLOR env var).
	Color bool `toml:"color"`

	// Unicode enables unicode symbols in output.
	Unicode bool `toml:"unicode"`
}

// HistoryConfig controls the action history.
type HistoryConfig struct {
	// File overrides the history file location. Empty means
	// history.json in the config directory.
	File string `toml:"file"`

	// Limit is the default number of entries shown by "fpm history".
	Limit int `toml:"limit"`
}

// FlatpakConfig contains Flatpak settings.
type FlatpakConfig struct {
	// DefaultRemote is used when an app id has no remote prefix.
	DefaultRemote string `toml:"default_remote"`
}

// Default returns the default configuration rooted at the default config dir.
func Default() *Config {
	return &Config{
		General: GeneralConfig{
			AutoConfirm: false,
			DryRun:      false,
			UseSudo:     true,
			AutoClean:   false,
		},
		Output: OutputConfig{
			Color:   true,
			Unicode: true,
		},
		History: HistoryConfig{
			Limit: 10,
		},
		Flatpak: FlatpakConfig{
			DefaultRemote: "flathub",
		},
		Aliases: map[string]string{},
		Dir:     ConfigDir(),
	}
}

// Load loads the configuration from the default path.
// If the config file doesn't exist, it returns the default configuration.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadDir loads config.toml from dir.
func LoadDir(dir string) (*Config, error) {
	return LoadFrom(filepath.Join(dir, configFile))
}

// LoadFrom loads the configuration from a specific path.
// If the config file doesn't exist, it returns the default configuration.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	cfg.Dir = filepath.Dir(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	if cfg.History.Limit < 0 {
		cfg.History.Limit = 0
	}
	if cfg.Flatpak.DefaultRemote == "" {
		cfg.Flatpak.DefaultRemote = "flathub"
	}

	return cfg, nil
}

// Save writes the configuration to config.toml in its directory.
func (c *Config) Save() error {
	return c.SaveTo(filepath.Join(c.Dir, configFile))
}

// SaveTo writes the configuration to a specific path.
func (c *Config) SaveTo(path string) error {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(c)
}

// HistoryPath returns the resolved history file path.
func (c *Config) HistoryPath() string {
	path := c.History.File
	if path == "" {
		return DefaultHistoryPath(c.Dir)
	}

	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(c.Dir, path)
	}
	return path
}

// ResolveAlias returns the actual package name for an alias, or the original name if no alias exists.
func (c *Config) ResolveAlias(pkg string) string {
	if alias, ok := c.Aliases[pkg]; ok {
		return alias
	}
	return pkg
}

// ResolveAliases resolves all aliases in a list of package names.
func (c *Config) ResolveAliases(packages []string) []string {
	resolved := make([]string, len(packages))
	for i, pkg := range packages {
		resolved[i] = c.ResolveAlias(pkg)
	}
	return resolved
}

// ShouldUseColor returns true if colored output should be used.
// Respects the NO_COLOR environment variable.
func (c *Config) ShouldUseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return c.Output.Color
}
