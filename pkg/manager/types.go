// Package manager provides the abstraction over the package tools fpm wraps.
package manager

import (
	"errors"
	"time"
)

// ErrNoPackages is returned when an operation is given an empty package list.
var ErrNoPackages = errors.New("no packages specified")

// ManagerType represents the category of package manager.
type ManagerType string

const (
	// TypeNative represents the system package manager (dnf/rpm).
	TypeNative ManagerType = "native"
	// TypeUniversal represents cross-distribution managers (flatpak).
	TypeUniversal ManagerType = "universal"
)

// Package represents a software package from any source.
type Package struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Source      string `json:"source"`    // Manager name: "dnf", "flatpak"
	Installed   bool   `json:"installed"` // Whether the package is currently installed
	Size        string `json:"size"`
}

// PackageInfo contains detailed information about a package.
type PackageInfo struct {
	Package
	Repository   string    `json:"repository"`
	License      string    `json:"license"`
	URL          string    `json:"url"`
	Dependencies []string  `json:"dependencies"`
	InstallDate  time.Time `json:"install_date"` // If installed
}

// InstallOpts contains options for package installation.
type InstallOpts struct {
	AutoConfirm bool // Pass -y to the wrapped tool
	DryRun      bool // Print the command instead of running it
	Reinstall   bool // Reinstall if already installed
}

// UninstallOpts contains options for package removal.
type UninstallOpts struct {
	AutoConfirm bool
	DryRun      bool
}

// UpgradeOpts contains options for package upgrades.
type UpgradeOpts struct {
	AutoConfirm bool
	DryRun      bool
	Packages    []string // Specific packages to upgrade (empty = upgrade all)
	Security    bool     // Only apply security advisories
}

// SearchOpts contains options for package search.
type SearchOpts struct {
	Limit         int  // Maximum number of results
	InstalledOnly bool // Only show installed packages
}

// ListOpts contains options for listing packages.
type ListOpts struct {
	Limit   int    // Maximum number of results
	Pattern string // Filter by name pattern
}

// CleanOpts selects what "dnf clean" removes.
type CleanOpts struct {
	DryRun   bool
	Packages bool // Cached package files
	Metadata bool // Repository metadata
}
