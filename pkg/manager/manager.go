package manager

import "context"

// Manager defines the operations fpm needs from a package source.
type Manager interface {
	// Name returns the short identifier for this manager (e.g., "dnf", "flatpak").
	Name() string

	// DisplayName returns a human-readable name.
	DisplayName() string

	// Type returns the category of this manager.
	Type() ManagerType

	// IsAvailable returns true if the manager's binary is installed.
	IsAvailable() bool

	// NeedsSudo returns true if mutating operations need root.
	NeedsSudo() bool

	// Install installs one or more packages.
	Install(ctx context.Context, packages []string, opts InstallOpts) error

	// Uninstall removes one or more packages.
	Uninstall(ctx context.Context, packages []string, opts UninstallOpts) error

	// Upgrade upgrades installed packages, or only opts.Packages if set.
	Upgrade(ctx context.Context, opts UpgradeOpts) error

	// Search finds packages matching the query.
	Search(ctx context.Context, query string, opts SearchOpts) ([]Package, error)

	// Info returns detailed information about a specific package.
	Info(ctx context.Context, pkg string) (*PackageInfo, error)

	// ListInstalled returns installed packages.
	ListInstalled(ctx context.Context, opts ListOpts) ([]Package, error)
}

// Actuator adapts a Manager to the install/remove pair that rollback
// drives. Confirmed maps to the manager's auto-confirm flag.
type Actuator struct {
	Manager Manager
	DryRun  bool
}

// Install installs items through the wrapped manager.
func (a Actuator) Install(ctx context.Context, items []string, confirmed bool) error {
	return a.Manager.Install(ctx, items, InstallOpts{
		AutoConfirm: confirmed,
		DryRun:      a.DryRun,
	})
}

// Remove removes items through the wrapped manager.
func (a Actuator) Remove(ctx context.Context, items []string, confirmed bool) error {
	return a.Manager.Uninstall(ctx, items, UninstallOpts{
		AutoConfirm: confirmed,
		DryRun:      a.DryRun,
	})
}
