package native

import (
	"context"
	"fmt"

	"fpm/pkg/manager"
)

// DownloadOpts controls "dnf download".
type DownloadOpts struct {
	DestDir string // Target directory (empty = current directory)
	Resolve bool   // Also download missing dependencies
	DryRun  bool
}

// Download fetches rpm files without installing them. Nothing on the
// system changes, so the command runs unelevated.
func (d *DNF) Download(ctx context.Context, packages []string, opts DownloadOpts) error {
	if len(packages) == 0 {
		return manager.ErrNoPackages
	}

	args := []string{"download"}
	if opts.Resolve {
		args = append(args, "--resolve")
	}
	if opts.DestDir != "" {
		args = append(args, "--destdir", opts.DestDir)
	}
	args = append(args, packages...)

	defer d.dryRunFor(opts.DryRun)()
	return d.Executor().Run(ctx, d.Binary(), args...)
}

// InstallFiles installs local rpm files, typically fetched earlier with
// Download.
func (d *DNF) InstallFiles(ctx context.Context, files []string, opts manager.InstallOpts) error {
	if len(files) == 0 {
		return fmt.Errorf("no RPM files specified")
	}

	args := []string{"install"}
	if opts.AutoConfirm {
		args = append(args, "-y")
	}
	args = append(args, files...)

	defer d.dryRunFor(opts.DryRun)()
	return d.Executor().RunSudo(ctx, d.Binary(), args...)
}
