package cli

import (
	"context"

	"fpm/internal/history"
	"fpm/internal/ui"
	"fpm/pkg/manager"
	"fpm/pkg/snapshot"

	"github.com/spf13/cobra"
)

var (
	exportWithFlatpak bool
	importWithFlatpak bool
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the list of user-installed packages",
	Long: `Write the packages you installed explicitly (not their dependencies)
to a file that 'fpm import' can install on another system.

Examples:
  fpm export packages.txt
  fpm export --with-flatpak packages.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Install the packages listed in an export file",
	Long: `Install the packages of an export file that are not installed yet.

Examples:
  fpm import packages.txt
  fpm import -y --with-flatpak packages.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	exportCmd.Flags().BoolVar(&exportWithFlatpak, "with-flatpak", false, "include Flatpak applications")
	importCmd.Flags().BoolVar(&importWithFlatpak, "with-flatpak", false, "also install listed Flatpak applications")
}

// snapshotSources returns the package sources for a capture.
func snapshotSources(withFlatpak bool) []snapshot.Source {
	sources := []snapshot.Source{{
		Name: snapshot.SourceDNF,
		List: dnf.ListUserInstalled,
	}}
	if withFlatpak {
		sources = append(sources, snapshot.Source{
			Name: snapshot.SourceFlatpak,
			List: func(ctx context.Context) ([]manager.Package, error) {
				return flatpak.ListInstalled(ctx, manager.ListOpts{})
			},
			Optional: true,
		})
	}
	return sources
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	path := args[0]

	ui.InfoMsg("Exporting installed packages to: %s", path)

	var snap *snapshot.Snapshot
	err := ui.WithSpinner("Collecting installed packages...", func() error {
		var err error
		snap, err = snapshot.Capture(ctx, snapshotSources(exportWithFlatpak)...)
		return err
	})
	if err != nil {
		return err
	}

	if err := snapshot.Export(path, snap); err != nil {
		return err
	}

	ui.SuccessMsg("Exported %d packages", snap.PackageCount())
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	path := args[0]

	target, err := snapshot.Load(path)
	if err != nil {
		return err
	}

	var current *snapshot.Snapshot
	err = ui.WithSpinner("Checking installed packages...", func() error {
		var err error
		current, err = snapshot.Capture(ctx, snapshotSources(importWithFlatpak)...)
		return err
	})
	if err != nil {
		return err
	}

	opts := snapshot.RestoreOpts{
		DryRun:      cfg.General.DryRun,
		AutoConfirm: true,
		Sources:     []string{snapshot.SourceDNF},
	}
	if importWithFlatpak {
		opts.Sources = append(opts.Sources, snapshot.SourceFlatpak)
	}

	plan := snapshot.PlanRestore(target, current, opts)
	ui.InfoMsg("%s", plan.Summary())
	if plan.IsEmpty() {
		return nil
	}

	for source, pkgs := range plan.ToAdd {
		for _, pkg := range pkgs {
			ui.MutedMsg("  - %s [%s]", pkg, source)
		}
	}

	if !cfg.General.AutoConfirm && !cfg.General.DryRun {
		confirmed, err := ui.Confirm("Proceed with installation?", false)
		if err != nil {
			return err
		}
		if !confirmed {
			ui.MutedMsg("Installation cancelled")
			return nil
		}
	}

	if importWithFlatpak && len(plan.ToAdd[snapshot.SourceFlatpak]) > 0 {
		if err := ensureFlatpak(ctx); err != nil {
			return err
		}
	}

	done, execErr := snapshot.NewExecutor([]manager.Manager{dnf, flatpak}, opts).Execute(ctx, plan)
	for _, inst := range done {
		action := history.ActionInstall
		if inst.Source == snapshot.SourceFlatpak {
			action = history.ActionFlatpakInstall
		}
		if err := recordHistory(action, inst.Packages); err != nil {
			return err
		}
	}
	if execErr != nil {
		return execErr
	}

	ui.SuccessMsg("Packages imported successfully")
	return nil
}
