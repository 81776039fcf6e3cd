package cli

import (
	"context"
	"strings"

	"fpm/internal/history"
	"fpm/internal/ui"
	"fpm/pkg/manager"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove [packages...]",
	Aliases: []string{"uninstall", "rm"},
	Short:   "Remove one or more packages",
	Long: `Remove packages with dnf and record the operation in the history.

Examples:
  fpm remove vim               # Remove a package
  fpm remove -y vim git        # Remove without confirmation`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRemove,
}

func runRemove(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	packages := resolvePackages(args)

	ui.InfoMsg("Removing %s", strings.Join(packages, ", "))

	opts := manager.UninstallOpts{
		AutoConfirm: cfg.General.AutoConfirm,
		DryRun:      cfg.General.DryRun,
	}

	if err := dnf.Uninstall(ctx, packages, opts); err != nil {
		ui.ErrorMsg("Removal failed: %v", err)
		return err
	}

	if err := recordHistory(history.ActionRemove, packages); err != nil {
		return err
	}

	ui.SuccessMsg("Removed %s", strings.Join(packages, ", "))
	return nil
}
