package cli

import (
	"context"
	"strings"

	"fpm/internal/history"
	"fpm/internal/ui"
	"fpm/pkg/manager"

	"github.com/spf13/cobra"
)

// systemItem is recorded when update runs without package arguments.
const systemItem = "system"

var securityOnly bool

var updateCmd = &cobra.Command{
	Use:     "update [packages...]",
	Aliases: []string{"upgrade"},
	Short:   "Update the system or specific packages",
	Long: `Update all installed packages, or only the named ones.

Updates are recorded in the history but cannot be rolled back
automatically; use 'dnf history undo' or 'dnf downgrade' for that.

Examples:
  fpm update                   # Update the whole system
  fpm update firefox           # Update one package
  fpm update --security        # Apply security updates only`,
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().BoolVar(&securityOnly, "security", false, "only install security updates")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	packages := resolvePackages(args)

	action := history.ActionUpdate
	items := packages
	switch {
	case securityOnly && len(items) == 0:
		action = history.ActionSecurityUpdate
		items = []string{"all"}
	case securityOnly:
		action = history.ActionSecurityUpdate
	case len(items) == 0:
		items = []string{systemItem}
	}
	ui.InfoMsg("Updating %s", strings.Join(items, ", "))

	opts := manager.UpgradeOpts{
		AutoConfirm: cfg.General.AutoConfirm,
		DryRun:      cfg.General.DryRun,
		Packages:    packages,
		Security:    securityOnly,
	}

	if err := dnf.Upgrade(ctx, opts); err != nil {
		ui.ErrorMsg("Update failed: %v", err)
		return err
	}

	if err := recordHistory(action, items); err != nil {
		return err
	}

	if cfg.General.AutoClean {
		if err := dnf.Clean(ctx, manager.CleanOpts{DryRun: cfg.General.DryRun, Packages: true}); err != nil {
			ui.WarningMsg("Cleaning package cache failed: %v", err)
		}
	}

	ui.SuccessMsg("Update completed")
	return nil
}
