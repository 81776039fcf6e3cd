package cli

import (
	"context"
	"strings"

	"fpm/internal/history"
	"fpm/internal/ui"
	"fpm/pkg/manager"

	"github.com/spf13/cobra"
)

var reinstall bool

var installCmd = &cobra.Command{
	Use:   "install [packages...]",
	Short: "Install one or more packages",
	Long: `Install packages with dnf and record the operation in the history.

Examples:
  fpm install vim git curl     # Install packages
  fpm install -y neovim        # Install without confirmation
  fpm install code             # Uses alias if configured
  fpm install --reinstall vim  # Reinstall (recorded, not undoable)`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInstall,
}

func init() {
	installCmd.Flags().BoolVar(&reinstall, "reinstall", false, "reinstall packages that are already installed")
}

func runInstall(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	packages := resolvePackages(args)

	ui.InfoMsg("Installing %s", strings.Join(packages, ", "))

	opts := manager.InstallOpts{
		AutoConfirm: cfg.General.AutoConfirm,
		DryRun:      cfg.General.DryRun,
		Reinstall:   reinstall,
	}

	if err := dnf.Install(ctx, packages, opts); err != nil {
		ui.ErrorMsg("Installation failed: %v", err)
		return err
	}

	action := history.ActionInstall
	if reinstall {
		action = history.ActionReinstall
	}
	if err := recordHistory(action, packages); err != nil {
		return err
	}

	ui.SuccessMsg("Installed %s", strings.Join(packages, ", "))
	return nil
}
