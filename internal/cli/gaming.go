package cli

import (
	"context"

	"fpm/internal/history"
	"fpm/internal/ui"
	"fpm/pkg/manager"

	"github.com/spf13/cobra"
)

// gamingMetaPackage is installed by "gaming install".
const gamingMetaPackage = "fedora-gaming-meta"

var gamingCmd = &cobra.Command{
	Use:   "gaming",
	Short: "Gaming setup helpers",
}

var gamingInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the gaming meta package",
	Long: `Install the gaming meta package with dnf.

The install is recorded in the history under its own tag and is not
rolled back automatically; use 'fpm remove ` + gamingMetaPackage + `' to undo it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ui.InfoMsg("Installing gaming meta package (%s)", gamingMetaPackage)

		opts := manager.InstallOpts{
			AutoConfirm: cfg.General.AutoConfirm,
			DryRun:      cfg.General.DryRun,
		}
		if err := dnf.Install(context.Background(), []string{gamingMetaPackage}, opts); err != nil {
			return err
		}
		if err := recordHistory(history.ActionGamingInstall, []string{gamingMetaPackage}); err != nil {
			return err
		}
		ui.SuccessMsg("Installed %s", gamingMetaPackage)
		return nil
	},
}

func init() {
	gamingCmd.AddCommand(gamingInstallCmd)
}
