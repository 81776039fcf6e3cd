package cli

import (
	"context"
	"fmt"
	"strings"

	"fpm/internal/history"
	"fpm/internal/ui"
	"fpm/pkg/manager"

	"github.com/spf13/cobra"
)

// flatpakAllItem is recorded for an update of every installed app.
const flatpakAllItem = "all"

var flatpakCmd = &cobra.Command{
	Use:   "flatpak",
	Short: "Manage Flatpak applications",
	Long: `Search, install, remove and update Flatpak applications.

If flatpak itself is missing it is installed with dnf first.

Examples:
  fpm flatpak setup-flathub
  fpm flatpak search gimp
  fpm flatpak install org.gimp.GIMP`,
}

var flatpakSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search Flatpak remotes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if err := ensureFlatpak(ctx); err != nil {
			return err
		}

		var results []manager.Package
		err := ui.WithSpinner(fmt.Sprintf("Searching Flatpak for '%s'...", args[0]), func() error {
			var err error
			results, err = flatpak.Search(ctx, args[0], manager.SearchOpts{})
			return err
		})
		if err != nil {
			return err
		}
		ui.PrintPackages(cmd.OutOrStdout(), results)
		return nil
	},
}

var flatpakInstallCmd = &cobra.Command{
	Use:   "install [app-id...]",
	Short: "Install Flatpak applications",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if err := ensureFlatpak(ctx); err != nil {
			return err
		}

		ui.InfoMsg("Installing Flatpak: %s", joinArgs(args))
		opts := manager.InstallOpts{AutoConfirm: cfg.General.AutoConfirm, DryRun: cfg.General.DryRun}
		if err := flatpak.Install(ctx, args, opts); err != nil {
			return err
		}
		if err := recordHistory(history.ActionFlatpakInstall, args); err != nil {
			return err
		}
		ui.SuccessMsg("Installed %s", joinArgs(args))
		return nil
	},
}

var flatpakRemoveCmd = &cobra.Command{
	Use:     "remove [app-id...]",
	Aliases: []string{"uninstall"},
	Short:   "Remove Flatpak applications",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if err := ensureFlatpak(ctx); err != nil {
			return err
		}

		ui.InfoMsg("Removing Flatpak: %s", joinArgs(args))
		opts := manager.UninstallOpts{AutoConfirm: cfg.General.AutoConfirm, DryRun: cfg.General.DryRun}
		if err := flatpak.Uninstall(ctx, args, opts); err != nil {
			return err
		}
		if err := recordHistory(history.ActionFlatpakRemove, args); err != nil {
			return err
		}
		ui.SuccessMsg("Removed %s", joinArgs(args))
		return nil
	},
}

var flatpakUpdateCmd = &cobra.Command{
	Use:   "update [app-id...]",
	Short: "Update Flatpak applications",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if err := ensureFlatpak(ctx); err != nil {
			return err
		}

		ui.InfoMsg("Updating Flatpaks...")
		opts := manager.UpgradeOpts{AutoConfirm: cfg.General.AutoConfirm, DryRun: cfg.General.DryRun, Packages: args}
		if err := flatpak.Upgrade(ctx, opts); err != nil {
			return err
		}

		items := args
		if len(items) == 0 {
			items = []string{flatpakAllItem}
		}
		if err := recordHistory(history.ActionFlatpakUpdate, items); err != nil {
			return err
		}
		ui.SuccessMsg("Flatpak update completed")
		return nil
	},
}

var flatpakListCmd = &cobra.Command{
	Use:   "list [pattern]",
	Short: "List installed Flatpak applications",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if err := ensureFlatpak(ctx); err != nil {
			return err
		}

		var opts manager.ListOpts
		if len(args) == 1 {
			opts.Pattern = args[0]
		}
		apps, err := flatpak.ListInstalled(ctx, opts)
		if err != nil {
			return err
		}
		ui.HeaderMsg("Installed Flatpaks (%d)", len(apps))
		ui.PrintPackages(cmd.OutOrStdout(), apps)
		return nil
	},
}

var flatpakInfoCmd = &cobra.Command{
	Use:   "info [app-id]",
	Short: "Show details of an installed Flatpak application",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if err := ensureFlatpak(ctx); err != nil {
			return err
		}

		info, err := flatpak.Info(ctx, args[0])
		if err != nil {
			return err
		}
		ui.PrintPackageInfo(cmd.OutOrStdout(), info)
		return nil
	},
}

var flatpakSetupCmd = &cobra.Command{
	Use:   "setup-flathub",
	Short: "Add the Flathub remote",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if err := ensureFlatpak(ctx); err != nil {
			return err
		}

		ui.InfoMsg("Setting up Flathub repository...")
		if err := flatpak.SetupFlathub(ctx); err != nil {
			return err
		}
		ui.SuccessMsg("Flathub repository added")
		return nil
	},
}

func init() {
	flatpakCmd.AddCommand(flatpakSearchCmd)
	flatpakCmd.AddCommand(flatpakInstallCmd)
	flatpakCmd.AddCommand(flatpakRemoveCmd)
	flatpakCmd.AddCommand(flatpakUpdateCmd)
	flatpakCmd.AddCommand(flatpakListCmd)
	flatpakCmd.AddCommand(flatpakInfoCmd)
	flatpakCmd.AddCommand(flatpakSetupCmd)
}

// ensureFlatpak installs flatpak with dnf when it is missing. The install
// is a prerequisite and is not recorded in the history.
func ensureFlatpak(ctx context.Context) error {
	if flatpak.IsAvailable() || cfg.General.DryRun {
		return nil
	}

	ui.WarningMsg("Flatpak is not installed. Installing...")
	opts := manager.InstallOpts{AutoConfirm: true}
	if err := dnf.Install(ctx, []string{"flatpak"}, opts); err != nil {
		return fmt.Errorf("%w: %w", ErrFlatpakMissing, err)
	}
	return nil
}

func joinArgs(args []string) string {
	return strings.Join(args, ", ")
}
