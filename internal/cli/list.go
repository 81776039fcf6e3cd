package cli

import (
	"context"

	"fpm/internal/ui"
	"fpm/pkg/manager"

	"github.com/spf13/cobra"
)

var listLimit int

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed or available packages",
	Long: `List packages from the rpm database or from enabled repositories.

Examples:
  fpm list installed           # All installed packages
  fpm list installed python    # Installed packages matching "python"
  fpm list available kernel    # Available packages matching "kernel"`,
}

var listInstalledCmd = &cobra.Command{
	Use:   "installed [pattern]",
	Short: "List installed packages",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd, args, "Installed", dnf.ListInstalled)
	},
}

var listAvailableCmd = &cobra.Command{
	Use:   "available [pattern]",
	Short: "List packages available from enabled repositories",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd, args, "Available", dnf.ListAvailable)
	},
}

func init() {
	listCmd.PersistentFlags().IntVarP(&listLimit, "limit", "l", 100, "maximum packages to show (0 = all)")
	listCmd.AddCommand(listInstalledCmd)
	listCmd.AddCommand(listAvailableCmd)
}

type listFunc func(ctx context.Context, opts manager.ListOpts) ([]manager.Package, error)

func runList(cmd *cobra.Command, args []string, title string, list listFunc) error {
	ctx := context.Background()

	opts := manager.ListOpts{Limit: listLimit}
	if len(args) == 1 {
		opts.Pattern = args[0]
	}

	var packages []manager.Package
	err := ui.WithSpinner("Listing packages...", func() error {
		var err error
		packages, err = list(ctx, opts)
		return err
	})
	if err != nil {
		return err
	}

	ui.HeaderMsg("%s packages (%d)", title, len(packages))
	ui.PrintPackages(cmd.OutOrStdout(), packages)
	return nil
}
