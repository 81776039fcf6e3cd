package cli

import (
	"context"

	"fpm/internal/ui"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [package]",
	Short: "Show package information",
	Long: `Display details about a package. Installed packages are read from
the rpm database, others from dnf repository metadata.

Examples:
  fpm info vim`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	pkg := cfg.ResolveAlias(args[0])

	info, err := dnf.Info(ctx, pkg)
	if err != nil {
		return err
	}

	ui.PrintPackageInfo(cmd.OutOrStdout(), info)
	if info.Installed {
		ui.SuccessMsg("Installed")
	}
	return nil
}
