package cli

import (
	"context"
	"fmt"
	"strings"

	"fpm/internal/history"
	"fpm/internal/ui"
	"fpm/pkg/manager/native"

	"github.com/spf13/cobra"
)

var (
	kernelAvailable   bool
	kernelKeepCurrent bool
	kernelKeep        int
)

var kernelCmd = &cobra.Command{
	Use:   "kernel",
	Short: "Manage installed kernels",
	Long: `List, install and remove kernels.

Kernel installs and removals are recorded in the history but are not
rolled back automatically.

Examples:
  fpm kernel current
  fpm kernel list --available
  fpm kernel install
  fpm kernel remove 6.8.5-301.fc40.x86_64
  fpm kernel remove-old --keep 2`,
}

var kernelCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the running kernel",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		current, err := kernels.Current(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), current)
		return nil
	},
}

var kernelListCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed kernels",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		out := cmd.OutOrStdout()

		if kernelAvailable {
			available, err := kernels.ListAvailable(ctx)
			if err != nil {
				return err
			}
			ui.HeaderMsg("Available kernels")
			for _, k := range available {
				fmt.Fprintf(out, "  %s\n", k)
			}
			return nil
		}

		installed, err := kernels.ListInstalled(ctx)
		if err != nil {
			return err
		}
		current, err := kernels.Current(ctx)
		if err != nil {
			return err
		}

		ui.HeaderMsg("Installed kernels")
		for _, k := range installed {
			if current != "" && strings.Contains(k, current) {
				fmt.Fprintf(out, "  %s %s\n", k, ui.Installed.Sprint("(running)"))
				continue
			}
			fmt.Fprintf(out, "  %s\n", k)
		}
		return nil
	},
}

var kernelInstallCmd = &cobra.Command{
	Use:   "install [version]",
	Short: "Install the latest kernel or a specific version",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var version string
		if len(args) == 1 {
			version = args[0]
		}

		ui.InfoMsg("Installing kernel package: %s", native.KernelPackage(version))
		pkg, err := kernels.Install(context.Background(), version, cfg.General.AutoConfirm)
		if err != nil {
			ui.ErrorMsg("Kernel installation failed: %v", err)
			return err
		}
		if err := recordHistory(history.ActionKernelInstall, []string{pkg}); err != nil {
			return err
		}
		ui.SuccessMsg("Installed %s", pkg)
		return nil
	},
}

var kernelRemoveCmd = &cobra.Command{
	Use:   "remove [versions...]",
	Short: "Remove specific kernel versions",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return removeKernels(args)
	},
}

var kernelRemoveOldCmd = &cobra.Command{
	Use:   "remove-old",
	Short: "Remove all but the newest kernels",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		old, err := kernels.OldVersions(context.Background(), kernelKeep)
		if err != nil {
			return err
		}
		if len(old) == 0 {
			ui.InfoMsg("No old kernels to remove (keeping %d)", kernelKeep)
			return nil
		}
		return removeKernels(old)
	},
}

var kernelInfoCmd = &cobra.Command{
	Use:   "info [version]",
	Short: "Show the packages of a kernel (default: running kernel)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var version string
		if len(args) == 1 {
			version = args[0]
		}

		version, packages, err := kernels.Info(context.Background(), version)
		if err != nil {
			return err
		}

		ui.HeaderMsg("Kernel %s", version)
		if len(packages) == 0 {
			ui.WarningMsg("No installed packages match %s", version)
			return nil
		}
		for _, p := range packages {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", p)
		}
		return nil
	},
}

func removeKernels(versions []string) error {
	ctx := context.Background()

	packages, skipped, err := kernels.Resolve(ctx, versions, kernelKeepCurrent)
	if err != nil {
		return err
	}
	for _, v := range skipped {
		ui.WarningMsg("Skipping running kernel %s", v)
	}
	if len(packages) == 0 {
		ui.WarningMsg("No kernel packages to remove")
		return nil
	}

	ui.InfoMsg("Removing kernel packages: %s", strings.Join(packages, ", "))
	if err := kernels.Remove(ctx, packages, cfg.General.AutoConfirm); err != nil {
		ui.ErrorMsg("Kernel removal failed: %v", err)
		return err
	}
	if err := recordHistory(history.ActionKernelRemove, packages); err != nil {
		return err
	}
	ui.SuccessMsg("Removed %d kernel packages", len(packages))
	return nil
}

func init() {
	kernelListCmd.Flags().BoolVar(&kernelAvailable, "available", false, "list kernels available from the repositories")
	kernelRemoveCmd.Flags().BoolVar(&kernelKeepCurrent, "keep-current", true, "never remove the running kernel")
	kernelRemoveOldCmd.Flags().IntVar(&kernelKeep, "keep", 2, "number of newest kernels to keep")

	kernelCmd.AddCommand(kernelCurrentCmd)
	kernelCmd.AddCommand(kernelListCmd)
	kernelCmd.AddCommand(kernelInstallCmd)
	kernelCmd.AddCommand(kernelRemoveCmd)
	kernelCmd.AddCommand(kernelRemoveOldCmd)
	kernelCmd.AddCommand(kernelInfoCmd)
}
