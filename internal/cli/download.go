package cli

import (
	"context"
	"strings"

	"fpm/internal/history"
	"fpm/internal/ui"
	"fpm/pkg/manager"
	"fpm/pkg/manager/native"

	"github.com/spf13/cobra"
)

var (
	downloadDest    string
	downloadResolve bool
)

var downloadCmd = &cobra.Command{
	Use:   "download [packages...]",
	Short: "Download packages without installing them",
	Long: `Download rpm files with dnf for later offline installation.

Downloads are recorded in the history but change nothing on the system,
so there is nothing to roll back.

Examples:
  fpm download vim                       # Download into the current directory
  fpm download --destdir ~/rpms vim      # Download into ~/rpms
  fpm download --resolve --destdir ~/rpms vim  # Include dependencies`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDownload,
}

var installOfflineCmd = &cobra.Command{
	Use:   "install-offline [rpm files...]",
	Short: "Install downloaded rpm files",
	Long: `Install local rpm files, for example ones fetched with 'fpm download'.

Examples:
  fpm install-offline ~/rpms/*.rpm`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInstallOffline,
}

func init() {
	downloadCmd.Flags().StringVar(&downloadDest, "destdir", "", "directory to download into")
	downloadCmd.Flags().BoolVar(&downloadResolve, "resolve", false, "also download missing dependencies")
}

func runDownload(cmd *cobra.Command, args []string) error {
	packages := resolvePackages(args)

	target := downloadDest
	if target == "" {
		target = "current directory"
	}
	ui.InfoMsg("Downloading %s to %s", strings.Join(packages, ", "), target)

	opts := native.DownloadOpts{
		DestDir: downloadDest,
		Resolve: downloadResolve,
		DryRun:  cfg.General.DryRun,
	}
	if err := dnf.Download(context.Background(), packages, opts); err != nil {
		ui.ErrorMsg("Download failed: %v", err)
		return err
	}

	action := history.ActionDownload
	if downloadResolve {
		action = history.ActionDownloadDeps
	}
	if err := recordHistory(action, packages); err != nil {
		return err
	}

	ui.SuccessMsg("Packages downloaded to %s", target)
	return nil
}

func runInstallOffline(cmd *cobra.Command, args []string) error {
	ui.InfoMsg("Installing RPM files: %s", strings.Join(args, ", "))

	opts := manager.InstallOpts{
		AutoConfirm: cfg.General.AutoConfirm,
		DryRun:      cfg.General.DryRun,
	}
	if err := dnf.InstallFiles(context.Background(), args, opts); err != nil {
		ui.ErrorMsg("Installation failed: %v", err)
		return err
	}

	if err := recordHistory(history.ActionInstallOffline, args); err != nil {
		return err
	}

	ui.SuccessMsg("RPM files installed")
	return nil
}
