package cli

import (
	"context"

	"fpm/internal/history"
	"fpm/internal/ui"
	"fpm/pkg/manager"

	"github.com/spf13/cobra"
)

var (
	cleanCache    bool
	cleanMetadata bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean dnf caches",
	Long: `Remove cached package files and repository metadata.

Examples:
  fpm clean                    # Clean packages and metadata
  fpm clean --metadata=false   # Clean cached packages only`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVar(&cleanCache, "cache", true, "remove cached packages")
	cleanCmd.Flags().BoolVar(&cleanMetadata, "metadata", true, "remove cached repository metadata")
}

func runClean(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if !cleanCache && !cleanMetadata {
		ui.MutedMsg("Nothing to clean")
		return nil
	}

	if !cfg.General.AutoConfirm && !cfg.General.DryRun {
		confirmed, err := ui.Confirm("Clean dnf caches?", true)
		if err != nil {
			return err
		}
		if !confirmed {
			ui.MutedMsg("Aborted")
			return ErrAborted
		}
	}

	ui.InfoMsg("Cleaning dnf cache...")

	opts := manager.CleanOpts{
		DryRun:   cfg.General.DryRun,
		Packages: cleanCache,
		Metadata: cleanMetadata,
	}

	if err := dnf.Clean(ctx, opts); err != nil {
		ui.ErrorMsg("Clean failed: %v", err)
		return err
	}

	if err := recordHistory(history.ActionClean, []string{dnf.Name()}); err != nil {
		return err
	}

	ui.SuccessMsg("Clean completed")
	return nil
}
