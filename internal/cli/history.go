package cli

import (
	"fmt"

	"fpm/internal/tui"

	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyAll   bool
	historyTUI   bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show operation history",
	Long: `Display the package operations performed by fpm, newest first.

Use --all to list every entry with the id that 'fpm rollback --id'
accepts.

Examples:
  fpm history                  # Show recent history
  fpm history -n 20            # Show last 20 operations
  fpm history --all            # Show all entries with ids
  fpm history -i               # Browse history and pick an entry to undo`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "number of entries to show (default from config)")
	historyCmd.Flags().BoolVar(&historyAll, "all", false, "list all entries with their ids")
	historyCmd.Flags().BoolVarP(&historyTUI, "interactive", "i", false, "browse history and roll back the chosen entry")
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyTUI {
		id, err := tui.Run(hist)
		if err != nil {
			return fmt.Errorf("history browser failed: %w", err)
		}
		if id == 0 {
			return nil
		}
		return rollbackTo(cmd, id, true)
	}

	if historyAll {
		return hist.List(cmd.OutOrStdout())
	}

	limit := cfg.History.Limit
	if cmd.Flags().Changed("limit") {
		limit = historyLimit
	}
	return hist.Print(cmd.OutOrStdout(), limit)
}
