package cli

import (
	"context"
	"fmt"

	"fpm/internal/ui"
	"fpm/pkg/manager"

	"github.com/spf13/cobra"
)

var (
	searchInstalled bool
	searchLimit     int
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search for packages",
	Long: `Search dnf repositories for packages whose name or summary matches.

Examples:
  fpm search editor            # Search repositories
  fpm search --installed vim   # Search installed packages only
  fpm search -l 10 editor      # Limit to 10 results`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchInstalled, "installed", false, "search installed packages only")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "l", 0, "limit results (0 = no limit)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	query := args[0]

	opts := manager.SearchOpts{
		Limit:         searchLimit,
		InstalledOnly: searchInstalled,
	}

	var results []manager.Package
	err := ui.WithSpinner(fmt.Sprintf("Searching for '%s'...", query), func() error {
		var err error
		results, err = dnf.Search(ctx, query, opts)
		return err
	})
	if err != nil {
		return err
	}

	if len(results) == 0 {
		ui.InfoMsg("No packages found matching '%s'", query)
		return nil
	}

	ui.HeaderMsg("Search Results (%d)", len(results))
	ui.PrintPackages(cmd.OutOrStdout(), results)
	return nil
}
