package cli

import (
	"context"
	"fmt"

	"fpm/internal/history"
	"fpm/internal/ui"

	"github.com/spf13/cobra"
)

var repoListAll bool

var repoCmd = &cobra.Command{
	Use:   "repo",
	Short: "Manage dnf repositories",
	Long: `List, enable, disable, add and remove dnf repositories.

Examples:
  fpm repo list --all
  fpm repo enable updates-testing
  fpm repo add myrepo https://example.org/myrepo.repo
  fpm repo refresh`,
}

var repoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List repositories (enabled only unless --all)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := repos.List(context.Background(), !repoListAll)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

var repoInfoCmd = &cobra.Command{
	Use:   "info [repo-id]",
	Short: "Show repository details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := repos.Info(context.Background(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

var repoEnableCmd = &cobra.Command{
	Use:   "enable [repo-id]",
	Short: "Enable a repository",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRepoChange(args[0], history.ActionRepoEnable, "Enabled", repos.Enable)
	},
}

var repoDisableCmd = &cobra.Command{
	Use:   "disable [repo-id]",
	Short: "Disable a repository",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRepoChange(args[0], history.ActionRepoDisable, "Disabled", repos.Disable)
	},
}

var repoRemoveCmd = &cobra.Command{
	Use:   "remove [repo-id]",
	Short: "Disable a repository and delete its .repo file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRepoChange(args[0], history.ActionRepoRemove, "Removed", repos.Remove)
	},
}

var repoAddCmd = &cobra.Command{
	Use:   "add [name] [url]",
	Short: "Add a repository from a .repo URL",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, url := args[0], args[1]
		ui.InfoMsg("Adding repository %s from %s", name, url)
		if err := repos.Add(context.Background(), url); err != nil {
			return err
		}
		if err := recordHistory(history.ActionRepoAdd, []string{name, url}); err != nil {
			return err
		}
		ui.SuccessMsg("Added repository %s", name)
		return nil
	},
}

var repoRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Drop and rebuild the repository metadata cache",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ui.InfoMsg("Refreshing repository metadata...")
		if err := dnf.Refresh(context.Background()); err != nil {
			return err
		}
		ui.SuccessMsg("Repository metadata refreshed")
		return nil
	},
}

func init() {
	repoListCmd.Flags().BoolVar(&repoListAll, "all", false, "include disabled repositories")

	repoCmd.AddCommand(repoListCmd)
	repoCmd.AddCommand(repoInfoCmd)
	repoCmd.AddCommand(repoEnableCmd)
	repoCmd.AddCommand(repoDisableCmd)
	repoCmd.AddCommand(repoAddCmd)
	repoCmd.AddCommand(repoRemoveCmd)
	repoCmd.AddCommand(repoRefreshCmd)
}

func runRepoChange(id string, action history.Action, done string, change func(context.Context, string) error) error {
	if err := change(context.Background(), id); err != nil {
		return err
	}
	if err := recordHistory(action, []string{id}); err != nil {
		return err
	}
	ui.SuccessMsg("%s repository %s", done, id)
	return nil
}
