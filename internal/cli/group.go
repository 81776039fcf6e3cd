package cli

import (
	"context"
	"fmt"

	"fpm/internal/history"
	"fpm/internal/ui"

	"github.com/spf13/cobra"
)

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Manage dnf package groups",
	Long: `List, inspect, install and remove dnf package groups.

Examples:
  fpm group list
  fpm group info "Development Tools"
  fpm group install "Development Tools"`,
}

var groupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List package groups",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := groups.List(context.Background())
		if err != nil {
			return err
		}
		ui.HeaderMsg("Available groups")
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

var groupInfoCmd = &cobra.Command{
	Use:   "info [group]",
	Short: "Show the packages in a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := groups.Info(context.Background(), args[0])
		if err != nil {
			return err
		}
		ui.HeaderMsg("Group information: %s", args[0])
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

var groupInstallCmd = &cobra.Command{
	Use:   "install [group]",
	Short: "Install a package group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		group := args[0]
		ui.InfoMsg("Installing group: %s", group)
		if err := groups.Install(context.Background(), group, cfg.General.AutoConfirm); err != nil {
			return err
		}
		if err := recordHistory(history.ActionGroupInstall, []string{group}); err != nil {
			return err
		}
		ui.SuccessMsg("Installed group %s", group)
		return nil
	},
}

var groupRemoveCmd = &cobra.Command{
	Use:   "remove [group]",
	Short: "Remove a package group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		group := args[0]
		ui.InfoMsg("Removing group: %s", group)
		if err := groups.Remove(context.Background(), group, cfg.General.AutoConfirm); err != nil {
			return err
		}
		if err := recordHistory(history.ActionGroupRemove, []string{group}); err != nil {
			return err
		}
		ui.SuccessMsg("Removed group %s", group)
		return nil
	},
}

func init() {
	groupCmd.AddCommand(groupListCmd)
	groupCmd.AddCommand(groupInfoCmd)
	groupCmd.AddCommand(groupInstallCmd)
	groupCmd.AddCommand(groupRemoveCmd)
}
