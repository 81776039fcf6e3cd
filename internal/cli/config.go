package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fpm/internal/config"
	"fpm/internal/ui"

	"github.com/spf13/cobra"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the configuration file",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config and history file locations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "config:  %s\n", configFilePath())
		fmt.Fprintf(cmd.OutOrStdout(), "history: %s\n", cfg.HistoryPath())
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the current settings to the config file",
	Long: `Write the effective configuration to config.toml so it can be edited.

An existing file is left alone unless --force is given.

Examples:
  fpm config init              # Create config.toml with defaults
  fpm config init --force      # Overwrite an existing file`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing config file")

	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
}

func configFilePath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return filepath.Join(cfg.Dir, "config.toml")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configFilePath()

	_, err := os.Stat(path)
	switch {
	case err == nil && !configForce:
		return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("failed to check config file: %w", err)
	}

	if cfg.General.DryRun {
		ui.FInfo(cmd.OutOrStdout(), "Would write %s", path)
		return nil
	}

	// Flag overrides are not settings; save what the file itself resolves to.
	fileCfg, err := config.LoadFrom(path)
	if err != nil {
		fileCfg = config.Default()
		fileCfg.Dir = filepath.Dir(path)
	}

	if err := fileCfg.SaveTo(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	ui.FSuccess(cmd.OutOrStdout(), "Wrote %s", path)
	return nil
}
