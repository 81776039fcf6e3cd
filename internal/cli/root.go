// Package cli implements the command-line interface for fpm.
package cli

import (
	"errors"
	"fmt"

	"fpm/internal/config"
	"fpm/internal/executor"
	"fpm/internal/history"
	"fpm/internal/logging"
	"fpm/internal/ui"
	"fpm/pkg/manager/native"
	"fpm/pkg/manager/universal"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile   string
	cfgDir    string
	dryRun    bool
	yes       bool
	verbosity int
	quiet     bool
	noColor   bool
	useSudo   bool

	// Global state
	cfg     *config.Config
	runner  *executor.Executor
	dnf     *native.DNF
	groups  *native.Groups
	repos   *native.Repos
	kernels *native.Kernels
	flatpak *universal.Flatpak
	hist    *history.Log
)

// Build metadata - set at build time via ldflags
var (
	Version   = "0.1.0-dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "fpm",
	Short: "Fedora package manager front-end",
	Long: `fpm wraps dnf, rpm and flatpak behind one command, keeps a history of
every change it makes, and can roll back installs and removals.

Examples:
  fpm install vim git          # Install packages with dnf
  fpm remove vim               # Remove packages
  fpm history                  # Show recent operations
  fpm rollback                 # Undo the last operation
  fpm flatpak install org.gimp.GIMP`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeApp(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&cfgDir, "config-dir", "", "configuration directory (default $XDG_CONFIG_HOME/fpm)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "show what would happen without executing")
	rootCmd.PersistentFlags().BoolVarP(&yes, "yes", "y", false, "assume yes to all prompts")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "diagnostic output (repeat for more)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress diagnostic output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&useSudo, "sudo", true, "elevate privileged commands with sudo")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(rollbackCmd)
	rootCmd.AddCommand(groupCmd)
	rootCmd.AddCommand(repoCmd)
	rootCmd.AddCommand(flatpakCmd)
	rootCmd.AddCommand(kernelCmd)
	rootCmd.AddCommand(gamingCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(installOfflineCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(configCmd)
}

// Execute runs the root command and reports a failure on stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, ErrAborted) {
		ui.ErrorMsg("%v", err)
	}
	return err
}

// initializeApp sets up the application state.
func initializeApp(cmd *cobra.Command) error {
	var err error
	switch {
	case cfgFile != "":
		cfg, err = config.LoadFrom(cfgFile)
	case cfgDir != "":
		cfg, err = config.LoadDir(cfgDir)
	default:
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	// Apply global flag overrides
	if yes {
		cfg.General.AutoConfirm = true
	}
	if dryRun {
		cfg.General.DryRun = true
	}
	if cmd.Flags().Changed("sudo") {
		cfg.General.UseSudo = useSudo
	}
	if noColor {
		cfg.Output.Color = false
	}

	ui.Init(cfg.ShouldUseColor(), cfg.Output.Unicode)
	logging.Init(logging.Config{
		Verbosity: verbosity,
		Quiet:     quiet,
		Output:    cmd.ErrOrStderr(),
	})

	runner = executor.New(cfg.General.DryRun, cfg.General.UseSudo)
	runner.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())

	dnf = native.NewDNF(runner)
	groups = native.NewGroups(runner)
	repos = native.NewRepos(runner)
	kernels = native.NewKernels(runner)
	flatpak = universal.NewFlatpak(cfg.Flatpak.DefaultRemote, runner)
	hist = history.New(cfg.HistoryPath())

	logging.Get("cli").Debug("initialized", "config", cfg.Dir, "history", hist.Path(),
		"dry_run", cfg.General.DryRun, "sudo", cfg.General.UseSudo)

	return nil
}

// recordHistory appends a successful mutating operation to the history.
// Dry runs change nothing and are not recorded.
func recordHistory(action history.Action, items []string) error {
	if cfg.General.DryRun {
		return nil
	}
	if err := hist.Append(action, items); err != nil {
		return fmt.Errorf("operation succeeded but history was not saved: %w", err)
	}
	return nil
}

// resolvePackages resolves aliases in package names.
func resolvePackages(packages []string) []string {
	return cfg.ResolveAliases(packages)
}

// Version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print fpm version",
	Run: func(cmd *cobra.Command, args []string) {
		ui.InfoMsg("fpm version %s", Version)
		if Commit != "unknown" {
			ui.MutedMsg("  Commit: %s", Commit)
		}
		if BuildTime != "unknown" {
			ui.MutedMsg("  Built:  %s", BuildTime)
		}
	},
}
