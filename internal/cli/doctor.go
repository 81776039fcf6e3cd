package cli

import (
	"os"
	"os/exec"

	"fpm/internal/executor"
	"fpm/internal/ui"

	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose system issues",
	Long: `Check that the wrapped tools are installed, that privileged commands
can be elevated, and that the configuration and history files are usable.

Examples:
  fpm doctor                   # Run diagnostics`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

// doctorBinary is a tool fpm runs; required tools count as issues when missing.
type doctorBinary struct {
	name     string
	required bool
	purpose  string
}

var doctorBinaries = []doctorBinary{
	{"dnf", true, "package operations"},
	{"rpm", true, "package queries"},
	{"flatpak", false, "Flatpak applications"},
	{"sudo", false, "privilege elevation"},
}

func runDoctor(cmd *cobra.Command, args []string) error {
	issues := 0

	ui.HeaderMsg("Running diagnostics...")

	ui.HeaderMsg("Tools")
	for _, b := range doctorBinaries {
		path, err := exec.LookPath(b.name)
		switch {
		case err == nil:
			ui.SuccessMsg("%s: %s", b.name, path)
		case b.required:
			ui.ErrorMsg("%s not found (needed for %s)", b.name, b.purpose)
			issues++
		default:
			ui.MutedMsg("%s is not installed (needed for %s)", b.name, b.purpose)
		}
	}

	ui.HeaderMsg("Privileges")
	switch {
	case executor.IsRoot():
		ui.SuccessMsg("Running as root")
	case !cfg.General.UseSudo:
		ui.WarningMsg("sudo disabled; privileged commands run unelevated")
	default:
		if err := executor.CheckPrivileges(dnf.NeedsSudo()); err != nil {
			ui.ErrorMsg("%v", err)
			issues++
		} else {
			ui.SuccessMsg("Privileged commands use sudo")
		}
	}

	ui.HeaderMsg("Configuration")
	ui.InfoMsg("Config directory: %s", cfg.Dir)
	if _, err := os.Stat(cfg.Dir); err != nil {
		ui.MutedMsg("Config directory does not exist yet; defaults are in use")
	}

	ui.InfoMsg("History file: %s", hist.Path())
	n, err := hist.Len()
	if err != nil {
		ui.ErrorMsg("History file is unreadable: %v", err)
		issues++
	} else {
		ui.SuccessMsg("History file is valid (%d entries)", n)
	}

	ui.HeaderMsg("Summary")
	if issues == 0 {
		ui.SuccessMsg("No issues found! fpm is ready to use.")
	} else {
		ui.WarningMsg("Found %d issue(s). Some features may not work correctly.", issues)
	}

	return nil
}
