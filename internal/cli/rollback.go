package cli

import (
	"context"
	"errors"

	"fpm/internal/rollback"
	"fpm/internal/ui"
	"fpm/pkg/manager"

	"github.com/spf13/cobra"
)

var rollbackID int

var rollbackCmd = &cobra.Command{
	Use:     "rollback",
	Aliases: []string{"undo"},
	Short:   "Undo a recorded operation",
	Long: `Undo the last recorded operation, or the one with the given id.

Installs are undone by removing the packages and removals by installing
them again. Updates and other operations are reported but not changed.
Rolling back does not add a history entry, so ids stay stable.

Examples:
  fpm rollback                 # Undo the last operation
  fpm rollback --id 3          # Undo entry 3 (see 'fpm history --all')
  fpm rollback -y              # Pass -y to dnf`,
	Args: cobra.NoArgs,
	RunE: runRollback,
}

func init() {
	rollbackCmd.Flags().IntVar(&rollbackID, "id", 0, "1-based history id to roll back (default: last)")
}

func runRollback(cmd *cobra.Command, args []string) error {
	return rollbackTo(cmd, rollbackID, cmd.Flags().Changed("id"))
}

// rollbackTo undoes entry id when byID is set, otherwise the last entry.
func rollbackTo(cmd *cobra.Command, id int, byID bool) error {
	ctx := context.Background()

	act := manager.Actuator{Manager: dnf, DryRun: cfg.General.DryRun}
	engine := rollback.New(hist, act, rollback.WithOutput(cmd.OutOrStdout()))

	var (
		res *rollback.Result
		err error
	)
	if byID {
		res, err = engine.RollbackByID(ctx, id, cfg.General.AutoConfirm)
	} else {
		res, err = engine.RollbackLast(ctx, cfg.General.AutoConfirm)
	}

	switch {
	case errors.Is(err, rollback.ErrNothingToRollback):
		ui.FInfo(cmd.OutOrStdout(), "No history to rollback")
		return nil
	case err != nil:
		return err
	}

	if res.Outcome != rollback.OutcomeNotInvertible {
		ui.FSuccess(cmd.OutOrStdout(), "Rollback completed (%s %s)", res.Outcome, res.Entry.JoinItems())
	}
	return nil
}
