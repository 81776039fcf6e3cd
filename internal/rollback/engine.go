// Package rollback undoes recorded operations by running the compensating
// install or remove.
package rollback

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"fpm/internal/history"
	"fpm/internal/logging"
	"fpm/internal/ui"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
)

var (
	// ErrNothingToRollback is returned when the history is empty.
	ErrNothingToRollback = errors.New("no history to rollback")

	// ErrInvalidID is matched by every *InvalidIDError.
	ErrInvalidID = errors.New("invalid history ID")
)

// InvalidIDError reports an id outside 1..Len.
type InvalidIDError struct {
	ID  int
	Len int
}

func (e *InvalidIDError) Error() string {
	if e.Len == 0 {
		return fmt.Sprintf("invalid history ID %d: history is empty", e.ID)
	}
	return fmt.Sprintf("invalid history ID %d: valid range is 1-%d", e.ID, e.Len)
}

// Is makes errors.Is(err, ErrInvalidID) hold.
func (e *InvalidIDError) Is(target error) bool {
	return target == ErrInvalidID
}

// Actuator performs the compensating package operations. confirmed skips
// the wrapped tool's own confirmation prompt.
type Actuator interface {
	Install(ctx context.Context, items []string, confirmed bool) error
	Remove(ctx context.Context, items []string, confirmed bool) error
}

// Outcome says what a rollback did.
type Outcome int

const (
	// OutcomeRemoved means installed items were removed.
	OutcomeRemoved Outcome = iota
	// OutcomeReinstalled means removed items were installed again.
	OutcomeReinstalled
	// OutcomeNotInvertible means nothing was run.
	OutcomeNotInvertible
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRemoved:
		return "removed"
	case OutcomeReinstalled:
		return "reinstalled"
	case OutcomeNotInvertible:
		return "not-invertible"
	default:
		return "unknown"
	}
}

// Result describes a completed rollback.
type Result struct {
	Entry   history.Entry
	Outcome Outcome
	// Reason is set for OutcomeNotInvertible.
	Reason string
}

// Engine resolves history entries and dispatches their inverse.
type Engine struct {
	log    *history.Log
	act    Actuator
	out    io.Writer
	logger *log.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithOutput sets where progress and warnings are written. Default stdout.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) {
		e.out = w
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// New creates an Engine reading entries from hl and running inverses
// through act.
func New(hl *history.Log, act Actuator, opts ...Option) *Engine {
	e := &Engine{
		log:    hl,
		act:    act,
		out:    os.Stdout,
		logger: logging.Get("rollback"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RollbackLast rolls back the most recent entry.
func (e *Engine) RollbackLast(ctx context.Context, confirmed bool) (*Result, error) {
	entries, err := e.log.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNothingToRollback
	}
	return e.RollbackEntry(ctx, entries[len(entries)-1], confirmed)
}

// RollbackByID rolls back the entry at 1-based position id.
func (e *Engine) RollbackByID(ctx context.Context, id int, confirmed bool) (*Result, error) {
	entry, err := e.log.Get(id)
	if errors.Is(err, history.ErrOutOfRange) {
		n, lenErr := e.log.Len()
		if lenErr != nil {
			return nil, lenErr
		}
		return nil, &InvalidIDError{ID: id, Len: n}
	}
	if err != nil {
		return nil, err
	}
	return e.RollbackEntry(ctx, entry, confirmed)
}

// RollbackEntry runs the inverse of entry. Updates and unknown actions are
// reported and succeed without running anything.
func (e *Engine) RollbackEntry(ctx context.Context, entry history.Entry, confirmed bool) (*Result, error) {
	ui.FHeader(e.out, "Rolling back: %s %s", entry.Action, entry.JoinItems())
	ui.FMuted(e.out, "recorded %s (%s)", humanize.Time(entry.Timestamp), entry.FormatTime())

	e.logger.Debug("rollback", "action", entry.Action, "kind", entry.Action.Kind(), "items", entry.Items, "confirmed", confirmed)

	res := &Result{Entry: entry}

	switch entry.Action.Kind() {
	case history.KindInstall:
		if err := e.act.Remove(ctx, entry.Items, confirmed); err != nil {
			return nil, fmt.Errorf("rollback of %s failed: %w", entry.Action, err)
		}
		res.Outcome = OutcomeRemoved

	case history.KindRemove:
		if err := e.act.Install(ctx, entry.Items, confirmed); err != nil {
			return nil, fmt.Errorf("rollback of %s failed: %w", entry.Action, err)
		}
		res.Outcome = OutcomeReinstalled

	case history.KindUpdate:
		res.Outcome = OutcomeNotInvertible
		res.Reason = "updates cannot be rolled back automatically"
		ui.FWarning(e.out, "Warning: Cannot automatically rollback updates.")
		ui.FInfo(e.out, "Downgrade manually with 'dnf downgrade <package>' or use 'dnf history undo'.")

	case history.KindOther:
		res.Outcome = OutcomeNotInvertible
		res.Reason = fmt.Sprintf("no inverse for action %s", entry.Action)
		ui.FWarning(e.out, "Cannot rollback action: %s", entry.Action)
	}

	e.logger.Info("rollback finished", "action", entry.Action, "outcome", res.Outcome)
	return res, nil
}
