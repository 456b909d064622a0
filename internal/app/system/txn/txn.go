// Package txn runs multi-document workflows as sagas: an ordered list of
// forward steps, each with an undo, compensated in reverse order when a later
// step fails.
//
// The store is a document database without cross-collection transactions on
// the deployments we target (standalone Mongo, DocumentDB), so atomicity is
// approximated by application-level compensation. A failed undo leaves the
// store inconsistent; that is why undo failures surface as a distinct
// *CompensationError instead of being swallowed.
package txn

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Step is one forward action with its undo. Undo may be nil for steps that
// need no compensation (for example, a conditional update that is the final
// step).
type Step struct {
	Name string
	Run  func(ctx context.Context) error
	Undo func(ctx context.Context) error
}

// CompensationError reports that a saga failed AND one or more undo steps
// also failed, leaving partial state behind. Cause is the forward failure
// that triggered compensation; Failed lists the steps whose undo failed.
type CompensationError struct {
	Cause  error
	Failed []string
	undo   []error
}

func (e *CompensationError) Error() string {
	return fmt.Sprintf("saga failed (%v); compensation also failed for steps: %s",
		e.Cause, strings.Join(e.Failed, ", "))
}

// Unwrap exposes the forward failure for errors.Is/As.
func (e *CompensationError) Unwrap() error { return e.Cause }

// UndoErrors returns the individual undo failures.
func (e *CompensationError) UndoErrors() []error { return e.undo }

// Run executes steps in order. On the first failure it runs the undos of the
// already-completed steps in reverse order and returns the forward error, or
// a *CompensationError when any undo also fails.
func Run(ctx context.Context, logger *zap.Logger, steps []Step) error {
	var done []Step

	for _, step := range steps {
		if err := step.Run(ctx); err != nil {
			return compensate(ctx, logger, done, step.Name, err)
		}
		done = append(done, step)
	}
	return nil
}

func compensate(ctx context.Context, logger *zap.Logger, done []Step, failedStep string, cause error) error {
	logger.Warn("saga step failed, compensating",
		zap.String("step", failedStep),
		zap.Int("completed_steps", len(done)),
		zap.Error(cause))

	var failed []string
	var undoErrs []error
	for i := len(done) - 1; i >= 0; i-- {
		step := done[i]
		if step.Undo == nil {
			continue
		}
		if err := step.Undo(ctx); err != nil {
			logger.Error("saga compensation failed",
				zap.String("step", step.Name),
				zap.Error(err))
			failed = append(failed, step.Name)
			undoErrs = append(undoErrs, err)
		}
	}

	if len(failed) > 0 {
		return &CompensationError{Cause: cause, Failed: failed, undo: undoErrs}
	}
	return cause
}
