package rules

import (
	"errors"
	"fmt"
)

// undoLog records compensating actions for the steps of a composite
// mutation, so a failure part way through can put the store back.
type undoLog struct {
	steps []undoStep
}

type undoStep struct {
	what string
	fn   func() error
}

// record appends a compensation for a step that has already been applied.
func (l *undoLog) record(what string, fn func() error) {
	l.steps = append(l.steps, undoStep{what: what, fn: fn})
}

// rollback runs every compensation, newest first. It keeps going past
// failures and returns them joined.
func (l *undoLog) rollback() error {
	var errs []error
	for i := len(l.steps) - 1; i >= 0; i-- {
		step := l.steps[i]
		if err := step.fn(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", step.what, err))
		}
	}
	l.steps = nil
	return errors.Join(errs...)
}

func (l *undoLog) len() int { return len(l.steps) }
