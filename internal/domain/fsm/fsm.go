// Package fsm provides the transition tables the aggregates use to guard
// their status changes.
package fsm

import (
	"fmt"

	"ngo-finance-backend/internal/domain/errs"
)

// Table maps a state to the states reachable from it in one step.
type Table[S ~string] map[S][]S

// Allows reports whether from -> to is a legal transition.
func (t Table[S]) Allows(from, to S) bool {
	for _, s := range t[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Check returns a *TransitionError when from -> to is not in the table.
func (t Table[S]) Check(entity string, from, to S) error {
	if t.Allows(from, to) {
		return nil
	}
	return &TransitionError{Entity: entity, From: string(from), To: string(to)}
}

// TransitionError describes a rejected status change. It matches
// errs.ErrIllegalTransition.
type TransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: cannot move from %q to %q", e.Entity, e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return errs.ErrIllegalTransition }
