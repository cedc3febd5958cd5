// Package errs holds the error taxonomy shared by every ledger operation.
// Callers match with errors.Is; usecases wrap with context via fmt.Errorf.
package errs

import "errors"

var (
	ErrNotFound               = errors.New("not found")
	ErrIllegalTransition      = errors.New("illegal state transition")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrInsufficientBalance    = errors.New("insufficient balance")
	ErrValidation             = errors.New("validation failed")
	ErrConcurrentModification = errors.New("concurrent modification")
)

// Validation returns an ErrValidation carrying msg.
func Validation(msg string) error {
	return &validationError{msg: msg}
}

type validationError struct{ msg string }

func (e *validationError) Error() string { return "validation failed: " + e.msg }

func (e *validationError) Unwrap() error { return ErrValidation }
