package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidation_IsErrValidation(t *testing.T) {
	err := Validation("amount must be positive")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected errors.Is(err, ErrValidation), got %v", err)
	}
	if err.Error() != "validation failed: amount must be positive" {
		t.Fatalf("unexpected message %q", err.Error())
	}

	wrapped := fmt.Errorf("create expense: %w", err)
	if !errors.Is(wrapped, ErrValidation) {
		t.Fatalf("wrapping lost the sentinel: %v", wrapped)
	}
	if errors.Is(wrapped, ErrNotFound) {
		t.Fatalf("validation error must not match ErrNotFound")
	}
}
