package http

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	budgetuc "ngo-finance-backend/internal/usecase/budget"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestDecimalGreaterThanValidation(t *testing.T) {
	type P struct {
		Amount decimal.Decimal `validate:"dgt=0"`
	}
	cv := NewValidator()

	for _, v := range []string{"0.01", "1", "250000.50"} {
		if err := cv.Validate(P{Amount: d(v)}); err != nil {
			t.Fatalf("expected dgt OK for %s, got %v", v, err)
		}
	}
	for _, v := range []string{"0", "-0.01", "-10"} {
		err := cv.Validate(P{Amount: d(v)})
		if err == nil {
			t.Fatalf("expected dgt error for %s", v)
		}
		if fe := ToFieldErrors(err); !containsFieldMsg(fe, "Amount", "greater than 0") {
			t.Fatalf("expected 'greater than 0' for %s, got %+v", v, fe)
		}
	}
	if err := cv.Validate(P{}); err == nil {
		t.Fatalf("zero value decimal must fail dgt=0")
	}
}

func TestDecimalGreaterOrEqualValidation(t *testing.T) {
	type P struct {
		Opening decimal.Decimal `validate:"dgte=0"`
	}
	cv := NewValidator()

	for _, v := range []string{"0", "0.00", "12.5"} {
		if err := cv.Validate(P{Opening: d(v)}); err != nil {
			t.Fatalf("expected dgte OK for %s, got %v", v, err)
		}
	}
	err := cv.Validate(P{Opening: d("-0.01")})
	if err == nil || !containsFieldMsg(ToFieldErrors(err), "Opening", "greater than or equal to 0") {
		t.Fatalf("expected dgte error, got %v", err)
	}
}

func TestDec2Validation(t *testing.T) {
	type P struct {
		Amount decimal.Decimal `validate:"dec2"`
	}
	cv := NewValidator()

	for _, v := range []string{"1.29", "2.00", "0.9", "100"} {
		if err := cv.Validate(P{Amount: d(v)}); err != nil {
			t.Fatalf("expected dec2 OK for %s, got %v", v, err)
		}
	}
	for _, v := range []string{"1.234", "0.001"} {
		err := cv.Validate(P{Amount: d(v)})
		if err == nil || !containsFieldMsg(ToFieldErrors(err), "Amount", "2 decimal places") {
			t.Fatalf("expected dec2 error for %s, got %v", v, err)
		}
	}
}

func TestNestedItemsAreValidated(t *testing.T) {
	cv := NewValidator()
	in := budgetuc.CreateBudgetInput{
		ProjectID:  1,
		FiscalYear: 2025,
		Items:      []budgetuc.ItemInput{{Category: "Travel", AllocatedAmount: d("-5")}},
	}
	err := cv.Validate(in)
	if err == nil || !containsFieldMsg(ToFieldErrors(err), "AllocatedAmount", "greater than or equal to 0") {
		t.Fatalf("expected item error, got %v", err)
	}

	in.Items = nil
	if err := cv.Validate(in); err != nil {
		t.Fatalf("a budget without items is valid, got %v", err)
	}

	re := budgetuc.ReallocationInput{FromItemID: 4, ToItemID: 4, Amount: d("1"), Justification: "x"}
	if err := cv.Validate(re); err == nil || !containsFieldMsg(ToFieldErrors(err), "ToItemID", "must differ") {
		t.Fatalf("expected nefield error, got %v", err)
	}
}

func TestToFieldErrors_NonValidationError(t *testing.T) {
	fe := ToFieldErrors(errors.New("boom"))
	if len(fe) != 1 || fe[0].Field != "_" || fe[0].Message != "boom" {
		t.Fatalf("unexpected: %+v", fe)
	}
}
