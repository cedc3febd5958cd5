package expensemock

import (
	"context"
	"errors"
	"testing"

	domain "ngo-finance-backend/internal/domain/expense"
)

func TestRepo_Defaults(t *testing.T) {
	ctx := context.Background()
	m := &Repo{}

	if err := m.Create(ctx, &domain.Expense{}); err != nil {
		t.Fatalf("Create default: %v", err)
	}
	if err := m.Save(ctx, &domain.Expense{}); err != nil {
		t.Fatalf("Save default: %v", err)
	}
	if _, err := m.GetByID(ctx, 1); !errors.Is(err, ErrNotImplemented) {
		t.Fatalf("GetByID default: want ErrNotImplemented, got %v", err)
	}
	if _, err := m.ListApprovals(ctx, 1); !errors.Is(err, ErrNotImplemented) {
		t.Fatalf("ListApprovals default: want ErrNotImplemented, got %v", err)
	}
}

func TestRepo_ForwardsToFuncs(t *testing.T) {
	ctx := context.Background()
	want := &domain.Expense{ID: 3, ExpenseNumber: "EXP-2025-0003"}
	var saved *domain.Expense

	m := &Repo{
		GetByIDFn: func(_ context.Context, id uint64) (*domain.Expense, error) {
			if id != 3 {
				t.Fatalf("id = %d", id)
			}
			return want, nil
		},
		SaveFn: func(_ context.Context, e *domain.Expense) error {
			saved = e
			return nil
		},
	}

	got, err := m.GetByID(ctx, 3)
	if err != nil || got != want {
		t.Fatalf("GetByID: got %v err %v", got, err)
	}
	if err := m.Save(ctx, got); err != nil || saved != want {
		t.Fatalf("Save not forwarded")
	}
}
