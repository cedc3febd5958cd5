package expense

import "context"

type Repository interface {
	Create(ctx context.Context, e *Expense) error
	GetByID(ctx context.Context, id uint64) (*Expense, error)
	GetByIDForUpdate(ctx context.Context, id uint64) (*Expense, error)
	Save(ctx context.Context, e *Expense) error
	Delete(ctx context.Context, e *Expense) error

	// Approvals are append-only: there is no update or delete.
	CreateApproval(ctx context.Context, a *Approval) error
	ListApprovals(ctx context.Context, expenseID uint64) ([]Approval, error)
}
