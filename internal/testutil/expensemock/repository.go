package expensemock

import (
	"context"
	"errors"

	domain "ngo-finance-backend/internal/domain/expense"
)

var _ domain.Repository = (*Repo)(nil)

var ErrNotImplemented = errors.New("expensemock: not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
// Writes default to success, reads to ErrNotImplemented.
type Repo struct {
	CreateFn           func(ctx context.Context, e *domain.Expense) error
	GetByIDFn          func(ctx context.Context, id uint64) (*domain.Expense, error)
	GetByIDForUpdateFn func(ctx context.Context, id uint64) (*domain.Expense, error)
	SaveFn             func(ctx context.Context, e *domain.Expense) error
	DeleteFn           func(ctx context.Context, e *domain.Expense) error
	CreateApprovalFn   func(ctx context.Context, a *domain.Approval) error
	ListApprovalsFn    func(ctx context.Context, expenseID uint64) ([]domain.Approval, error)
}

func (m *Repo) Create(ctx context.Context, e *domain.Expense) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, e)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Expense, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, ErrNotImplemented
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Expense, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, ErrNotImplemented
}

func (m *Repo) Save(ctx context.Context, e *domain.Expense) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, e)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, e *domain.Expense) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, e)
	}
	return nil
}

func (m *Repo) CreateApproval(ctx context.Context, a *domain.Approval) error {
	if m.CreateApprovalFn != nil {
		return m.CreateApprovalFn(ctx, a)
	}
	return nil
}

func (m *Repo) ListApprovals(ctx context.Context, expenseID uint64) ([]domain.Approval, error) {
	if m.ListApprovalsFn != nil {
		return m.ListApprovalsFn(ctx, expenseID)
	}
	return nil, ErrNotImplemented
}
