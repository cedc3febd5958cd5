package cashflow

import (
	"context"
	"time"
)

type Repository interface {
	CreateAccount(ctx context.Context, a *BankAccount) error
	GetAccount(ctx context.Context, id uint64) (*BankAccount, error)
	GetAccountForUpdate(ctx context.Context, id uint64) (*BankAccount, error)
	// UpdateBalance writes CurrentBalance guarded by a.Version and bumps it.
	// A stale version yields errs.ErrConcurrentModification.
	UpdateBalance(ctx context.Context, a *BankAccount) error

	Create(ctx context.Context, c *CashFlow) error
	GetByID(ctx context.Context, id uint64) (*CashFlow, error)
	GetByIDForUpdate(ctx context.Context, id uint64) (*CashFlow, error)
	// MarkReconciled persists only the reconciliation columns.
	MarkReconciled(ctx context.Context, c *CashFlow) error
	ListByAccountSince(ctx context.Context, accountID uint64, since time.Time) ([]CashFlow, error)
}
