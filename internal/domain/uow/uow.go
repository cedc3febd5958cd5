package uow

import (
	"context"

	"ngo-finance-backend/internal/domain/budget"
	"ngo-finance-backend/internal/domain/cashflow"
	"ngo-finance-backend/internal/domain/expense"
	"ngo-finance-backend/internal/domain/project"
	"ngo-finance-backend/internal/domain/purchaseorder"
	"ngo-finance-backend/internal/domain/sequence"
)

// Repos are bound to one transaction.
type Repos struct {
	Projects       project.Repository
	Budgets        budget.Repository
	Cash           cashflow.Repository
	Expenses       expense.Repository
	PurchaseOrders purchaseorder.Repository
	Sequences      sequence.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the expense first, then pass it in
	WithinExpenseTx(ctx context.Context, expenseID uint64, fn func(r Repos, e *expense.Expense) error) error
	// lock the purchase order (items loaded) first
	WithinPurchaseOrderTx(ctx context.Context, poID uint64, fn func(r Repos, po *purchaseorder.PurchaseOrder) error) error
}
