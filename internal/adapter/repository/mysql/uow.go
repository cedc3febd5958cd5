package mysql

import (
	"context"

	"gorm.io/gorm"

	"ngo-finance-backend/internal/domain/expense"
	"ngo-finance-backend/internal/domain/purchaseorder"
	"ngo-finance-backend/internal/domain/uow"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Projects:       &ProjectRepository{db: tx},
		Budgets:        &BudgetRepository{db: tx},
		Cash:           &CashFlowRepository{db: tx},
		Expenses:       &ExpenseRepository{db: tx},
		PurchaseOrders: &PurchaseOrderRepository{db: tx},
		Sequences:      &SequenceRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinExpenseTx(ctx context.Context, expenseID uint64, fn func(r uow.Repos, e *expense.Expense) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the expense row up-front to prevent races
		e, err := r.Expenses.GetByIDForUpdate(ctx, expenseID)
		if err != nil {
			return err
		}
		return fn(r, e)
	})
}

func (u *GormUoW) WithinPurchaseOrderTx(ctx context.Context, poID uint64, fn func(r uow.Repos, po *purchaseorder.PurchaseOrder) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		po, err := r.PurchaseOrders.GetByIDForUpdate(ctx, poID)
		if err != nil {
			return err
		}
		return fn(r, po)
	})
}
