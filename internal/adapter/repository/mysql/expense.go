package mysql

import (
	"context"

	"gorm.io/gorm"

	expenseDomain "ngo-finance-backend/internal/domain/expense"
)

type ExpenseRepository struct{ db *gorm.DB }

func NewExpenseRepository(db *gorm.DB) *ExpenseRepository { return &ExpenseRepository{db: db} }

func (r *ExpenseRepository) Create(ctx context.Context, e *expenseDomain.Expense) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id uint64) (*expenseDomain.Expense, error) {
	var out expenseDomain.Expense
	if err := r.db.WithContext(ctx).First(&out, id).Error; err != nil {
		return nil, notFound(err, "expense", id)
	}
	return &out, nil
}

func (r *ExpenseRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*expenseDomain.Expense, error) {
	var out expenseDomain.Expense
	if err := r.db.WithContext(ctx).Clauses(forUpdate).First(&out, id).Error; err != nil {
		return nil, notFound(err, "expense", id)
	}
	return &out, nil
}

func (r *ExpenseRepository) Save(ctx context.Context, e *expenseDomain.Expense) error {
	return r.db.WithContext(ctx).Save(e).Error
}

// Delete is a soft delete.
func (r *ExpenseRepository) Delete(ctx context.Context, e *expenseDomain.Expense) error {
	return r.db.WithContext(ctx).Delete(e).Error
}

func (r *ExpenseRepository) CreateApproval(ctx context.Context, a *expenseDomain.Approval) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ExpenseRepository) ListApprovals(ctx context.Context, expenseID uint64) ([]expenseDomain.Approval, error) {
	var out []expenseDomain.Approval
	err := r.db.WithContext(ctx).
		Where("expense_id = ?", expenseID).
		Order("action_date, id").
		Find(&out).Error
	return out, err
}
