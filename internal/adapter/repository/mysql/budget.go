package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	budgetDomain "ngo-finance-backend/internal/domain/budget"
)

type BudgetRepository struct{ db *gorm.DB }

func NewBudgetRepository(db *gorm.DB) *BudgetRepository { return &BudgetRepository{db: db} }

func itemsByID(db *gorm.DB) *gorm.DB { return db.Order("id") }

func (r *BudgetRepository) Create(ctx context.Context, b *budgetDomain.Budget) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(b).Error
}

func (r *BudgetRepository) CreateItems(ctx context.Context, items []budgetDomain.Item) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *BudgetRepository) GetByID(ctx context.Context, id uint64) (*budgetDomain.Budget, error) {
	var out budgetDomain.Budget
	if err := r.db.WithContext(ctx).Preload("Items", itemsByID).First(&out, id).Error; err != nil {
		return nil, notFound(err, "budget", id)
	}
	return &out, nil
}

func (r *BudgetRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*budgetDomain.Budget, error) {
	var out budgetDomain.Budget
	err := r.db.WithContext(ctx).
		Clauses(forUpdate).
		Preload("Items", itemsByID).
		First(&out, id).Error
	if err != nil {
		return nil, notFound(err, "budget", id)
	}
	return &out, nil
}

func (r *BudgetRepository) Save(ctx context.Context, b *budgetDomain.Budget) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(b).Error
}

func (r *BudgetRepository) Delete(ctx context.Context, b *budgetDomain.Budget) error {
	return r.db.WithContext(ctx).Delete(b).Error
}

func (r *BudgetRepository) GetItem(ctx context.Context, id uint64) (*budgetDomain.Item, error) {
	var out budgetDomain.Item
	if err := r.db.WithContext(ctx).First(&out, id).Error; err != nil {
		return nil, notFound(err, "budget item", id)
	}
	return &out, nil
}

func (r *BudgetRepository) GetItemForUpdate(ctx context.Context, id uint64) (*budgetDomain.Item, error) {
	var out budgetDomain.Item
	if err := r.db.WithContext(ctx).Clauses(forUpdate).First(&out, id).Error; err != nil {
		return nil, notFound(err, "budget item", id)
	}
	return &out, nil
}

func (r *BudgetRepository) UpdateItemAmounts(ctx context.Context, it *budgetDomain.Item) error {
	res := r.db.WithContext(ctx).Model(&budgetDomain.Item{}).
		Where("id = ? AND version = ?", it.ID, it.Version).
		Updates(map[string]any{
			"allocated_amount": it.AllocatedAmount,
			"spent_amount":     it.SpentAmount,
			"remaining_amount": it.RemainingAmount,
			"version":          gorm.Expr("version + 1"),
		})
	if err := casResult(res, "budget item", it.ID); err != nil {
		return err
	}
	it.Version++
	return nil
}

func (r *BudgetRepository) CreateReallocation(ctx context.Context, re *budgetDomain.Reallocation) error {
	return r.db.WithContext(ctx).Create(re).Error
}

func (r *BudgetRepository) GetReallocationForUpdate(ctx context.Context, id uint64) (*budgetDomain.Reallocation, error) {
	var out budgetDomain.Reallocation
	if err := r.db.WithContext(ctx).Clauses(forUpdate).First(&out, id).Error; err != nil {
		return nil, notFound(err, "budget reallocation", id)
	}
	return &out, nil
}

func (r *BudgetRepository) SaveReallocation(ctx context.Context, re *budgetDomain.Reallocation) error {
	return r.db.WithContext(ctx).Save(re).Error
}
