package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	cashDomain "ngo-finance-backend/internal/domain/cashflow"
)

type CashFlowRepository struct{ db *gorm.DB }

func NewCashFlowRepository(db *gorm.DB) *CashFlowRepository { return &CashFlowRepository{db: db} }

func (r *CashFlowRepository) CreateAccount(ctx context.Context, a *cashDomain.BankAccount) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *CashFlowRepository) GetAccount(ctx context.Context, id uint64) (*cashDomain.BankAccount, error) {
	var out cashDomain.BankAccount
	if err := r.db.WithContext(ctx).First(&out, id).Error; err != nil {
		return nil, notFound(err, "bank account", id)
	}
	return &out, nil
}

func (r *CashFlowRepository) GetAccountForUpdate(ctx context.Context, id uint64) (*cashDomain.BankAccount, error) {
	var out cashDomain.BankAccount
	if err := r.db.WithContext(ctx).Clauses(forUpdate).First(&out, id).Error; err != nil {
		return nil, notFound(err, "bank account", id)
	}
	return &out, nil
}

func (r *CashFlowRepository) UpdateBalance(ctx context.Context, a *cashDomain.BankAccount) error {
	res := r.db.WithContext(ctx).Model(&cashDomain.BankAccount{}).
		Where("id = ? AND version = ?", a.ID, a.Version).
		Updates(map[string]any{
			"current_balance": a.CurrentBalance,
			"version":         gorm.Expr("version + 1"),
		})
	if err := casResult(res, "bank account", a.ID); err != nil {
		return err
	}
	a.Version++
	return nil
}

func (r *CashFlowRepository) Create(ctx context.Context, c *cashDomain.CashFlow) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CashFlowRepository) GetByID(ctx context.Context, id uint64) (*cashDomain.CashFlow, error) {
	var out cashDomain.CashFlow
	if err := r.db.WithContext(ctx).First(&out, id).Error; err != nil {
		return nil, notFound(err, "cash flow", id)
	}
	return &out, nil
}

func (r *CashFlowRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*cashDomain.CashFlow, error) {
	var out cashDomain.CashFlow
	if err := r.db.WithContext(ctx).Clauses(forUpdate).First(&out, id).Error; err != nil {
		return nil, notFound(err, "cash flow", id)
	}
	return &out, nil
}

func (r *CashFlowRepository) MarkReconciled(ctx context.Context, c *cashDomain.CashFlow) error {
	return r.db.WithContext(ctx).Model(c).
		Select("is_reconciled", "reconciled_at", "reconciled_by").
		Updates(c).Error
}

func (r *CashFlowRepository) ListByAccountSince(ctx context.Context, accountID uint64, since time.Time) ([]cashDomain.CashFlow, error) {
	var out []cashDomain.CashFlow
	err := r.db.WithContext(ctx).
		Where("bank_account_id = ? AND transaction_date >= ?", accountID, since).
		Order("transaction_date, id").
		Find(&out).Error
	return out, err
}
