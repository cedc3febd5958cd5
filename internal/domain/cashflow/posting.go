package cashflow

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"ngo-finance-backend/internal/domain/errs"
)

// Movement is what a caller asks the ledger to post.
type Movement struct {
	Type          Type
	BankAccountID uint64
	Amount        decimal.Decimal
	ProjectID     *uint64
	ExpenseID     *uint64
	Category      string
	Description   string
	Date          time.Time
	Actor         uint64
}

// Apply computes the entry for m against acct and moves acct's balance.
// acct is left untouched when an error is returned.
func Apply(acct *BankAccount, m Movement) (*CashFlow, error) {
	if !m.Type.Valid() {
		return nil, errs.Validation(fmt.Sprintf("unknown cash flow type %q", m.Type))
	}
	if !m.Amount.IsPositive() {
		return nil, errs.Validation("amount must be greater than zero")
	}
	if !acct.IsActive {
		return nil, errs.Validation(fmt.Sprintf("bank account %d is inactive", acct.ID))
	}

	before := acct.CurrentBalance
	after := before.Add(m.Amount)
	if m.Type == TypeOutflow {
		after = before.Sub(m.Amount)
		if after.IsNegative() {
			return nil, fmt.Errorf("%w: account %d holds %s, outflow needs %s",
				errs.ErrInsufficientBalance, acct.ID, before.StringFixed(2), m.Amount.StringFixed(2))
		}
	}

	date := m.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	acct.CurrentBalance = after
	return &CashFlow{
		Type:            m.Type,
		BankAccountID:   acct.ID,
		ProjectID:       m.ProjectID,
		ExpenseID:       m.ExpenseID,
		Category:        m.Category,
		Description:     m.Description,
		Amount:          m.Amount,
		BalanceBefore:   before,
		BalanceAfter:    after,
		TransactionDate: date,
		CreatedBy:       m.Actor,
	}, nil
}

// Reconcile flips the entry to reconciled. It is one-way.
func (c *CashFlow) Reconcile(actor uint64, at time.Time) error {
	if c.IsReconciled {
		return fmt.Errorf("%w: cash flow %s is already reconciled", errs.ErrIllegalTransition, c.TransactionNumber)
	}
	c.IsReconciled = true
	c.ReconciledAt = &at
	c.ReconciledBy = &actor
	return nil
}
