package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"ngo-finance-backend/internal/domain/cashflow"
	"ngo-finance-backend/internal/domain/errs"
)

func TestCashFlowRepository_BalanceCASAndListing(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewCashFlowRepository(db)

	a := &cashflow.BankAccount{AccountName: "Ops", AccountNumber: "001", Currency: "USD", CurrentBalance: decimal.Zero, IsActive: true}
	if err := repo.CreateAccount(ctx, a); err != nil {
		t.Fatalf("create account: %v", err)
	}

	stale, _ := repo.GetAccount(ctx, a.ID)
	a.CurrentBalance = dec("500")
	if err := repo.UpdateBalance(ctx, a); err != nil {
		t.Fatalf("update: %v", err)
	}
	stale.CurrentBalance = dec("10")
	if err := repo.UpdateBalance(ctx, stale); !errors.Is(err, errs.ErrConcurrentModification) {
		t.Fatalf("stale: want ErrConcurrentModification, got %v", err)
	}

	old := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)
	for i, d := range []time.Time{old, recent} {
		c := &cashflow.CashFlow{
			TransactionNumber: []string{"TXN-2024-0001", "TXN-2025-0001"}[i],
			Type:              cashflow.TypeInflow, BankAccountID: a.ID,
			Amount: dec("1"), BalanceBefore: dec("0"), BalanceAfter: dec("1"),
			TransactionDate: d, CreatedBy: 1,
		}
		if err := repo.Create(ctx, c); err != nil {
			t.Fatalf("create flow: %v", err)
		}
	}

	flows, err := repo.ListByAccountSince(ctx, a.ID, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil || len(flows) != 1 || flows[0].TransactionNumber != "TXN-2025-0001" {
		t.Fatalf("since filter: %+v, %v", flows, err)
	}

	c := &flows[0]
	if err := c.Reconcile(7, recent); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if err := repo.MarkReconciled(ctx, c); err != nil {
		t.Fatalf("mark reconciled: %v", err)
	}
	got, _ := repo.GetByID(ctx, c.ID)
	if !got.IsReconciled || got.ReconciledBy == nil || *got.ReconciledBy != 7 {
		t.Fatalf("reconciliation not persisted: %+v", got)
	}
}
