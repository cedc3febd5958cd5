package cashflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"ngo-finance-backend/internal/adapter/repository/mysql"
	"ngo-finance-backend/internal/domain/cashflow"
	"ngo-finance-backend/internal/domain/errs"
	"ngo-finance-backend/internal/testutil/dbtest"
)

func newUsecase(t *testing.T) (*Usecase, *gorm.DB) {
	t.Helper()
	db := dbtest.Open(t)
	return NewUsecase(mysql.NewGormUoW(db), mysql.NewCashFlowRepository(db)), db
}

func TestRecordOutflow_InsufficientBalanceLeavesNoTrace(t *testing.T) {
	uc, db := newUsecase(t)
	ctx := context.Background()
	acct := dbtest.Account(t, db, "ACC-1", "100")

	_, err := uc.RecordOutflow(ctx, MovementInput{BankAccountID: acct.ID, Amount: dbtest.Dec("150")}, 1)
	if !errors.Is(err, errs.ErrInsufficientBalance) {
		t.Fatalf("want ErrInsufficientBalance, got %v", err)
	}

	got, _ := uc.GetAccount(ctx, acct.ID)
	if !got.CurrentBalance.Equal(dbtest.Dec("100")) {
		t.Fatalf("balance = %s, want 100", got.CurrentBalance)
	}
	var n int64
	db.Model(&cashflow.CashFlow{}).Count(&n)
	if n != 0 {
		t.Fatalf("cash flow rows = %d, want 0", n)
	}
}

func TestRecord_BalanceChainAndNumbers(t *testing.T) {
	uc, db := newUsecase(t)
	ctx := context.Background()
	acct := dbtest.Account(t, db, "ACC-2", "0")
	uc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	in, err := uc.RecordInflow(ctx, MovementInput{BankAccountID: acct.ID, Amount: dbtest.Dec("1000.25"), Category: "Grant"}, 1)
	if err != nil {
		t.Fatalf("inflow: %v", err)
	}
	out, err := uc.RecordOutflow(ctx, MovementInput{BankAccountID: acct.ID, Amount: dbtest.Dec("400.25")}, 1)
	if err != nil {
		t.Fatalf("outflow: %v", err)
	}

	if in.TransactionNumber != "TXN-2025-0001" || out.TransactionNumber != "TXN-2025-0002" {
		t.Fatalf("numbers = %s, %s", in.TransactionNumber, out.TransactionNumber)
	}
	if !in.BalanceAfter.Equal(in.BalanceBefore.Add(in.Amount)) {
		t.Fatalf("inflow balance chain broken: %+v", in)
	}
	if !out.BalanceBefore.Equal(in.BalanceAfter) || !out.BalanceAfter.Equal(out.BalanceBefore.Sub(out.Amount)) {
		t.Fatalf("outflow balance chain broken: %+v", out)
	}
	got, _ := uc.GetAccount(ctx, acct.ID)
	if !got.CurrentBalance.Equal(out.BalanceAfter) || !got.CurrentBalance.Equal(dbtest.Dec("600")) {
		t.Fatalf("account balance = %s, last balance_after = %s", got.CurrentBalance, out.BalanceAfter)
	}
}

func TestRecord_RejectsBadInput(t *testing.T) {
	uc, db := newUsecase(t)
	ctx := context.Background()
	acct := dbtest.Account(t, db, "ACC-3", "10")

	if _, err := uc.RecordInflow(ctx, MovementInput{BankAccountID: acct.ID, Amount: dbtest.Dec("0")}, 1); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("zero amount: want ErrValidation, got %v", err)
	}
	if _, err := uc.RecordInflow(ctx, MovementInput{BankAccountID: 404, Amount: dbtest.Dec("1")}, 1); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("missing account: want ErrNotFound, got %v", err)
	}

	db.Model(&cashflow.BankAccount{}).Where("id = ?", acct.ID).Update("is_active", false)
	if _, err := uc.RecordInflow(ctx, MovementInput{BankAccountID: acct.ID, Amount: dbtest.Dec("1")}, 1); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("inactive account: want ErrValidation, got %v", err)
	}
}

func TestOpenAccount_PostsOpeningBalance(t *testing.T) {
	uc, db := newUsecase(t)
	ctx := context.Background()

	acct, err := uc.OpenAccount(ctx, OpenAccountInput{AccountName: "Field", AccountNumber: "F-01", OpeningBalance: dbtest.Dec("250")}, 1)
	if err != nil {
		t.Fatalf("OpenAccount: %v", err)
	}
	if !acct.CurrentBalance.Equal(dbtest.Dec("250")) || acct.Currency != "USD" {
		t.Fatalf("account = %+v", acct)
	}
	var flows []cashflow.CashFlow
	db.Where("bank_account_id = ?", acct.ID).Find(&flows)
	if len(flows) != 1 || flows[0].Type != cashflow.TypeInflow || !flows[0].BalanceAfter.Equal(dbtest.Dec("250")) {
		t.Fatalf("opening entry = %+v", flows)
	}

	empty, err := uc.OpenAccount(ctx, OpenAccountInput{AccountName: "Petty", AccountNumber: "P-01"}, 1)
	if err != nil || !empty.CurrentBalance.IsZero() {
		t.Fatalf("zero opening: %+v, %v", empty, err)
	}
}

func TestReconcile_OneWay(t *testing.T) {
	uc, db := newUsecase(t)
	ctx := context.Background()
	acct := dbtest.Account(t, db, "ACC-4", "0")
	cf, err := uc.RecordInflow(ctx, MovementInput{BankAccountID: acct.ID, Amount: dbtest.Dec("5")}, 1)
	if err != nil {
		t.Fatalf("inflow: %v", err)
	}

	got, err := uc.Reconcile(ctx, cf.ID, 2)
	if err != nil || !got.IsReconciled {
		t.Fatalf("reconcile: %+v, %v", got, err)
	}
	if _, err := uc.Reconcile(ctx, cf.ID, 2); !errors.Is(err, errs.ErrIllegalTransition) {
		t.Fatalf("second reconcile: want ErrIllegalTransition, got %v", err)
	}
	stored, _ := uc.Get(ctx, cf.ID)
	if !stored.IsReconciled || !stored.Amount.Equal(dbtest.Dec("5")) {
		t.Fatalf("stored = %+v", stored)
	}
}

func TestCalculateProjection(t *testing.T) {
	uc, db := newUsecase(t)
	ctx := context.Background()
	acct := dbtest.Account(t, db, "ACC-5", "0")

	// history: one inflow of 600 and one outflow of 300 inside the window
	uc.now = func() time.Time { return time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC) }
	if _, err := uc.RecordInflow(ctx, MovementInput{BankAccountID: acct.ID, Amount: dbtest.Dec("600"), TransactionDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)}, 1); err != nil {
		t.Fatalf("inflow: %v", err)
	}
	if _, err := uc.RecordOutflow(ctx, MovementInput{BankAccountID: acct.ID, Amount: dbtest.Dec("300"), TransactionDate: time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)}, 1); err != nil {
		t.Fatalf("outflow: %v", err)
	}

	uc.now = func() time.Time { return time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC) }
	p, err := uc.CalculateProjection(ctx, acct.ID, 3)
	if err != nil {
		t.Fatalf("projection: %v", err)
	}
	if !p.AverageInflow.Equal(dbtest.Dec("100")) || !p.AverageOutflow.Equal(dbtest.Dec("50")) {
		t.Fatalf("averages = %s / %s", p.AverageInflow, p.AverageOutflow)
	}
	if len(p.Months) != 3 || !p.Months[2].ProjectedBalance.Equal(dbtest.Dec("450")) {
		t.Fatalf("months = %+v", p.Months)
	}

	for _, m := range []int{0, 25} {
		if _, err := uc.CalculateProjection(ctx, acct.ID, m); !errors.Is(err, errs.ErrValidation) {
			t.Fatalf("months=%d: want ErrValidation, got %v", m, err)
		}
	}
}
