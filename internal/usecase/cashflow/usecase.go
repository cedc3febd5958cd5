package cashflow

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"ngo-finance-backend/internal/domain/cashflow"
	"ngo-finance-backend/internal/domain/errs"
	"ngo-finance-backend/internal/domain/sequence"
	"ngo-finance-backend/internal/domain/uow"
)

// MaxProjectionMonths bounds CalculateProjection.
const MaxProjectionMonths = 24

type Usecase struct {
	uow  uow.UnitOfWork
	repo cashflow.Repository
	now  func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, r cashflow.Repository) *Usecase {
	return &Usecase{uow: tx, repo: r, now: func() time.Time { return time.Now().UTC() }}
}

// Post locks the account, applies m, numbers and inserts the entry, then
// writes the balance. It runs inside the caller's transaction.
func Post(ctx context.Context, r uow.Repos, m cashflow.Movement, at time.Time) (*cashflow.CashFlow, error) {
	acct, err := r.Cash.GetAccountForUpdate(ctx, m.BankAccountID)
	if err != nil {
		return nil, err
	}
	cf, err := cashflow.Apply(acct, m)
	if err != nil {
		return nil, err
	}
	num, err := sequence.Number(ctx, r.Sequences, sequence.PrefixTransaction, at)
	if err != nil {
		return nil, err
	}
	cf.TransactionNumber = num
	if err := r.Cash.Create(ctx, cf); err != nil {
		return nil, err
	}
	if err := r.Cash.UpdateBalance(ctx, acct); err != nil {
		return nil, err
	}
	return cf, nil
}

// OpenAccount creates the account at zero and posts any opening balance as
// its first inflow.
func (u *Usecase) OpenAccount(ctx context.Context, in OpenAccountInput, actor uint64) (*cashflow.BankAccount, error) {
	if in.AccountName == "" || in.AccountNumber == "" {
		return nil, errs.Validation("account_name and account_number are required")
	}
	if in.OpeningBalance.IsNegative() {
		return nil, errs.Validation("opening_balance must not be negative")
	}
	currency := in.Currency
	if currency == "" {
		currency = "USD"
	}

	var out *cashflow.BankAccount
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		acct := &cashflow.BankAccount{
			AccountName:   in.AccountName,
			AccountNumber: in.AccountNumber,
			BankName:      in.BankName,
			Currency:      currency,
			IsActive:      true,
		}
		if err := r.Cash.CreateAccount(ctx, acct); err != nil {
			return err
		}
		if in.OpeningBalance.IsPositive() {
			_, err := Post(ctx, r, cashflow.Movement{
				Type:          cashflow.TypeInflow,
				BankAccountID: acct.ID,
				Amount:        in.OpeningBalance,
				Category:      "Opening Balance",
				Description:   "opening balance",
				Actor:         actor,
			}, u.now())
			if err != nil {
				return err
			}
		}
		a, err := r.Cash.GetAccount(ctx, acct.ID)
		if err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Uint64("bank_account_id", out.ID).Str("balance", out.CurrentBalance.StringFixed(2)).Msg("bank account opened")
	return out, nil
}

func (u *Usecase) RecordInflow(ctx context.Context, in MovementInput, actor uint64) (*cashflow.CashFlow, error) {
	return u.record(ctx, cashflow.TypeInflow, in, actor)
}

// RecordOutflow fails with errs.ErrInsufficientBalance, persisting nothing,
// when the amount exceeds the balance.
func (u *Usecase) RecordOutflow(ctx context.Context, in MovementInput, actor uint64) (*cashflow.CashFlow, error) {
	return u.record(ctx, cashflow.TypeOutflow, in, actor)
}

func (u *Usecase) record(ctx context.Context, t cashflow.Type, in MovementInput, actor uint64) (*cashflow.CashFlow, error) {
	var out *cashflow.CashFlow
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		cf, err := Post(ctx, r, cashflow.Movement{
			Type:          t,
			BankAccountID: in.BankAccountID,
			Amount:        in.Amount,
			ProjectID:     in.ProjectID,
			Category:      in.Category,
			Description:   in.Description,
			Date:          in.TransactionDate,
			Actor:         actor,
		}, u.now())
		if err != nil {
			return err
		}
		out = cf
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("transaction_number", out.TransactionNumber).Str("type", string(t)).
		Str("amount", out.Amount.StringFixed(2)).Str("balance_after", out.BalanceAfter.StringFixed(2)).
		Msg("cash flow posted")
	return out, nil
}

// Reconcile marks an entry reconciled; it cannot be undone.
func (u *Usecase) Reconcile(ctx context.Context, id, actor uint64) (*cashflow.CashFlow, error) {
	var out *cashflow.CashFlow
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		cf, err := r.Cash.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := cf.Reconcile(actor, u.now()); err != nil {
			return err
		}
		if err := r.Cash.MarkReconciled(ctx, cf); err != nil {
			return err
		}
		out = cf
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CalculateProjection is advisory and writes nothing.
func (u *Usecase) CalculateProjection(ctx context.Context, accountID uint64, months int) (*cashflow.Projection, error) {
	if months < 1 || months > MaxProjectionMonths {
		return nil, errs.Validation(fmt.Sprintf("months must be between 1 and %d", MaxProjectionMonths))
	}
	acct, err := u.repo.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	now := u.now()
	flows, err := u.repo.ListByAccountSince(ctx, accountID, cashflow.WindowStart(now))
	if err != nil {
		return nil, err
	}
	p := cashflow.Project(acct, flows, now, months)
	return &p, nil
}

func (u *Usecase) GetAccount(ctx context.Context, id uint64) (*cashflow.BankAccount, error) {
	return u.repo.GetAccount(ctx, id)
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*cashflow.CashFlow, error) {
	return u.repo.GetByID(ctx, id)
}
