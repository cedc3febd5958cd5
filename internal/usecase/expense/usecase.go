package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"ngo-finance-backend/internal/domain/cashflow"
	"ngo-finance-backend/internal/domain/errs"
	"ngo-finance-backend/internal/domain/expense"
	"ngo-finance-backend/internal/domain/fsm"
	"ngo-finance-backend/internal/domain/notification"
	"ngo-finance-backend/internal/domain/purchaseorder"
	"ngo-finance-backend/internal/domain/sequence"
	"ngo-finance-backend/internal/domain/uow"
	budgetuc "ngo-finance-backend/internal/usecase/budget"
	cashuc "ngo-finance-backend/internal/usecase/cashflow"
)

// SpendObserver is told about a committed spend.
type SpendObserver interface {
	AfterSpend(ctx context.Context, budgetID, projectID uint64)
}

type Usecase struct {
	uow      uow.UnitOfWork
	expenses expense.Repository
	notify   notification.Dispatcher
	spends   SpendObserver
	now      func() time.Time
}

// NewUsecase wires the approval chain. spends may be nil.
func NewUsecase(tx uow.UnitOfWork, r expense.Repository, d notification.Dispatcher, s SpendObserver) *Usecase {
	return &Usecase{uow: tx, expenses: r, notify: d, spends: s, now: func() time.Time { return time.Now().UTC() }}
}

func (u *Usecase) Create(ctx context.Context, in CreateInput, actor uint64) (*expense.Expense, error) {
	if in.ProjectID == 0 {
		return nil, errs.Validation("project_id is required")
	}
	if err := validateFields(in.Description, in.Amount); err != nil {
		return nil, err
	}

	var out *expense.Expense
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Projects.GetByID(ctx, in.ProjectID); err != nil {
			return err
		}
		if err := checkReferences(ctx, r, in.ProjectID, in.BudgetItemID, in.PurchaseOrderID); err != nil {
			return err
		}
		now := u.now()
		num, err := sequence.Number(ctx, r.Sequences, sequence.PrefixExpense, now)
		if err != nil {
			return err
		}
		date := in.ExpenseDate
		if date.IsZero() {
			date = now
		}
		e := &expense.Expense{
			ExpenseNumber:   num,
			ProjectID:       in.ProjectID,
			BudgetItemID:    in.BudgetItemID,
			PurchaseOrderID: in.PurchaseOrderID,
			Category:        in.Category,
			Description:     in.Description,
			Amount:          in.Amount,
			ExpenseDate:     date,
			Status:          expense.StatusDraft,
			CreatedBy:       actor,
		}
		if err := r.Expenses.Create(ctx, e); err != nil {
			return err
		}
		out = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("expense_number", out.ExpenseNumber).Uint64("project_id", out.ProjectID).Msg("expense created")
	return out, nil
}

func validateFields(description string, amount decimal.Decimal) error {
	if description == "" {
		return errs.Validation("description is required")
	}
	if !amount.IsPositive() {
		return errs.Validation("amount must be positive")
	}
	return nil
}

// checkReferences ensures the budget line and purchase order, when given,
// belong to the project, and that the order is far enough along to bill.
func checkReferences(ctx context.Context, r uow.Repos, projectID uint64, itemID, poID *uint64) error {
	if itemID != nil {
		it, err := r.Budgets.GetItem(ctx, *itemID)
		if err != nil {
			return err
		}
		b, err := r.Budgets.GetByID(ctx, it.BudgetID)
		if err != nil {
			return err
		}
		if b.ProjectID != projectID {
			return errs.Validation(fmt.Sprintf("budget item %d does not belong to project %d", it.ID, projectID))
		}
	}
	if poID != nil {
		po, err := r.PurchaseOrders.GetByID(ctx, *poID)
		if err != nil {
			return err
		}
		if po.ProjectID != projectID {
			return errs.Validation(fmt.Sprintf("purchase order %s does not belong to project %d", po.PONumber, projectID))
		}
		if !purchaseorder.Referenceable[po.Status] {
			return errs.Validation(fmt.Sprintf("purchase order %s is %s", po.PONumber, po.Status))
		}
	}
	return nil
}

func (u *Usecase) Update(ctx context.Context, id, actor uint64, in UpdateInput) (*expense.Expense, error) {
	if err := validateFields(in.Description, in.Amount); err != nil {
		return nil, err
	}
	var out *expense.Expense
	err := u.uow.WithinExpenseTx(ctx, id, func(r uow.Repos, e *expense.Expense) error {
		if err := e.EnsureEditable("update"); err != nil {
			return err
		}
		if err := checkReferences(ctx, r, e.ProjectID, in.BudgetItemID, in.PurchaseOrderID); err != nil {
			return err
		}
		e.BudgetItemID = in.BudgetItemID
		e.PurchaseOrderID = in.PurchaseOrderID
		e.Category = in.Category
		e.Description = in.Description
		e.Amount = in.Amount
		if !in.ExpenseDate.IsZero() {
			e.ExpenseDate = in.ExpenseDate
		}
		if err := r.Expenses.Save(ctx, e); err != nil {
			return err
		}
		out = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Debug().Str("expense_number", out.ExpenseNumber).Uint64("actor", actor).Msg("expense updated")
	return out, nil
}

// Submit enters (or re-enters) the approval chain.
func (u *Usecase) Submit(ctx context.Context, id, actor uint64) (*expense.Expense, error) {
	var out *expense.Expense
	err := u.uow.WithinExpenseTx(ctx, id, func(r uow.Repos, e *expense.Expense) error {
		if err := e.Submit(actor, u.now()); err != nil {
			return err
		}
		if err := r.Expenses.Save(ctx, e); err != nil {
			return err
		}
		out = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.send(ctx, notification.EventExpenseSubmitted, notification.Recipients{Roles: []notification.Role{notification.RoleFinanceOfficer}}, out, actor, "")
	return out, nil
}

// Review is the Finance Officer decision on a submitted expense. Rejecting
// requires comments; they become the rejection reason.
func (u *Usecase) Review(ctx context.Context, id, actor uint64, in ReviewInput) (*expense.Expense, error) {
	var out *expense.Expense
	err := u.uow.WithinExpenseTx(ctx, id, func(r uow.Repos, e *expense.Expense) error {
		at := u.now()
		action := expense.ActionApproved
		if in.Approve {
			if err := e.Review(actor, at); err != nil {
				return err
			}
		} else {
			if e.Status != expense.StatusSubmitted {
				return &fsm.TransitionError{Entity: "expense", From: string(e.Status), To: string(expense.StatusRejected)}
			}
			if _, err := e.Reject(actor, in.Comments, at); err != nil {
				return err
			}
			action = expense.ActionRejected
		}
		if err := r.Expenses.CreateApproval(ctx, expense.NewApproval(e, expense.LevelFinanceOfficer, action, actor, in.Comments, at)); err != nil {
			return err
		}
		if err := r.Expenses.Save(ctx, e); err != nil {
			return err
		}
		out = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	if in.Approve {
		u.send(ctx, notification.EventExpenseReviewed, notification.Recipients{Roles: []notification.Role{notification.RoleProgramsManager}}, out, actor, in.Comments)
	} else {
		u.send(ctx, notification.EventExpenseRejected, submitter(out), out, actor, in.Comments)
	}
	return out, nil
}

// Approve is the Programs Manager sign-off. It is the only point at which
// the amount is booked against the budget line.
func (u *Usecase) Approve(ctx context.Context, id, actor uint64, comments string) (*expense.Expense, error) {
	var (
		out                 *expense.Expense
		budgetID, projectID uint64
	)
	err := u.uow.WithinExpenseTx(ctx, id, func(r uow.Repos, e *expense.Expense) error {
		at := u.now()
		if err := e.Approve(actor, at); err != nil {
			return err
		}
		if err := r.Expenses.CreateApproval(ctx, expense.NewApproval(e, expense.LevelProgramsManager, expense.ActionApproved, actor, comments, at)); err != nil {
			return err
		}
		if e.BudgetItemID != nil {
			it, pid, err := budgetuc.Spend(ctx, r, *e.BudgetItemID, e.Amount)
			if err != nil {
				return err
			}
			budgetID, projectID = it.BudgetID, pid
		}
		if err := r.Expenses.Save(ctx, e); err != nil {
			return err
		}
		out = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.send(ctx, notification.EventExpenseApproved, submitter(out), out, actor, comments)
	if budgetID != 0 && u.spends != nil {
		u.spends.AfterSpend(ctx, budgetID, projectID)
	}
	return out, nil
}

// Reject is the Programs Manager rejection of an expense under review.
func (u *Usecase) Reject(ctx context.Context, id, actor uint64, reason string) (*expense.Expense, error) {
	var out *expense.Expense
	err := u.uow.WithinExpenseTx(ctx, id, func(r uow.Repos, e *expense.Expense) error {
		if e.Status != expense.StatusUnderReview {
			return &fsm.TransitionError{Entity: "expense", From: string(e.Status), To: string(expense.StatusRejected)}
		}
		at := u.now()
		level, err := e.Reject(actor, reason, at)
		if err != nil {
			return err
		}
		if err := r.Expenses.CreateApproval(ctx, expense.NewApproval(e, level, expense.ActionRejected, actor, reason, at)); err != nil {
			return err
		}
		if err := r.Expenses.Save(ctx, e); err != nil {
			return err
		}
		out = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.send(ctx, notification.EventExpenseRejected, submitter(out), out, actor, reason)
	return out, nil
}

// MarkPaid closes an approved expense. With a bank account the matching
// outflow is posted in the same transaction.
func (u *Usecase) MarkPaid(ctx context.Context, id, actor uint64, in PaymentInput) (*expense.Expense, error) {
	var out *expense.Expense
	err := u.uow.WithinExpenseTx(ctx, id, func(r uow.Repos, e *expense.Expense) error {
		at := u.now()
		if err := e.MarkPaid(actor, expense.Payment{Reference: in.PaymentReference, Method: in.PaymentMethod, Notes: in.PaymentNotes}, at); err != nil {
			return err
		}
		if in.BankAccountID != nil {
			projectID, expenseID := e.ProjectID, e.ID
			_, err := cashuc.Post(ctx, r, cashflow.Movement{
				Type:          cashflow.TypeOutflow,
				BankAccountID: *in.BankAccountID,
				Amount:        e.Amount,
				ProjectID:     &projectID,
				ExpenseID:     &expenseID,
				Category:      e.Category,
				Description:   "payment for " + e.ExpenseNumber,
				Date:          at,
				Actor:         actor,
			}, at)
			if err != nil {
				return err
			}
		}
		if err := r.Expenses.Save(ctx, e); err != nil {
			return err
		}
		out = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.send(ctx, notification.EventExpensePaid, submitter(out), out, actor, in.PaymentReference)
	return out, nil
}

// Delete soft-deletes a Draft or Rejected expense.
func (u *Usecase) Delete(ctx context.Context, id, actor uint64) error {
	var number string
	err := u.uow.WithinExpenseTx(ctx, id, func(r uow.Repos, e *expense.Expense) error {
		if err := e.EnsureEditable("delete"); err != nil {
			return err
		}
		number = e.ExpenseNumber
		return r.Expenses.Delete(ctx, e)
	})
	if err != nil {
		return err
	}
	log.Info().Str("expense_number", number).Uint64("actor", actor).Msg("expense deleted")
	return nil
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*expense.Expense, error) {
	return u.expenses.GetByID(ctx, id)
}

// Approvals returns the audit trail, oldest first.
func (u *Usecase) Approvals(ctx context.Context, id uint64) ([]expense.Approval, error) {
	if _, err := u.expenses.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return u.expenses.ListApprovals(ctx, id)
}

func submitter(e *expense.Expense) notification.Recipients {
	if e.SubmittedBy != nil {
		return notification.Recipients{UserIDs: []uint64{*e.SubmittedBy}}
	}
	return notification.Recipients{UserIDs: []uint64{e.CreatedBy}}
}

func (u *Usecase) send(ctx context.Context, ev notification.Event, to notification.Recipients, e *expense.Expense, actor uint64, comments string) {
	payload := map[string]any{
		"expense_id":     e.ID,
		"expense_number": e.ExpenseNumber,
		"project_id":     e.ProjectID,
		"amount":         e.Amount.StringFixed(2),
		"status":         string(e.Status),
		"actor":          actor,
	}
	if comments != "" {
		payload["comments"] = comments
	}
	notification.Send(ctx, u.notify, notification.New(ev, to, payload))
}
