package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"ngo-finance-backend/internal/domain/budget"
	"ngo-finance-backend/internal/domain/errs"
	"ngo-finance-backend/internal/domain/notification"
	"ngo-finance-backend/internal/domain/project"
	"ngo-finance-backend/internal/domain/uow"
)

// Cache is the read-model store for summaries.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type ThresholdChecker interface {
	CheckBudgetThresholds(ctx context.Context, budgetID uint64) ([]int64, error)
}

type Usecase struct {
	uow      uow.UnitOfWork
	budgets  budget.Repository
	projects project.Repository
	cache    Cache
	alerts   ThresholdChecker
	notify   notification.Dispatcher
	opts     Options
	now      func() time.Time
}

// NewUsecase wires the budget flows. cache and alerts may be nil.
func NewUsecase(tx uow.UnitOfWork, b budget.Repository, p project.Repository, c Cache, a ThresholdChecker, d notification.Dispatcher, opts Options) *Usecase {
	if opts.SummaryTTL <= 0 {
		opts.SummaryTTL = 5 * time.Minute
	}
	return &Usecase{
		uow: tx, budgets: b, projects: p, cache: c, alerts: a, notify: d, opts: opts,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func BudgetSummaryKey(id uint64) string  { return fmt.Sprintf("budget:summary:%d", id) }
func ProjectSummaryKey(id uint64) string { return fmt.Sprintf("project:summary:%d", id) }

// CreateBudget inserts a draft budget and its lines, totals them and checks
// the total against donor funding. Any failure leaves nothing behind.
func (u *Usecase) CreateBudget(ctx context.Context, in CreateBudgetInput, actor uint64) (*budget.Budget, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	var out *budget.Budget
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Projects.GetByID(ctx, in.ProjectID); err != nil {
			return err
		}

		b := &budget.Budget{
			ProjectID:   in.ProjectID,
			FiscalYear:  in.FiscalYear,
			TotalAmount: decimal.Zero,
			Status:      budget.StatusDraft,
			Notes:       in.Notes,
			CreatedBy:   actor,
		}
		if err := r.Budgets.Create(ctx, b); err != nil {
			return err
		}

		items := make([]budget.Item, 0, len(in.Items))
		for _, it := range in.Items {
			item := budget.NewItem(it.Category, it.Description, it.AllocatedAmount)
			item.BudgetID = b.ID
			items = append(items, item)
		}
		if err := r.Budgets.CreateItems(ctx, items); err != nil {
			return err
		}

		b.TotalAmount = budget.SumAllocated(items)
		if err := r.Budgets.Save(ctx, b); err != nil {
			return err
		}

		funding, err := r.Projects.TotalFunding(ctx, in.ProjectID)
		if err != nil {
			return err
		}
		if b.TotalAmount.GreaterThan(funding) {
			return fmt.Errorf("%w: total %s, committed %s", budget.ErrFundingExceeded,
				b.TotalAmount.StringFixed(2), funding.StringFixed(2))
		}

		b.Items = items
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Uint64("budget_id", out.ID).Uint64("project_id", out.ProjectID).
		Str("total", out.TotalAmount.StringFixed(2)).Msg("budget created")
	return out, nil
}

func validateCreate(in CreateBudgetInput) error {
	if in.ProjectID == 0 {
		return errs.Validation("project_id is required")
	}
	if in.FiscalYear <= 0 {
		return errs.Validation("fiscal_year is required")
	}
	for i, it := range in.Items {
		if it.Category == "" {
			return errs.Validation(fmt.Sprintf("items[%d].category is required", i))
		}
		if it.AllocatedAmount.IsNegative() {
			return errs.Validation(fmt.Sprintf("items[%d].allocated_amount must not be negative", i))
		}
	}
	return nil
}

// ApproveBudget re-syncs the total from the lines, approves, and carries the
// total onto the project.
func (u *Usecase) ApproveBudget(ctx context.Context, id, actor uint64) (*budget.Budget, error) {
	var (
		out  *budget.Budget
		team []uint64
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		b, err := r.Budgets.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := budget.Transitions.Check("budget", b.Status, budget.StatusApproved); err != nil {
			return err
		}
		at := u.now()
		b.TotalAmount = budget.SumAllocated(b.Items)
		b.Status = budget.StatusApproved
		b.ApprovedBy, b.ApprovedAt = &actor, &at
		if err := r.Budgets.Save(ctx, b); err != nil {
			return err
		}

		p, err := r.Projects.GetByIDForUpdate(ctx, b.ProjectID)
		if err != nil {
			return err
		}
		p.TotalBudget = b.TotalAmount
		if err := r.Projects.Save(ctx, p); err != nil {
			return err
		}
		members, err := r.Projects.MemberIDs(ctx, p.ID)
		if err != nil {
			return err
		}
		team = project.Team(p, members)
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.invalidate(ctx, out.ID, out.ProjectID)
	notification.Send(ctx, u.notify, notification.New(
		notification.EventBudgetApproved,
		notification.Recipients{UserIDs: team},
		map[string]any{"budget_id": out.ID, "project_id": out.ProjectID, "total_amount": out.TotalAmount.StringFixed(2), "approved_by": actor},
	))
	return out, nil
}

// DeleteBudget soft-deletes a draft budget.
func (u *Usecase) DeleteBudget(ctx context.Context, id, actor uint64) error {
	var projectID uint64
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		b, err := r.Budgets.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if b.Status != budget.StatusDraft {
			return fmt.Errorf("%w: budget %d is %s", errs.ErrIllegalTransition, b.ID, b.Status)
		}
		projectID = b.ProjectID
		return r.Budgets.Delete(ctx, b)
	})
	if err != nil {
		return err
	}
	log.Info().Uint64("budget_id", id).Uint64("actor", actor).Msg("budget deleted")
	u.invalidate(ctx, id, projectID)
	return nil
}

// RequestReallocation records a pending move of allocation between two
// lines of the same budget.
func (u *Usecase) RequestReallocation(ctx context.Context, in ReallocationInput, actor uint64) (*budget.Reallocation, error) {
	if in.FromItemID == 0 || in.ToItemID == 0 {
		return nil, errs.Validation("both budget items are required")
	}
	if in.FromItemID == in.ToItemID {
		return nil, errs.Validation("cannot reallocate a budget item to itself")
	}
	if !in.Amount.IsPositive() {
		return nil, errs.Validation("amount must be positive")
	}

	var out *budget.Reallocation
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		from, err := r.Budgets.GetItem(ctx, in.FromItemID)
		if err != nil {
			return err
		}
		to, err := r.Budgets.GetItem(ctx, in.ToItemID)
		if err != nil {
			return err
		}
		if from.BudgetID != to.BudgetID {
			return errs.Validation("budget items belong to different budgets")
		}
		if in.Amount.GreaterThan(from.RemainingAmount) {
			return fmt.Errorf("%w: requested %s, remaining %s on item %d", errs.ErrInsufficientFunds,
				in.Amount.StringFixed(2), from.RemainingAmount.StringFixed(2), from.ID)
		}
		re := &budget.Reallocation{
			BudgetID:         from.BudgetID,
			FromBudgetItemID: from.ID,
			ToBudgetItemID:   to.ID,
			Amount:           in.Amount,
			Justification:    in.Justification,
			Status:           budget.ReallocationPending,
			RequestedBy:      actor,
		}
		if err := r.Budgets.CreateReallocation(ctx, re); err != nil {
			return err
		}
		out = re
		return nil
	})
	if err != nil {
		return nil, err
	}

	notification.Send(ctx, u.notify, notification.New(
		notification.EventReallocationRequested,
		notification.Recipients{Roles: []notification.Role{notification.RoleProgramsManager}},
		map[string]any{"reallocation_id": out.ID, "budget_id": out.BudgetID, "amount": out.Amount.StringFixed(2), "requested_by": actor},
	))
	return out, nil
}

// ApproveReallocation moves the allocation. The sum of the two lines'
// allocations is unchanged.
func (u *Usecase) ApproveReallocation(ctx context.Context, id, actor uint64) (*budget.Reallocation, error) {
	var (
		out       *budget.Reallocation
		projectID uint64
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		re, err := r.Budgets.GetReallocationForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := budget.ReallocationTransitions.Check("budget reallocation", re.Status, budget.ReallocationApproved); err != nil {
			return err
		}

		from, to, err := lockPair(ctx, r.Budgets, re.FromBudgetItemID, re.ToBudgetItemID)
		if err != nil {
			return err
		}
		if u.opts.RecheckOnApproval && re.Amount.GreaterThan(from.RemainingAmount) {
			return fmt.Errorf("%w: reallocation %d needs %s, item %d has %s", errs.ErrInsufficientFunds,
				re.ID, re.Amount.StringFixed(2), from.ID, from.RemainingAmount.StringFixed(2))
		}

		from.Allocate(re.Amount.Neg())
		to.Allocate(re.Amount)
		if err := r.Budgets.UpdateItemAmounts(ctx, from); err != nil {
			return err
		}
		if err := r.Budgets.UpdateItemAmounts(ctx, to); err != nil {
			return err
		}

		at := u.now()
		re.Status = budget.ReallocationApproved
		re.ApprovedBy, re.ApprovedAt = &actor, &at
		if err := r.Budgets.SaveReallocation(ctx, re); err != nil {
			return err
		}

		b, err := r.Budgets.GetByID(ctx, re.BudgetID)
		if err != nil {
			return err
		}
		projectID = b.ProjectID
		out = re
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.invalidate(ctx, out.BudgetID, projectID)
	notification.Send(ctx, u.notify, notification.New(
		notification.EventReallocationApproved,
		notification.Recipients{UserIDs: []uint64{out.RequestedBy}},
		map[string]any{"reallocation_id": out.ID, "budget_id": out.BudgetID, "amount": out.Amount.StringFixed(2), "approved_by": actor},
	))
	return out, nil
}

// lockPair locks two budget lines in id order and returns them as (a, b).
func lockPair(ctx context.Context, repo budget.Repository, a, b uint64) (*budget.Item, *budget.Item, error) {
	first, second := a, b
	if second < first {
		first, second = second, first
	}
	x, err := repo.GetItemForUpdate(ctx, first)
	if err != nil {
		return nil, nil, err
	}
	y, err := repo.GetItemForUpdate(ctx, second)
	if err != nil {
		return nil, nil, err
	}
	if x.ID == a {
		return x, y, nil
	}
	return y, x, nil
}

// Spend adds amount to a budget line inside the caller's transaction and
// returns the updated line together with its budget's project id.
func Spend(ctx context.Context, r uow.Repos, itemID uint64, amount decimal.Decimal) (*budget.Item, uint64, error) {
	if !amount.IsPositive() {
		return nil, 0, errs.Validation("spend amount must be positive")
	}
	it, err := r.Budgets.GetItemForUpdate(ctx, itemID)
	if err != nil {
		return nil, 0, err
	}
	it.Spend(amount)
	if err := r.Budgets.UpdateItemAmounts(ctx, it); err != nil {
		return nil, 0, err
	}
	b, err := r.Budgets.GetByID(ctx, it.BudgetID)
	if err != nil {
		return nil, 0, err
	}
	return it, b.ProjectID, nil
}

// RecordSpend books a direct spend against a budget line.
func (u *Usecase) RecordSpend(ctx context.Context, itemID uint64, amount decimal.Decimal, actor uint64) (*budget.Item, error) {
	var (
		out       *budget.Item
		projectID uint64
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		it, pid, err := Spend(ctx, r, itemID, amount)
		if err != nil {
			return err
		}
		out, projectID = it, pid
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Uint64("budget_item_id", itemID).Str("amount", amount.StringFixed(2)).
		Uint64("actor", actor).Msg("spend recorded")
	u.AfterSpend(ctx, out.BudgetID, projectID)
	return out, nil
}

// AfterSpend drops cached summaries and evaluates alert thresholds. It runs
// after commit; failures are logged only.
func (u *Usecase) AfterSpend(ctx context.Context, budgetID, projectID uint64) {
	u.invalidate(ctx, budgetID, projectID)
	if u.alerts == nil {
		return
	}
	if _, err := u.alerts.CheckBudgetThresholds(ctx, budgetID); err != nil {
		log.Warn().Err(err).Uint64("budget_id", budgetID).Msg("threshold check failed")
	}
}

// Summary returns the budget read model, served from cache when present.
func (u *Usecase) Summary(ctx context.Context, id uint64) (*budget.Summary, error) {
	key := BudgetSummaryKey(id)
	if u.cache != nil {
		var cached budget.Summary
		ok, err := u.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("summary cache read failed")
		} else if ok {
			return &cached, nil
		}
	}

	b, err := u.budgets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s := budget.Summarize(b)
	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, s, u.opts.SummaryTTL); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("summary cache write failed")
		}
	}
	return &s, nil
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*budget.Budget, error) {
	return u.budgets.GetByID(ctx, id)
}

func (u *Usecase) invalidate(ctx context.Context, budgetID, projectID uint64) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Delete(ctx, BudgetSummaryKey(budgetID), ProjectSummaryKey(projectID)); err != nil {
		log.Warn().Err(err).Uint64("budget_id", budgetID).Msg("summary cache invalidation failed")
	}
}
