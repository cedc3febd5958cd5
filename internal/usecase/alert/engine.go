// Package alert raises budget utilization alerts, at most once per
// (budget, threshold) within the marker TTL.
package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"ngo-finance-backend/internal/domain/budget"
	"ngo-finance-backend/internal/domain/notification"
	"ngo-finance-backend/internal/domain/project"
)

// MarkerTTL is how long a fired threshold stays quiet.
const MarkerTTL = 7 * 24 * time.Hour

// MarkerStore reports whether this caller is the first to set key.
type MarkerStore interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

type Engine struct {
	budgets  budget.Repository
	projects project.Repository
	markers  MarkerStore
	notify   notification.Dispatcher
}

func NewEngine(b budget.Repository, p project.Repository, m MarkerStore, d notification.Dispatcher) *Engine {
	return &Engine{budgets: b, projects: p, markers: m, notify: d}
}

func MarkerKey(budgetID uint64, threshold int64) string {
	return fmt.Sprintf("budget_alert:%d:%d", budgetID, threshold)
}

// CheckBudgetThresholds evaluates overall budget utilization and dispatches
// one alert per newly reached threshold. It returns the thresholds that fired.
func (e *Engine) CheckBudgetThresholds(ctx context.Context, budgetID uint64) ([]int64, error) {
	b, err := e.budgets.GetByID(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	pct := budget.Utilization(budget.SumSpent(b.Items), budget.SumAllocated(b.Items))

	var reached []int64
	for _, th := range budget.Thresholds {
		if pct.GreaterThanOrEqual(decimal.NewFromInt(th)) {
			reached = append(reached, th)
		}
	}
	if len(reached) == 0 {
		return nil, nil
	}

	// A claimed marker silences its threshold for MarkerTTL, so recipients
	// must resolve before any marker is taken.
	recipients, err := e.team(ctx, b.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("resolve alert recipients: %w", err)
	}

	var fired []int64
	for _, th := range reached {
		ok, err := e.markers.Acquire(ctx, MarkerKey(budgetID, th), MarkerTTL)
		if err != nil {
			return fired, fmt.Errorf("acquire alert marker: %w", err)
		}
		if !ok {
			continue
		}
		fired = append(fired, th)
		notification.Send(ctx, e.notify, notification.New(
			notification.EventBudgetThreshold,
			notification.Recipients{UserIDs: recipients},
			map[string]any{
				"budget_id":              b.ID,
				"project_id":             b.ProjectID,
				"threshold":              th,
				"utilization_percentage": pct.StringFixed(2),
				"alert_level":            string(budget.LevelFor(pct)),
			},
		))
	}
	if len(fired) > 0 {
		log.Info().Uint64("budget_id", budgetID).Ints64("thresholds", fired).
			Str("utilization", pct.StringFixed(2)).Msg("budget thresholds reached")
	}
	return fired, nil
}

func (e *Engine) team(ctx context.Context, projectID uint64) ([]uint64, error) {
	p, err := e.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	members, err := e.projects.MemberIDs(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return project.Team(p, members), nil
}
