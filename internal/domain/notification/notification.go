// Package notification defines what a committed transition tells the
// outside world. Delivery is an adapter concern.
package notification

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"ngo-finance-backend/pkg/id"
)

// Role names a group of recipients resolved by the delivery side.
type Role string

const (
	RoleFinanceOfficer  Role = "Finance Officer"
	RoleProgramsManager Role = "Programs Manager"
)

type Event string

const (
	EventExpenseSubmitted      Event = "expense.submitted"
	EventExpenseReviewed       Event = "expense.reviewed"
	EventExpenseApproved       Event = "expense.approved"
	EventExpenseRejected       Event = "expense.rejected"
	EventExpensePaid           Event = "expense.paid"
	EventBudgetApproved        Event = "budget.approved"
	EventBudgetThreshold       Event = "budget.threshold_reached"
	EventReallocationRequested Event = "budget.reallocation_requested"
	EventReallocationApproved  Event = "budget.reallocation_approved"
	EventPurchaseOrderPending  Event = "purchase_order.pending"
	EventPurchaseOrderDecided  Event = "purchase_order.decided"
)

type Recipients struct {
	Roles   []Role   `json:"roles,omitempty"`
	UserIDs []uint64 `json:"user_ids,omitempty"`
}

type Notification struct {
	ID         string         `json:"id"`
	Event      Event          `json:"event"`
	Recipients Recipients     `json:"recipients"`
	Payload    map[string]any `json:"payload"`
	CreatedAt  time.Time      `json:"created_at"`
}

// New stamps an id and creation time on a notification.
func New(ev Event, to Recipients, payload map[string]any) Notification {
	return Notification{
		ID:         id.NewID32(),
		Event:      ev,
		Recipients: to,
		Payload:    payload,
		CreatedAt:  time.Now().UTC(),
	}
}

type Dispatcher interface {
	Dispatch(ctx context.Context, n Notification) error
}

// Send hands every notification to d. Failures are logged and dropped: a
// committed transition is never undone because delivery failed.
func Send(ctx context.Context, d Dispatcher, ns ...Notification) {
	if d == nil {
		return
	}
	for _, n := range ns {
		if err := d.Dispatch(ctx, n); err != nil {
			log.Warn().Err(err).Str("event", string(n.Event)).Str("notification_id", n.ID).
				Msg("notification dispatch failed")
		}
	}
}
