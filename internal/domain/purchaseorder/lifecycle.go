package purchaseorder

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"ngo-finance-backend/internal/domain/errs"
	"ngo-finance-backend/internal/domain/fsm"
)

// TaxRate is applied to the subtotal of every order.
var TaxRate = decimal.RequireFromString("0.15")

var Transitions = fsm.Table[Status]{
	StatusDraft:             {StatusPending, StatusCancelled},
	StatusPending:           {StatusApproved, StatusRejected, StatusCancelled},
	StatusRejected:          {StatusCancelled},
	StatusApproved:          {StatusPartiallyReceived, StatusReceived},
	StatusPartiallyReceived: {StatusPartiallyReceived, StatusReceived},
	StatusReceived:          {StatusCompleted},
}

// Referenceable lists the statuses an expense may be raised against.
var Referenceable = map[Status]bool{
	StatusApproved:          true,
	StatusPartiallyReceived: true,
	StatusReceived:          true,
	StatusCompleted:         true,
}

const entity = "purchase order"

type LineInput struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// NewItem prices a line. Quantity and unit price must be positive.
func NewItem(in LineInput) (Item, error) {
	if in.Description == "" {
		return Item{}, errs.Validation("item description is required")
	}
	if !in.Quantity.IsPositive() {
		return Item{}, errs.Validation("item quantity must be positive")
	}
	if in.UnitPrice.IsNegative() {
		return Item{}, errs.Validation("item unit price must not be negative")
	}
	return Item{
		Description:      in.Description,
		Quantity:         in.Quantity,
		QuantityReceived: decimal.Zero,
		UnitPrice:        in.UnitPrice,
		TotalPrice:       in.Quantity.Mul(in.UnitPrice).Round(2),
	}, nil
}

// Totals sets subtotal, tax and total from the items.
func (po *PurchaseOrder) Totals() {
	sub := decimal.Zero
	for _, it := range po.Items {
		sub = sub.Add(it.TotalPrice)
	}
	po.Subtotal = sub
	po.TaxAmount = sub.Mul(TaxRate).Round(2)
	po.TotalAmount = sub.Add(po.TaxAmount)
}

func (po *PurchaseOrder) Submit(at time.Time) error {
	if err := Transitions.Check(entity, po.Status, StatusPending); err != nil {
		return err
	}
	if len(po.Items) == 0 {
		return errs.Validation("purchase order has no items")
	}
	po.Status = StatusPending
	po.SubmittedAt = &at
	return nil
}

func (po *PurchaseOrder) Approve(actor uint64, at time.Time) error {
	if err := Transitions.Check(entity, po.Status, StatusApproved); err != nil {
		return err
	}
	po.Status = StatusApproved
	po.ApprovedBy, po.ApprovedAt = &actor, &at
	return nil
}

func (po *PurchaseOrder) Reject(actor uint64, reason string, at time.Time) error {
	if reason == "" {
		return errs.Validation("rejection reason is required")
	}
	if err := Transitions.Check(entity, po.Status, StatusRejected); err != nil {
		return err
	}
	po.Status = StatusRejected
	po.RejectedBy, po.RejectedAt = &actor, &at
	po.RejectionReason = reason
	return nil
}

func (po *PurchaseOrder) Cancel(actor uint64, reason string, at time.Time) error {
	if reason == "" {
		return errs.Validation("cancellation reason is required")
	}
	if err := Transitions.Check(entity, po.Status, StatusCancelled); err != nil {
		return err
	}
	po.Status = StatusCancelled
	po.CancelledBy, po.CancelledAt = &actor, &at
	po.CancellationReason = reason
	return nil
}

func (po *PurchaseOrder) Complete(at time.Time) error {
	if err := Transitions.Check(entity, po.Status, StatusCompleted); err != nil {
		return err
	}
	po.Status = StatusCompleted
	po.CompletedAt = &at
	return nil
}

// Receipt is a delivered quantity for one line.
type Receipt struct {
	ItemID   uint64
	Quantity decimal.Decimal
}

// Receive applies every receipt or none of them, then moves the order to
// Received when all lines are complete and Partially Received otherwise.
// It returns the indexes of the items it changed.
func (po *PurchaseOrder) Receive(receipts []Receipt, at time.Time) ([]int, error) {
	if po.Status != StatusApproved && po.Status != StatusPartiallyReceived {
		return nil, &fsm.TransitionError{Entity: entity, From: string(po.Status), To: string(StatusReceived)}
	}
	if len(receipts) == 0 {
		return nil, errs.Validation("no received quantities given")
	}

	index := make(map[uint64]int, len(po.Items))
	for i := range po.Items {
		index[po.Items[i].ID] = i
	}
	next := make(map[int]decimal.Decimal, len(receipts))
	for _, r := range receipts {
		i, ok := index[r.ItemID]
		if !ok {
			return nil, fmt.Errorf("%w: item %d is not on %s", errs.ErrNotFound, r.ItemID, po.PONumber)
		}
		if !r.Quantity.IsPositive() {
			return nil, errs.Validation(fmt.Sprintf("received quantity for item %d must be positive", r.ItemID))
		}
		cur, seen := next[i]
		if !seen {
			cur = po.Items[i].QuantityReceived
		}
		cur = cur.Add(r.Quantity)
		if cur.GreaterThan(po.Items[i].Quantity) {
			return nil, errs.Validation(fmt.Sprintf("item %d: received %s exceeds ordered %s", r.ItemID, cur, po.Items[i].Quantity))
		}
		next[i] = cur
	}

	changed := make([]int, 0, len(next))
	for i := range po.Items {
		if q, ok := next[i]; ok {
			po.Items[i].QuantityReceived = q
			changed = append(changed, i)
		}
	}

	target := StatusReceived
	for i := range po.Items {
		if !po.Items[i].IsFullyReceived() {
			target = StatusPartiallyReceived
			break
		}
	}
	if err := Transitions.Check(entity, po.Status, target); err != nil {
		return nil, err
	}
	po.Status = target
	if target == StatusReceived {
		po.ReceivedAt = &at
	}
	return changed, nil
}
