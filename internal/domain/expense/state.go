package expense

import (
	"fmt"
	"time"

	"ngo-finance-backend/internal/domain/errs"
	"ngo-finance-backend/internal/domain/fsm"
)

// Transitions is the approval chain. A rejected expense goes back to
// Submitted on resubmission; Paid is terminal.
var Transitions = fsm.Table[Status]{
	StatusDraft:       {StatusSubmitted},
	StatusRejected:    {StatusSubmitted},
	StatusSubmitted:   {StatusUnderReview, StatusRejected},
	StatusUnderReview: {StatusApproved, StatusRejected},
	StatusApproved:    {StatusPaid},
}

const entity = "expense"

func (e *Expense) CanBeEdited() bool {
	return e.Status == StatusDraft || e.Status == StatusRejected
}

func (e *Expense) CanBeSubmitted() bool {
	return Transitions.Allows(e.Status, StatusSubmitted)
}

func (e *Expense) CanBeDeleted() bool { return e.CanBeEdited() }

// Submit moves a Draft or Rejected expense into the approval chain and
// clears the outcome of any earlier cycle.
func (e *Expense) Submit(actor uint64, at time.Time) error {
	if err := Transitions.Check(entity, e.Status, StatusSubmitted); err != nil {
		return err
	}
	e.Status = StatusSubmitted
	e.SubmittedBy, e.SubmittedAt = &actor, &at
	e.ReviewedBy, e.ReviewedAt = nil, nil
	e.RejectedBy, e.RejectedAt = nil, nil
	e.RejectionReason = ""
	return nil
}

// Review is the Finance Officer step.
func (e *Expense) Review(actor uint64, at time.Time) error {
	if err := Transitions.Check(entity, e.Status, StatusUnderReview); err != nil {
		return err
	}
	e.Status = StatusUnderReview
	e.ReviewedBy, e.ReviewedAt = &actor, &at
	return nil
}

// Approve is the Programs Manager step.
func (e *Expense) Approve(actor uint64, at time.Time) error {
	if err := Transitions.Check(entity, e.Status, StatusApproved); err != nil {
		return err
	}
	e.Status = StatusApproved
	e.ApprovedBy, e.ApprovedAt = &actor, &at
	return nil
}

// Reject works from Submitted (Finance Officer) and Under Review (Programs
// Manager) and returns the level that rejected.
func (e *Expense) Reject(actor uint64, reason string, at time.Time) (Level, error) {
	if reason == "" {
		return "", errs.Validation("rejection reason is required")
	}
	level := LevelFinanceOfficer
	if e.Status == StatusUnderReview {
		level = LevelProgramsManager
	}
	if err := Transitions.Check(entity, e.Status, StatusRejected); err != nil {
		return "", err
	}
	e.Status = StatusRejected
	e.RejectedBy, e.RejectedAt = &actor, &at
	e.RejectionReason = reason
	return level, nil
}

type Payment struct {
	Reference string
	Method    string
	Notes     string
}

func (e *Expense) MarkPaid(actor uint64, p Payment, at time.Time) error {
	if err := Transitions.Check(entity, e.Status, StatusPaid); err != nil {
		return err
	}
	e.Status = StatusPaid
	e.PaidBy, e.PaidAt = &actor, &at
	e.PaymentReference = p.Reference
	e.PaymentMethod = p.Method
	e.PaymentNotes = p.Notes
	return nil
}

// EnsureEditable guards field edits and deletion.
func (e *Expense) EnsureEditable(op string) error {
	if e.CanBeEdited() {
		return nil
	}
	return fmt.Errorf("%w: cannot %s expense %s in status %q", errs.ErrIllegalTransition, op, e.ExpenseNumber, e.Status)
}

// NewApproval builds the audit row for a review/approve/reject call.
func NewApproval(e *Expense, level Level, action Action, actor uint64, comments string, at time.Time) *Approval {
	return &Approval{
		ExpenseID:     e.ID,
		ApprovalLevel: level,
		Action:        action,
		UserID:        actor,
		Comments:      comments,
		ActionDate:    at,
	}
}
