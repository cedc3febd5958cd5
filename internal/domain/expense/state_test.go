package expense

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ngo-finance-backend/internal/domain/errs"
)

var now = time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)

func TestTransitions_Exhaustive(t *testing.T) {
	all := []Status{StatusDraft, StatusSubmitted, StatusUnderReview, StatusApproved, StatusRejected, StatusPaid}
	legal := map[[2]Status]bool{
		{StatusDraft, StatusSubmitted}:       true,
		{StatusRejected, StatusSubmitted}:    true,
		{StatusSubmitted, StatusUnderReview}: true,
		{StatusSubmitted, StatusRejected}:    true,
		{StatusUnderReview, StatusApproved}:  true,
		{StatusUnderReview, StatusRejected}:  true,
		{StatusApproved, StatusPaid}:         true,
	}
	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, legal[[2]Status{from, to}], Transitions.Allows(from, to), "%s -> %s", from, to)
		}
	}
}

func TestFullChain(t *testing.T) {
	e := &Expense{ExpenseNumber: "EXP-2025-0001", Status: StatusDraft}
	require.True(t, e.CanBeEdited())
	require.NoError(t, e.Submit(1, now))
	assert.False(t, e.CanBeEdited())
	require.NoError(t, e.Review(2, now))
	require.NoError(t, e.Approve(3, now))
	require.NoError(t, e.MarkPaid(2, Payment{Reference: "CHQ-1", Method: "cheque"}, now))

	assert.Equal(t, StatusPaid, e.Status)
	assert.Equal(t, uint64(1), *e.SubmittedBy)
	assert.Equal(t, uint64(2), *e.ReviewedBy)
	assert.Equal(t, uint64(3), *e.ApprovedBy)
	assert.Equal(t, "CHQ-1", e.PaymentReference)

	// Paid is terminal
	for _, err := range []error{e.Submit(1, now), e.Review(2, now), e.Approve(3, now), e.MarkPaid(2, Payment{}, now)} {
		assert.True(t, errors.Is(err, errs.ErrIllegalTransition))
	}
	_, err := e.Reject(2, "late", now)
	assert.True(t, errors.Is(err, errs.ErrIllegalTransition))
}

func TestReject_LevelDependsOnStage(t *testing.T) {
	e := &Expense{Status: StatusSubmitted}
	level, err := e.Reject(2, "missing receipt", now)
	require.NoError(t, err)
	assert.Equal(t, LevelFinanceOfficer, level)

	require.NoError(t, e.Submit(1, now))
	assert.Empty(t, e.RejectionReason, "resubmission clears the previous rejection")
	assert.Nil(t, e.RejectedBy)
	require.NoError(t, e.Review(2, now))

	level, err = e.Reject(3, "over budget", now)
	require.NoError(t, err)
	assert.Equal(t, LevelProgramsManager, level)
	assert.True(t, e.CanBeSubmitted())
	assert.True(t, e.CanBeEdited())
}

func TestReject_RequiresReason(t *testing.T) {
	e := &Expense{Status: StatusSubmitted}
	_, err := e.Reject(2, "", now)
	assert.True(t, errors.Is(err, errs.ErrValidation))
	assert.Equal(t, StatusSubmitted, e.Status)
}

func TestIllegalShortcuts(t *testing.T) {
	e := &Expense{Status: StatusDraft}
	assert.True(t, errors.Is(e.Approve(3, now), errs.ErrIllegalTransition))
	assert.True(t, errors.Is(e.Review(2, now), errs.ErrIllegalTransition))
	assert.True(t, errors.Is(e.MarkPaid(2, Payment{}, now), errs.ErrIllegalTransition))
	assert.Equal(t, StatusDraft, e.Status)
}

func TestEnsureEditable(t *testing.T) {
	for _, s := range []Status{StatusDraft, StatusRejected} {
		assert.NoError(t, (&Expense{Status: s}).EnsureEditable("delete"))
	}
	for _, s := range []Status{StatusSubmitted, StatusUnderReview, StatusApproved, StatusPaid} {
		err := (&Expense{Status: s}).EnsureEditable("delete")
		assert.True(t, errors.Is(err, errs.ErrIllegalTransition), "status %s", s)
	}
}
