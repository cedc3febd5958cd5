package purchaseorder

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ngo-finance-backend/internal/domain/errs"
)

var now = time.Date(2025, 5, 2, 10, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func approvedOrder(t *testing.T, qty ...string) *PurchaseOrder {
	t.Helper()
	po := &PurchaseOrder{PONumber: "PO-2025-0001", Status: StatusDraft}
	for i, q := range qty {
		it, err := NewItem(LineInput{Description: "line", Quantity: d(q), UnitPrice: d("10")})
		require.NoError(t, err)
		it.ID = uint64(i + 1)
		po.Items = append(po.Items, it)
	}
	require.NoError(t, po.Submit(now))
	require.NoError(t, po.Approve(9, now))
	return po
}

func TestTotals(t *testing.T) {
	po := &PurchaseOrder{}
	for _, in := range []LineInput{
		{Description: "tents", Quantity: d("3"), UnitPrice: d("33.33")},
		{Description: "water", Quantity: d("2.5"), UnitPrice: d("4")},
	} {
		it, err := NewItem(in)
		require.NoError(t, err)
		po.Items = append(po.Items, it)
	}
	po.Totals()
	assert.Equal(t, "109.99", po.Subtotal.StringFixed(2))
	assert.Equal(t, "16.50", po.TaxAmount.StringFixed(2))
	assert.Equal(t, "126.49", po.TotalAmount.StringFixed(2))
}

func TestNewItem_Validation(t *testing.T) {
	cases := []LineInput{
		{Description: "", Quantity: d("1"), UnitPrice: d("1")},
		{Description: "x", Quantity: d("0"), UnitPrice: d("1")},
		{Description: "x", Quantity: d("1"), UnitPrice: d("-1")},
	}
	for _, in := range cases {
		_, err := NewItem(in)
		assert.True(t, errors.Is(err, errs.ErrValidation), "%+v", in)
	}
}

func TestSubmit_NeedsItems(t *testing.T) {
	po := &PurchaseOrder{Status: StatusDraft}
	assert.True(t, errors.Is(po.Submit(now), errs.ErrValidation))
	assert.Equal(t, StatusDraft, po.Status)
}

func TestReceive_PartialThenFull(t *testing.T) {
	po := approvedOrder(t, "5", "3")

	changed, err := po.Receive([]Receipt{{ItemID: 1, Quantity: d("5")}, {ItemID: 2, Quantity: d("2")}}, now)
	require.NoError(t, err)
	assert.Len(t, changed, 2)
	assert.Equal(t, StatusPartiallyReceived, po.Status)
	assert.Nil(t, po.ReceivedAt)

	_, err = po.Receive([]Receipt{{ItemID: 2, Quantity: d("1")}}, now)
	require.NoError(t, err)
	assert.Equal(t, StatusReceived, po.Status)
	assert.NotNil(t, po.ReceivedAt)

	require.NoError(t, po.Complete(now))
	assert.Equal(t, StatusCompleted, po.Status)
}

func TestReceive_OverReceiptIsAllOrNothing(t *testing.T) {
	po := approvedOrder(t, "5", "3")
	_, err := po.Receive([]Receipt{{ItemID: 1, Quantity: d("2")}, {ItemID: 2, Quantity: d("4")}}, now)
	assert.True(t, errors.Is(err, errs.ErrValidation))
	assert.True(t, po.Items[0].QuantityReceived.IsZero())
	assert.Equal(t, StatusApproved, po.Status)

	// duplicates for one line accumulate before the bound check
	_, err = po.Receive([]Receipt{{ItemID: 2, Quantity: d("2")}, {ItemID: 2, Quantity: d("2")}}, now)
	assert.True(t, errors.Is(err, errs.ErrValidation))
}

func TestReceive_UnknownItemAndWrongState(t *testing.T) {
	po := approvedOrder(t, "1")
	_, err := po.Receive([]Receipt{{ItemID: 42, Quantity: d("1")}}, now)
	assert.True(t, errors.Is(err, errs.ErrNotFound))

	draft := &PurchaseOrder{Status: StatusDraft}
	_, err = draft.Receive([]Receipt{{ItemID: 1, Quantity: d("1")}}, now)
	assert.True(t, errors.Is(err, errs.ErrIllegalTransition))
}

func TestCancelAndReject(t *testing.T) {
	po := &PurchaseOrder{Status: StatusPending}
	assert.True(t, errors.Is(po.Reject(1, "", now), errs.ErrValidation))
	require.NoError(t, po.Reject(1, "vendor not registered", now))
	require.NoError(t, po.Cancel(1, "superseded", now))
	assert.Equal(t, StatusCancelled, po.Status)

	for _, s := range []Status{StatusApproved, StatusPartiallyReceived, StatusReceived, StatusCompleted, StatusCancelled} {
		p := &PurchaseOrder{Status: s}
		assert.True(t, errors.Is(p.Cancel(1, "why", now), errs.ErrIllegalTransition), "cancel from %s", s)
	}
}

func TestComplete_OnlyFromReceived(t *testing.T) {
	for _, s := range []Status{StatusDraft, StatusPending, StatusApproved, StatusPartiallyReceived} {
		p := &PurchaseOrder{Status: s}
		assert.True(t, errors.Is(p.Complete(now), errs.ErrIllegalTransition), "complete from %s", s)
	}
}
