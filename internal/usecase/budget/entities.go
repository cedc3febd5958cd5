package budget

import (
	"time"

	"github.com/shopspring/decimal"
)

type ItemInput struct {
	Category        string          `json:"category" validate:"required,max=128"`
	Description     string          `json:"description"`
	AllocatedAmount decimal.Decimal `json:"allocated_amount" validate:"dgte=0"`
}

type CreateBudgetInput struct {
	ProjectID  uint64      `json:"project_id" validate:"required"`
	FiscalYear int         `json:"fiscal_year" validate:"required,gte=2000,lte=2100"`
	Notes      string      `json:"notes"`
	Items      []ItemInput `json:"items" validate:"dive"`
}

type ReallocationInput struct {
	FromItemID    uint64          `json:"from_budget_item_id" validate:"required"`
	ToItemID      uint64          `json:"to_budget_item_id" validate:"required,nefield=FromItemID"`
	Amount        decimal.Decimal `json:"amount" validate:"dgt=0"`
	Justification string          `json:"justification" validate:"required"`
}

type SpendInput struct {
	Amount decimal.Decimal `json:"amount" validate:"dgt=0"`
}

// Options tune the reallocation rules and the read-model cache.
type Options struct {
	// RecheckOnApproval re-validates the source line's remaining amount when
	// a reallocation is approved. Off keeps the check at request time only.
	RecheckOnApproval bool
	SummaryTTL        time.Duration
}
