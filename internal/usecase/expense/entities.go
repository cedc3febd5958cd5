package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateInput struct {
	ProjectID       uint64          `json:"project_id" validate:"required"`
	BudgetItemID    *uint64         `json:"budget_item_id"`
	PurchaseOrderID *uint64         `json:"purchase_order_id"`
	Category        string          `json:"category" validate:"max=128"`
	Description     string          `json:"description" validate:"required"`
	Amount          decimal.Decimal `json:"amount" validate:"dgt=0"`
	ExpenseDate     time.Time       `json:"expense_date"`
}

// UpdateInput replaces the editable fields of a Draft or Rejected expense.
type UpdateInput struct {
	BudgetItemID    *uint64         `json:"budget_item_id"`
	PurchaseOrderID *uint64         `json:"purchase_order_id"`
	Category        string          `json:"category" validate:"max=128"`
	Description     string          `json:"description" validate:"required"`
	Amount          decimal.Decimal `json:"amount" validate:"dgt=0"`
	ExpenseDate     time.Time       `json:"expense_date"`
}

type ReviewInput struct {
	Approve  bool   `json:"approve"`
	Comments string `json:"comments"`
}

type PaymentInput struct {
	PaymentReference string  `json:"payment_reference" validate:"required,max=128"`
	PaymentMethod    string  `json:"payment_method" validate:"max=64"`
	PaymentNotes     string  `json:"payment_notes"`
	BankAccountID    *uint64 `json:"bank_account_id"`
}
