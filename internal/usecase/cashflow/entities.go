package cashflow

import (
	"time"

	"github.com/shopspring/decimal"
)

type OpenAccountInput struct {
	AccountName    string          `json:"account_name" validate:"required,max=255"`
	AccountNumber  string          `json:"account_number" validate:"required,max=64"`
	BankName       string          `json:"bank_name" validate:"max=255"`
	Currency       string          `json:"currency" validate:"omitempty,len=3"`
	OpeningBalance decimal.Decimal `json:"opening_balance" validate:"dgte=0"`
}

// MovementInput is shared by inflows and outflows.
type MovementInput struct {
	BankAccountID   uint64          `json:"bank_account_id" validate:"required"`
	Amount          decimal.Decimal `json:"amount" validate:"dgt=0"`
	ProjectID       *uint64         `json:"project_id"`
	Category        string          `json:"category" validate:"max=128"`
	Description     string          `json:"description"`
	TransactionDate time.Time       `json:"transaction_date"`
}
