package cashflow

import (
	"time"

	"github.com/shopspring/decimal"
)

type Type string

const (
	TypeInflow  Type = "inflow"
	TypeOutflow Type = "outflow"
)

func (t Type) Valid() bool { return t == TypeInflow || t == TypeOutflow }

// BankAccount.CurrentBalance moves only when a CashFlow row is posted.
type BankAccount struct {
	ID             uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AccountName    string          `gorm:"column:account_name;size:255;not null" json:"account_name"`
	AccountNumber  string          `gorm:"column:account_number;size:64;not null;uniqueIndex" json:"account_number"`
	BankName       string          `gorm:"column:bank_name;size:255" json:"bank_name"`
	Currency       string          `gorm:"column:currency;size:3;not null;default:'USD'" json:"currency"`
	CurrentBalance decimal.Decimal `gorm:"column:current_balance;type:decimal(18,2);not null;default:0" json:"current_balance"`
	IsActive       bool            `gorm:"column:is_active;not null;default:true" json:"is_active"`
	Version        int64           `gorm:"column:version;not null;default:0" json:"-"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (BankAccount) TableName() string { return "bank_accounts" }

// CashFlow is one posted movement. Amount and balance columns never change
// after insert; only the reconciliation columns do.
type CashFlow struct {
	ID                uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TransactionNumber string          `gorm:"column:transaction_number;size:32;not null;uniqueIndex" json:"transaction_number"`
	Type              Type            `gorm:"column:type;size:16;not null" json:"type"`
	BankAccountID     uint64          `gorm:"column:bank_account_id;not null;index" json:"bank_account_id"`
	ProjectID         *uint64         `gorm:"column:project_id;index" json:"project_id,omitempty"`
	ExpenseID         *uint64         `gorm:"column:expense_id;index" json:"expense_id,omitempty"`
	Category          string          `gorm:"column:category;size:128" json:"category,omitempty"`
	Description       string          `gorm:"column:description;type:text" json:"description,omitempty"`
	Amount            decimal.Decimal `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	BalanceBefore     decimal.Decimal `gorm:"column:balance_before;type:decimal(18,2);not null" json:"balance_before"`
	BalanceAfter      decimal.Decimal `gorm:"column:balance_after;type:decimal(18,2);not null" json:"balance_after"`
	TransactionDate   time.Time       `gorm:"column:transaction_date;not null;index" json:"transaction_date"`
	IsReconciled      bool            `gorm:"column:is_reconciled;not null;default:false" json:"is_reconciled"`
	ReconciledAt      *time.Time      `gorm:"column:reconciled_at" json:"reconciled_at,omitempty"`
	ReconciledBy      *uint64         `gorm:"column:reconciled_by" json:"reconciled_by,omitempty"`
	CreatedBy         uint64          `gorm:"column:created_by;not null" json:"created_by"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (CashFlow) TableName() string { return "cash_flows" }
