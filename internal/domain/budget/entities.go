package budget

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"ngo-finance-backend/internal/domain/fsm"
)

type Status string

const (
	StatusDraft    Status = "draft"
	StatusApproved Status = "approved"
)

// Transitions is the only place budget status changes are declared.
var Transitions = fsm.Table[Status]{
	StatusDraft: {StatusApproved},
}

type ReallocationStatus string

const (
	ReallocationPending  ReallocationStatus = "pending"
	ReallocationApproved ReallocationStatus = "approved"
)

var ReallocationTransitions = fsm.Table[ReallocationStatus]{
	ReallocationPending: {ReallocationApproved},
}

type Budget struct {
	ID          uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ProjectID   uint64          `gorm:"column:project_id;not null;index" json:"project_id"`
	FiscalYear  int             `gorm:"column:fiscal_year;not null" json:"fiscal_year"`
	TotalAmount decimal.Decimal `gorm:"column:total_amount;type:decimal(18,2);not null;default:0" json:"total_amount"`
	Status      Status          `gorm:"column:status;size:16;not null;default:'draft'" json:"status"`
	Notes       string          `gorm:"column:notes;type:text" json:"notes,omitempty"`
	ApprovedBy  *uint64         `gorm:"column:approved_by" json:"approved_by,omitempty"`
	ApprovedAt  *time.Time      `gorm:"column:approved_at" json:"approved_at,omitempty"`
	CreatedBy   uint64          `gorm:"column:created_by;not null" json:"created_by"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"column:deleted_at;index" json:"-"`

	Items []Item `gorm:"foreignKey:BudgetID" json:"items,omitempty"`
}

func (Budget) TableName() string { return "budgets" }

// Item is a budget line. RemainingAmount is derived; change the operands
// through Allocate/Spend only.
type Item struct {
	ID              uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	BudgetID        uint64          `gorm:"column:budget_id;not null;index" json:"budget_id"`
	Category        string          `gorm:"column:category;size:128;not null" json:"category"`
	Description     string          `gorm:"column:description;type:text" json:"description,omitempty"`
	AllocatedAmount decimal.Decimal `gorm:"column:allocated_amount;type:decimal(18,2);not null" json:"allocated_amount"`
	SpentAmount     decimal.Decimal `gorm:"column:spent_amount;type:decimal(18,2);not null;default:0" json:"spent_amount"`
	RemainingAmount decimal.Decimal `gorm:"column:remaining_amount;type:decimal(18,2);not null" json:"remaining_amount"`
	Version         int64           `gorm:"column:version;not null;default:0" json:"-"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Item) TableName() string { return "budget_items" }

type Reallocation struct {
	ID               uint64             `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	BudgetID         uint64             `gorm:"column:budget_id;not null;index" json:"budget_id"`
	FromBudgetItemID uint64             `gorm:"column:from_budget_item_id;not null" json:"from_budget_item_id"`
	ToBudgetItemID   uint64             `gorm:"column:to_budget_item_id;not null" json:"to_budget_item_id"`
	Amount           decimal.Decimal    `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	Justification    string             `gorm:"column:justification;type:text" json:"justification"`
	Status           ReallocationStatus `gorm:"column:status;size:16;not null;default:'pending'" json:"status"`
	RequestedBy      uint64             `gorm:"column:requested_by;not null" json:"requested_by"`
	ApprovedBy       *uint64            `gorm:"column:approved_by" json:"approved_by,omitempty"`
	ApprovedAt       *time.Time         `gorm:"column:approved_at" json:"approved_at,omitempty"`
	CreatedAt        time.Time          `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time          `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Reallocation) TableName() string { return "budget_reallocations" }
