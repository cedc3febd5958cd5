package expense

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Status string

const (
	StatusDraft       Status = "Draft"
	StatusSubmitted   Status = "Submitted"
	StatusUnderReview Status = "Under Review"
	StatusApproved    Status = "Approved"
	StatusRejected    Status = "Rejected"
	StatusPaid        Status = "Paid"
)

type Expense struct {
	ID              uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ExpenseNumber   string          `gorm:"column:expense_number;size:32;not null;uniqueIndex" json:"expense_number"`
	ProjectID       uint64          `gorm:"column:project_id;not null;index" json:"project_id"`
	BudgetItemID    *uint64         `gorm:"column:budget_item_id;index" json:"budget_item_id,omitempty"`
	PurchaseOrderID *uint64         `gorm:"column:purchase_order_id;index" json:"purchase_order_id,omitempty"`
	Category        string          `gorm:"column:category;size:128" json:"category,omitempty"`
	Description     string          `gorm:"column:description;type:text" json:"description"`
	Amount          decimal.Decimal `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	ExpenseDate     time.Time       `gorm:"column:expense_date;not null" json:"expense_date"`
	Status          Status          `gorm:"column:status;size:16;not null;default:'Draft';index" json:"status"`

	SubmittedBy     *uint64    `gorm:"column:submitted_by" json:"submitted_by,omitempty"`
	SubmittedAt     *time.Time `gorm:"column:submitted_at" json:"submitted_at,omitempty"`
	ReviewedBy      *uint64    `gorm:"column:reviewed_by" json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
	ApprovedBy      *uint64    `gorm:"column:approved_by" json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `gorm:"column:approved_at" json:"approved_at,omitempty"`
	RejectedBy      *uint64    `gorm:"column:rejected_by" json:"rejected_by,omitempty"`
	RejectedAt      *time.Time `gorm:"column:rejected_at" json:"rejected_at,omitempty"`
	RejectionReason string     `gorm:"column:rejection_reason;type:text" json:"rejection_reason,omitempty"`

	PaidBy           *uint64    `gorm:"column:paid_by" json:"paid_by,omitempty"`
	PaidAt           *time.Time `gorm:"column:paid_at" json:"paid_at,omitempty"`
	PaymentReference string     `gorm:"column:payment_reference;size:128" json:"payment_reference,omitempty"`
	PaymentMethod    string     `gorm:"column:payment_method;size:64" json:"payment_method,omitempty"`
	PaymentNotes     string     `gorm:"column:payment_notes;type:text" json:"payment_notes,omitempty"`

	CreatedBy uint64         `gorm:"column:created_by;not null" json:"created_by"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Expense) TableName() string { return "expenses" }

type Level string

const (
	LevelFinanceOfficer  Level = "Finance Officer"
	LevelProgramsManager Level = "Programs Manager"
)

type Action string

const (
	ActionApproved Action = "Approved"
	ActionRejected Action = "Rejected"
)

// Approval is an append-only audit row, one per review/approve/reject call.
type Approval struct {
	ID            uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ExpenseID     uint64    `gorm:"column:expense_id;not null;index" json:"expense_id"`
	ApprovalLevel Level     `gorm:"column:approval_level;size:32;not null" json:"approval_level"`
	Action        Action    `gorm:"column:action;size:16;not null" json:"action"`
	UserID        uint64    `gorm:"column:user_id;not null" json:"user_id"`
	Comments      string    `gorm:"column:comments;type:text" json:"comments,omitempty"`
	ActionDate    time.Time `gorm:"column:action_date;not null" json:"action_date"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Approval) TableName() string { return "expense_approvals" }
