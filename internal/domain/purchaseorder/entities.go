package purchaseorder

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusDraft             Status = "Draft"
	StatusPending           Status = "Pending"
	StatusApproved          Status = "Approved"
	StatusRejected          Status = "Rejected"
	StatusPartiallyReceived Status = "Partially Received"
	StatusReceived          Status = "Received"
	StatusCompleted         Status = "Completed"
	StatusCancelled         Status = "Cancelled"
)

type PurchaseOrder struct {
	ID                   uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PONumber             string          `gorm:"column:po_number;size:32;not null;uniqueIndex" json:"po_number"`
	ProjectID            uint64          `gorm:"column:project_id;not null;index" json:"project_id"`
	VendorID             uint64          `gorm:"column:vendor_id;not null;index" json:"vendor_id"`
	BudgetItemID         *uint64         `gorm:"column:budget_item_id" json:"budget_item_id,omitempty"`
	OrderDate            time.Time       `gorm:"column:order_date;not null" json:"order_date"`
	ExpectedDeliveryDate *time.Time      `gorm:"column:expected_delivery_date" json:"expected_delivery_date,omitempty"`
	Subtotal             decimal.Decimal `gorm:"column:subtotal;type:decimal(18,2);not null" json:"subtotal"`
	TaxAmount            decimal.Decimal `gorm:"column:tax_amount;type:decimal(18,2);not null" json:"tax_amount"`
	TotalAmount          decimal.Decimal `gorm:"column:total_amount;type:decimal(18,2);not null" json:"total_amount"`
	Status               Status          `gorm:"column:status;size:24;not null;default:'Draft';index" json:"status"`
	Notes                string          `gorm:"column:notes;type:text" json:"notes,omitempty"`

	CreatedBy          uint64     `gorm:"column:created_by;not null" json:"created_by"`
	SubmittedAt        *time.Time `gorm:"column:submitted_at" json:"submitted_at,omitempty"`
	ApprovedBy         *uint64    `gorm:"column:approved_by" json:"approved_by,omitempty"`
	ApprovedAt         *time.Time `gorm:"column:approved_at" json:"approved_at,omitempty"`
	RejectedBy         *uint64    `gorm:"column:rejected_by" json:"rejected_by,omitempty"`
	RejectedAt         *time.Time `gorm:"column:rejected_at" json:"rejected_at,omitempty"`
	RejectionReason    string     `gorm:"column:rejection_reason;type:text" json:"rejection_reason,omitempty"`
	CancelledBy        *uint64    `gorm:"column:cancelled_by" json:"cancelled_by,omitempty"`
	CancelledAt        *time.Time `gorm:"column:cancelled_at" json:"cancelled_at,omitempty"`
	CancellationReason string     `gorm:"column:cancellation_reason;type:text" json:"cancellation_reason,omitempty"`
	ReceivedAt         *time.Time `gorm:"column:received_at" json:"received_at,omitempty"`
	CompletedAt        *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Items []Item `gorm:"foreignKey:PurchaseOrderID" json:"items,omitempty"`
}

func (PurchaseOrder) TableName() string { return "purchase_orders" }

type Item struct {
	ID               uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PurchaseOrderID  uint64          `gorm:"column:purchase_order_id;not null;index" json:"purchase_order_id"`
	Description      string          `gorm:"column:description;size:255;not null" json:"description"`
	Quantity         decimal.Decimal `gorm:"column:quantity;type:decimal(18,2);not null" json:"quantity"`
	QuantityReceived decimal.Decimal `gorm:"column:quantity_received;type:decimal(18,2);not null;default:0" json:"quantity_received"`
	UnitPrice        decimal.Decimal `gorm:"column:unit_price;type:decimal(18,2);not null" json:"unit_price"`
	TotalPrice       decimal.Decimal `gorm:"column:total_price;type:decimal(18,2);not null" json:"total_price"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Item) TableName() string { return "purchase_order_items" }

func (it *Item) IsFullyReceived() bool {
	return it.QuantityReceived.GreaterThanOrEqual(it.Quantity)
}

func (it *Item) Outstanding() decimal.Decimal {
	return it.Quantity.Sub(it.QuantityReceived)
}

type Vendor struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	VendorNumber string    `gorm:"column:vendor_number;size:32;not null;uniqueIndex" json:"vendor_number"`
	Name         string    `gorm:"column:name;size:255;not null" json:"name"`
	Email        string    `gorm:"column:email;size:255" json:"email,omitempty"`
	Phone        string    `gorm:"column:phone;size:64" json:"phone,omitempty"`
	IsActive     bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Vendor) TableName() string { return "vendors" }
