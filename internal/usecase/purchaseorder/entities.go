package purchaseorder

import (
	"time"

	"github.com/shopspring/decimal"
)

type ItemInput struct {
	Description string          `json:"description" validate:"required,max=255"`
	Quantity    decimal.Decimal `json:"quantity" validate:"dgt=0"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"dgte=0"`
}

type CreateInput struct {
	ProjectID            uint64      `json:"project_id" validate:"required"`
	VendorID             uint64      `json:"vendor_id" validate:"required"`
	BudgetItemID         *uint64     `json:"budget_item_id"`
	OrderDate            time.Time   `json:"order_date"`
	ExpectedDeliveryDate *time.Time  `json:"expected_delivery_date"`
	Notes                string      `json:"notes"`
	Items                []ItemInput `json:"items" validate:"required,min=1,dive"`
	// Submit moves the new order straight to Pending.
	Submit bool `json:"submit"`
}

type ReceiptInput struct {
	ItemID   uint64          `json:"item_id" validate:"required"`
	Quantity decimal.Decimal `json:"quantity" validate:"dgt=0"`
}

type VendorInput struct {
	Name  string `json:"name" validate:"required,max=255"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"max=64"`
}
