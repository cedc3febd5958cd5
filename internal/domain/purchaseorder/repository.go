package purchaseorder

import "context"

type Repository interface {
	// Create inserts the order together with its items.
	Create(ctx context.Context, po *PurchaseOrder) error
	// GetByID loads the order with its items.
	GetByID(ctx context.Context, id uint64) (*PurchaseOrder, error)
	GetByIDForUpdate(ctx context.Context, id uint64) (*PurchaseOrder, error)
	// Save persists the order header only.
	Save(ctx context.Context, po *PurchaseOrder) error
	SaveItem(ctx context.Context, it *Item) error

	CreateVendor(ctx context.Context, v *Vendor) error
	GetVendor(ctx context.Context, id uint64) (*Vendor, error)
}
