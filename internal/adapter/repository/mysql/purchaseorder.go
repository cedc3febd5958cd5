package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	poDomain "ngo-finance-backend/internal/domain/purchaseorder"
)

type PurchaseOrderRepository struct{ db *gorm.DB }

func NewPurchaseOrderRepository(db *gorm.DB) *PurchaseOrderRepository {
	return &PurchaseOrderRepository{db: db}
}

// Create inserts the header and, through the association, every item.
func (r *PurchaseOrderRepository) Create(ctx context.Context, po *poDomain.PurchaseOrder) error {
	return r.db.WithContext(ctx).Create(po).Error
}

func (r *PurchaseOrderRepository) GetByID(ctx context.Context, id uint64) (*poDomain.PurchaseOrder, error) {
	var out poDomain.PurchaseOrder
	if err := r.db.WithContext(ctx).Preload("Items", itemsByID).First(&out, id).Error; err != nil {
		return nil, notFound(err, "purchase order", id)
	}
	return &out, nil
}

func (r *PurchaseOrderRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*poDomain.PurchaseOrder, error) {
	var out poDomain.PurchaseOrder
	err := r.db.WithContext(ctx).
		Clauses(forUpdate).
		Preload("Items", itemsByID).
		First(&out, id).Error
	if err != nil {
		return nil, notFound(err, "purchase order", id)
	}
	return &out, nil
}

func (r *PurchaseOrderRepository) Save(ctx context.Context, po *poDomain.PurchaseOrder) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(po).Error
}

func (r *PurchaseOrderRepository) SaveItem(ctx context.Context, it *poDomain.Item) error {
	return r.db.WithContext(ctx).Save(it).Error
}

func (r *PurchaseOrderRepository) CreateVendor(ctx context.Context, v *poDomain.Vendor) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *PurchaseOrderRepository) GetVendor(ctx context.Context, id uint64) (*poDomain.Vendor, error) {
	var out poDomain.Vendor
	if err := r.db.WithContext(ctx).First(&out, id).Error; err != nil {
		return nil, notFound(err, "vendor", id)
	}
	return &out, nil
}
