package budget

import "context"

type Repository interface {
	Create(ctx context.Context, b *Budget) error
	CreateItems(ctx context.Context, items []Item) error
	// GetByID loads the budget with its items.
	GetByID(ctx context.Context, id uint64) (*Budget, error)
	GetByIDForUpdate(ctx context.Context, id uint64) (*Budget, error)
	Save(ctx context.Context, b *Budget) error
	Delete(ctx context.Context, b *Budget) error

	GetItem(ctx context.Context, id uint64) (*Item, error)
	GetItemForUpdate(ctx context.Context, id uint64) (*Item, error)
	// UpdateItemAmounts writes the amount columns if the stored version still
	// matches it.Version, then bumps it.Version. A stale version yields
	// errs.ErrConcurrentModification.
	UpdateItemAmounts(ctx context.Context, it *Item) error

	CreateReallocation(ctx context.Context, r *Reallocation) error
	GetReallocationForUpdate(ctx context.Context, id uint64) (*Reallocation, error)
	SaveReallocation(ctx context.Context, r *Reallocation) error
}
