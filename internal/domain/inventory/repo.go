package inventory

import "context"

type ItemRepository interface {
	Create(ctx context.Context, i *Item) error
	GetByID(ctx context.Context, id int64) (*Item, error)
	Update(ctx context.Context, i *Item) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, category string, limit, offset int) ([]*Item, int, error)
	// ListLowStock returns items at or below their reorder threshold.
	ListLowStock(ctx context.Context) ([]*Item, error)
	// AdjustQuantity applies a signed delta and returns the new level.
	// The level never goes below zero.
	AdjustQuantity(ctx context.Context, id int64, delta int64) (int64, error)
}
