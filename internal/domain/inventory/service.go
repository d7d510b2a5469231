package inventory

import (
	"context"
	"fmt"
	"strings"
)

type Service struct {
	items ItemRepository
}

func NewService(items ItemRepository) *Service {
	return &Service{items: items}
}

func (s *Service) validate(i *Item) error {
	if strings.TrimSpace(i.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(i.Category) == "" {
		return fmt.Errorf("category is required")
	}
	if strings.TrimSpace(i.Unit) == "" {
		return fmt.Errorf("unit is required")
	}
	if i.Quantity < 0 {
		return fmt.Errorf("quantity must not be negative")
	}
	if i.CostPerUnitCents < 0 {
		return fmt.Errorf("cost_per_unit_cents must not be negative")
	}
	if i.MinQuantity == 0 {
		i.MinQuantity = 5
	}
	return nil
}

func (s *Service) CreateItem(ctx context.Context, i *Item) error {
	if err := s.validate(i); err != nil {
		return err
	}
	return s.items.Create(ctx, i)
}

func (s *Service) GetItem(ctx context.Context, id int64) (*Item, error) {
	return s.items.GetByID(ctx, id)
}

func (s *Service) UpdateItem(ctx context.Context, i *Item) error {
	if err := s.validate(i); err != nil {
		return err
	}
	return s.items.Update(ctx, i)
}

func (s *Service) DeleteItem(ctx context.Context, id int64) error {
	return s.items.Delete(ctx, id)
}

func (s *Service) ListItems(ctx context.Context, category string, limit, offset int) ([]*Item, int, error) {
	return s.items.List(ctx, category, limit, offset)
}

func (s *Service) ListLowStock(ctx context.Context) ([]*Item, error) {
	return s.items.ListLowStock(ctx)
}

// AdjustStock applies a signed delta: positive for a delivery, negative
// for consumption.
func (s *Service) AdjustStock(ctx context.Context, id int64, delta int64) (int64, error) {
	if delta == 0 {
		return 0, fmt.Errorf("delta must be non-zero")
	}
	return s.items.AdjustQuantity(ctx, id, delta)
}
