package inventory

import "time"

// Item is a stocked supply: gloves, anesthetic carpules, impression
// material. Cost is integer cents per unit.
type Item struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Description      *string   `json:"description,omitempty"`
	Category         string    `json:"category"`
	Quantity         int64     `json:"quantity"`
	Unit             string    `json:"unit"`
	MinQuantity      int64     `json:"min_quantity"`
	CostPerUnitCents int64     `json:"cost_per_unit_cents"`
	Supplier         *string   `json:"supplier,omitempty"`
	LastOrderDate    *string   `json:"last_order_date,omitempty"`
	ExpiryDate       *string   `json:"expiry_date,omitempty"`
	Location         *string   `json:"location,omitempty"`
	Notes            *string   `json:"notes,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// IsLowStock reports whether the item has fallen to or below its reorder
// threshold.
func (i *Item) IsLowStock() bool { return i.Quantity <= i.MinQuantity }
