package types

// InventoryItem is a single tracked inventory record. The collection is
// shared across all authenticated users; there is no per-item ownership.
type InventoryItem struct {
	ID       int     `json:"id" db:"id"`
	Name     string  `json:"name" db:"name"`
	Quantity int     `json:"quantity" db:"quantity"`
	Category string  `json:"category" db:"category"`
	Price    float64 `json:"price" db:"price"`
}

// ItemFields carries the mutable fields of an inventory item, used for
// inserts and full-replace updates.
type ItemFields struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}
