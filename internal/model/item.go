package model

import "github.com/shopspring/decimal"

// Inventory categories. Category is stored as free text but consumers
// treat it as this closed set (matched case-insensitively).
const (
	CategoryFood        = "food"
	CategoryDrink       = "drink"
	CategoryMerchandise = "merchandise"
)

// DefaultReorderLevel is applied when an item is created without an
// explicit reorder threshold.
const DefaultReorderLevel = 5

// InventoryItem represents a single catalog entry tracked by the store.
type InventoryItem struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Category      string          `json:"category"` // 'food', 'drink', 'merchandise'
	Subcategory   string          `json:"subcategory,omitempty"`
	SKU           string          `json:"sku"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	ReorderLevel  int             `json:"reorderLevel"`
	ImageURL      string          `json:"imageUrl,omitempty"`
	SquareID      string          `json:"squareId,omitempty"`
}

// InsertInventoryItem holds the fields for creating a new item.
// ID is assigned by the repository.
type InsertInventoryItem struct {
	Name          string          `json:"name" validate:"required"`
	Description   string          `json:"description"`
	Category      string          `json:"category" validate:"required"`
	Subcategory   string          `json:"subcategory"`
	SKU           string          `json:"sku" validate:"required"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity" validate:"gte=0"`
	ReorderLevel  *int            `json:"reorderLevel,omitempty" validate:"omitempty,gte=0"`
	ImageURL      string          `json:"imageUrl"`
	SquareID      string          `json:"squareId"`
}

// ItemUpdate is a partial update; nil fields are left unchanged.
type ItemUpdate struct {
	Name          *string          `json:"name,omitempty"`
	Description   *string          `json:"description,omitempty"`
	Category      *string          `json:"category,omitempty"`
	Subcategory   *string          `json:"subcategory,omitempty"`
	SKU           *string          `json:"sku,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	StockQuantity *int             `json:"stockQuantity,omitempty" validate:"omitempty,gte=0"`
	ReorderLevel  *int             `json:"reorderLevel,omitempty" validate:"omitempty,gte=0"`
	ImageURL      *string          `json:"imageUrl,omitempty"`
	SquareID      *string          `json:"squareId,omitempty"`
}
