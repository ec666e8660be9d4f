package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseHistory is an append-only record of a completed sale.
// Immutable once created.
type PurchaseHistory struct {
	ID            int64           `json:"id"`
	ItemID        int64           `json:"itemId"`
	Quantity      int             `json:"quantity"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	PurchaseDate  time.Time       `json:"purchaseDate"`
	SquareOrderID string          `json:"squareOrderId,omitempty"`
}

// InsertPurchaseHistory holds the fields for recording a new purchase.
// PurchaseDate defaults to the time of creation when zero.
type InsertPurchaseHistory struct {
	ItemID        int64           `json:"itemId" validate:"required,gt=0"`
	Quantity      int             `json:"quantity" validate:"required,gt=0"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	PurchaseDate  time.Time       `json:"purchaseDate,omitempty"`
	SquareOrderID string          `json:"squareOrderId"`
}
