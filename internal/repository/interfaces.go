package repository

import (
	"context"
	"errors"
	"time"

	"concession-inventory-api/internal/model"
)

// Sentinel errors shared by all backends. Callers match with errors.Is.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateSKU indicates an item with the same SKU already exists.
	ErrDuplicateSKU = errors.New("duplicate sku")

	// ErrDuplicateSquareID indicates an item with the same Square ID already exists.
	ErrDuplicateSquareID = errors.New("duplicate square id")
)

// InventoryRepository defines inventory item data access methods.
// Repositories return raw entities only; stock-status derivation happens
// in the service layer so the reorder threshold lives in one place.
type InventoryRepository interface {
	// ListItems returns all inventory items.
	ListItems(ctx context.Context) ([]model.InventoryItem, error)

	// ListItemsByCategory returns items whose category matches, case-insensitively.
	ListItemsByCategory(ctx context.Context, category string) ([]model.InventoryItem, error)

	// GetItem returns the item with the given id, or ErrNotFound.
	GetItem(ctx context.Context, id int64) (*model.InventoryItem, error)

	// CreateItem inserts a new item and assigns its id.
	// Fails with ErrDuplicateSKU / ErrDuplicateSquareID on uniqueness violations.
	CreateItem(ctx context.Context, insert model.InsertInventoryItem) (*model.InventoryItem, error)

	// UpdateItem applies a partial update and returns the updated item,
	// or ErrNotFound.
	UpdateItem(ctx context.Context, id int64, update model.ItemUpdate) (*model.InventoryItem, error)

	// DeleteItem removes an item, or returns ErrNotFound.
	DeleteItem(ctx context.Context, id int64) error
}

// PurchaseRepository defines purchase history data access methods.
// Purchase records are append-only; list queries are ordered by
// purchaseDate descending.
type PurchaseRepository interface {
	// ListPurchases returns purchases, newest first. limit <= 0 means all.
	ListPurchases(ctx context.Context, limit int) ([]model.PurchaseHistory, error)

	// ListPurchasesByDateRange returns purchases with start <= purchaseDate <= end.
	ListPurchasesByDateRange(ctx context.Context, start, end time.Time) ([]model.PurchaseHistory, error)

	// ListPurchasesByItem returns purchases referencing the given item id.
	ListPurchasesByItem(ctx context.Context, itemID int64) ([]model.PurchaseHistory, error)

	// CreatePurchase appends a purchase record and assigns its id.
	// A zero PurchaseDate defaults to the current time.
	CreatePurchase(ctx context.Context, insert model.InsertPurchaseHistory) (*model.PurchaseHistory, error)
}

// SyncLogRepository defines sync audit trail access methods.
type SyncLogRepository interface {
	// LatestSyncLog returns the entry with the maximum syncDate, or ErrNotFound.
	LatestSyncLog(ctx context.Context) (*model.SyncLog, error)

	// AppendSyncLog records a sync attempt.
	AppendSyncLog(ctx context.Context, status, errorMessage string) (*model.SyncLog, error)
}

// Store bundles the three repositories a backend provides.
type Store interface {
	InventoryRepository
	PurchaseRepository
	SyncLogRepository

	// Close releases the backend's resources.
	Close() error
}
