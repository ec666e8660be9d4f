package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"concession-inventory-api/internal/model"
)

// MemoryStore is a map-backed Store for development, testing, and
// single-instance deployments that do not need persistence across
// restarts. Thread-safe; constructed explicitly and injected rather
// than held as a process-wide global.
type MemoryStore struct {
	mu sync.RWMutex

	items     map[int64]model.InventoryItem
	purchases map[int64]model.PurchaseHistory
	syncLogs  map[int64]model.SyncLog

	nextItemID     int64
	nextPurchaseID int64
	nextSyncLogID  int64

	// now is swappable for tests.
	now func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items:          make(map[int64]model.InventoryItem),
		purchases:      make(map[int64]model.PurchaseHistory),
		syncLogs:       make(map[int64]model.SyncLog),
		nextItemID:     1,
		nextPurchaseID: 1,
		nextSyncLogID:  1,
		now:            time.Now,
	}
}

// ListItems returns all items ordered by id.
func (s *MemoryStore) ListItems(ctx context.Context) ([]model.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]model.InventoryItem, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

// ListItemsByCategory returns items whose category matches, case-insensitively.
func (s *MemoryStore) ListItemsByCategory(ctx context.Context, category string) ([]model.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]model.InventoryItem, 0)
	for _, item := range s.items {
		if strings.EqualFold(item.Category, category) {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

// GetItem returns the item with the given id, or ErrNotFound.
func (s *MemoryStore) GetItem(ctx context.Context, id int64) (*model.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &item, nil
}

// CreateItem inserts a new item, enforcing sku and squareId uniqueness.
func (s *MemoryStore) CreateItem(ctx context.Context, insert model.InsertInventoryItem) (*model.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.items {
		if existing.SKU == insert.SKU {
			return nil, ErrDuplicateSKU
		}
		if insert.SquareID != "" && existing.SquareID == insert.SquareID {
			return nil, ErrDuplicateSquareID
		}
	}

	reorderLevel := model.DefaultReorderLevel
	if insert.ReorderLevel != nil {
		reorderLevel = *insert.ReorderLevel
	}

	item := model.InventoryItem{
		ID:            s.nextItemID,
		Name:          insert.Name,
		Description:   insert.Description,
		Category:      insert.Category,
		Subcategory:   insert.Subcategory,
		SKU:           insert.SKU,
		Price:         insert.Price,
		StockQuantity: insert.StockQuantity,
		ReorderLevel:  reorderLevel,
		ImageURL:      insert.ImageURL,
		SquareID:      insert.SquareID,
	}
	s.nextItemID++
	s.items[item.ID] = item
	return &item, nil
}

// UpdateItem applies a partial update, enforcing uniqueness when sku or
// squareId change.
func (s *MemoryStore) UpdateItem(ctx context.Context, id int64, update model.ItemUpdate) (*model.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}

	if update.SKU != nil && *update.SKU != item.SKU {
		for _, existing := range s.items {
			if existing.ID != id && existing.SKU == *update.SKU {
				return nil, ErrDuplicateSKU
			}
		}
		item.SKU = *update.SKU
	}
	if update.SquareID != nil && *update.SquareID != item.SquareID {
		for _, existing := range s.items {
			if existing.ID != id && *update.SquareID != "" && existing.SquareID == *update.SquareID {
				return nil, ErrDuplicateSquareID
			}
		}
		item.SquareID = *update.SquareID
	}
	if update.Name != nil {
		item.Name = *update.Name
	}
	if update.Description != nil {
		item.Description = *update.Description
	}
	if update.Category != nil {
		item.Category = *update.Category
	}
	if update.Subcategory != nil {
		item.Subcategory = *update.Subcategory
	}
	if update.Price != nil {
		item.Price = *update.Price
	}
	if update.StockQuantity != nil {
		item.StockQuantity = *update.StockQuantity
	}
	if update.ReorderLevel != nil {
		item.ReorderLevel = *update.ReorderLevel
	}
	if update.ImageURL != nil {
		item.ImageURL = *update.ImageURL
	}

	s.items[id] = item
	return &item, nil
}

// DeleteItem removes an item, or returns ErrNotFound.
func (s *MemoryStore) DeleteItem(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return ErrNotFound
	}
	delete(s.items, id)
	return nil
}

// ListPurchases returns purchases, newest first. limit <= 0 means all.
func (s *MemoryStore) ListPurchases(ctx context.Context, limit int) ([]model.PurchaseHistory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	purchases := s.sortedPurchasesLocked()
	if limit > 0 && limit < len(purchases) {
		purchases = purchases[:limit]
	}
	return purchases, nil
}

// ListPurchasesByDateRange returns purchases with start <= purchaseDate <= end.
func (s *MemoryStore) ListPurchasesByDateRange(ctx context.Context, start, end time.Time) ([]model.PurchaseHistory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	purchases := make([]model.PurchaseHistory, 0)
	for _, p := range s.sortedPurchasesLocked() {
		if !p.PurchaseDate.Before(start) && !p.PurchaseDate.After(end) {
			purchases = append(purchases, p)
		}
	}
	return purchases, nil
}

// ListPurchasesByItem returns purchases referencing the given item id.
func (s *MemoryStore) ListPurchasesByItem(ctx context.Context, itemID int64) ([]model.PurchaseHistory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	purchases := make([]model.PurchaseHistory, 0)
	for _, p := range s.sortedPurchasesLocked() {
		if p.ItemID == itemID {
			purchases = append(purchases, p)
		}
	}
	return purchases, nil
}

// CreatePurchase appends a purchase record. A zero PurchaseDate defaults
// to the current time.
func (s *MemoryStore) CreatePurchase(ctx context.Context, insert model.InsertPurchaseHistory) (*model.PurchaseHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	purchaseDate := insert.PurchaseDate
	if purchaseDate.IsZero() {
		purchaseDate = s.now()
	}

	purchase := model.PurchaseHistory{
		ID:            s.nextPurchaseID,
		ItemID:        insert.ItemID,
		Quantity:      insert.Quantity,
		TotalPrice:    insert.TotalPrice,
		PurchaseDate:  purchaseDate,
		SquareOrderID: insert.SquareOrderID,
	}
	s.nextPurchaseID++
	s.purchases[purchase.ID] = purchase
	return &purchase, nil
}

// LatestSyncLog returns the entry with the maximum syncDate, or ErrNotFound.
func (s *MemoryStore) LatestSyncLog(ctx context.Context) (*model.SyncLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *model.SyncLog
	for id := range s.syncLogs {
		entry := s.syncLogs[id]
		if latest == nil || entry.SyncDate.After(latest.SyncDate) {
			latest = &entry
		}
	}
	if latest == nil {
		return nil, ErrNotFound
	}
	return latest, nil
}

// AppendSyncLog records a sync attempt stamped with the current time.
func (s *MemoryStore) AppendSyncLog(ctx context.Context, status, errorMessage string) (*model.SyncLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := model.SyncLog{
		ID:           s.nextSyncLogID,
		SyncDate:     s.now(),
		Status:       status,
		ErrorMessage: errorMessage,
	}
	s.nextSyncLogID++
	s.syncLogs[entry.ID] = entry
	return &entry, nil
}

// Close is a no-op for the in-memory backend.
func (s *MemoryStore) Close() error {
	return nil
}

// sortedPurchasesLocked returns purchases newest first. Ties fall back
// to descending id so pagination is stable. Caller must hold the lock.
func (s *MemoryStore) sortedPurchasesLocked() []model.PurchaseHistory {
	purchases := make([]model.PurchaseHistory, 0, len(s.purchases))
	for _, p := range s.purchases {
		purchases = append(purchases, p)
	}
	sort.Slice(purchases, func(i, j int) bool {
		if purchases[i].PurchaseDate.Equal(purchases[j].PurchaseDate) {
			return purchases[i].ID > purchases[j].ID
		}
		return purchases[i].PurchaseDate.After(purchases[j].PurchaseDate)
	})
	return purchases
}

// Ensure MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)
