package service

import (
	"context"
	"time"

	"concession-inventory-api/internal/model"
	"concession-inventory-api/internal/repository"
)

// PurchaseService handles purchase history business logic. Purchases
// are append-only; creation enforces referential integrity so no
// orphan records enter the history.
type PurchaseService struct {
	purchases repository.PurchaseRepository
	items     repository.InventoryRepository
	metrics   *MetricsService
}

// NewPurchaseService creates a new purchase service.
// Returns nil if either repository is nil. metrics may be nil.
func NewPurchaseService(
	purchases repository.PurchaseRepository,
	items repository.InventoryRepository,
	metrics *MetricsService,
) *PurchaseService {
	if purchases == nil || items == nil {
		return nil
	}
	return &PurchaseService{purchases: purchases, items: items, metrics: metrics}
}

// ListPurchases returns purchases, newest first. limit <= 0 means all.
func (s *PurchaseService) ListPurchases(ctx context.Context, limit int) ([]model.PurchaseHistory, error) {
	return s.purchases.ListPurchases(ctx, limit)
}

// ListPurchasesByDateRange returns purchases within the inclusive range.
func (s *PurchaseService) ListPurchasesByDateRange(ctx context.Context, start, end time.Time) ([]model.PurchaseHistory, error) {
	return s.purchases.ListPurchasesByDateRange(ctx, start, end)
}

// ListPurchasesByItem returns purchases referencing the given item.
func (s *PurchaseService) ListPurchasesByItem(ctx context.Context, itemID int64) ([]model.PurchaseHistory, error) {
	return s.purchases.ListPurchasesByItem(ctx, itemID)
}

// CreatePurchase validates and records a purchase. The referenced item
// must exist; a dangling itemId is rejected with repository.ErrNotFound
// rather than silently entering the history.
func (s *PurchaseService) CreatePurchase(ctx context.Context, insert model.InsertPurchaseHistory) (*model.PurchaseHistory, error) {
	if err := checkStruct(insert); err != nil {
		return nil, err
	}

	if _, err := s.items.GetItem(ctx, insert.ItemID); err != nil {
		return nil, err
	}

	purchase, err := s.purchases.CreatePurchase(ctx, insert)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.Invalidate(ctx)
	}
	return purchase, nil
}
