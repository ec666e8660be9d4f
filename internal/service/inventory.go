package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"concession-inventory-api/internal/derive"
	"concession-inventory-api/internal/model"
	"concession-inventory-api/internal/repository"
)

// validate checks the struct tags on request payloads. Shared by all
// services in this package.
var validate = validator.New()

// ErrValidation wraps a validator failure so handlers can map it to a
// 400 with field details.
type ErrValidation struct {
	Err validator.ValidationErrors
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Err)
}

func checkStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			return &ErrValidation{Err: fieldErrs}
		}
		return err
	}
	return nil
}

// InventoryService handles inventory item business logic. Every item it
// returns carries its computed stock status; the raw repository rows
// never reach a handler directly.
type InventoryService struct {
	repo    repository.InventoryRepository
	metrics *MetricsService
}

// NewInventoryService creates a new inventory service.
// Returns nil if repo is nil (required dependency). metrics may be nil.
func NewInventoryService(repo repository.InventoryRepository, metrics *MetricsService) *InventoryService {
	if repo == nil {
		return nil
	}
	return &InventoryService{repo: repo, metrics: metrics}
}

// ListItems returns all items with their stock status.
func (s *InventoryService) ListItems(ctx context.Context) ([]model.ItemWithStatus, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	return derive.ItemsWithStatus(items), nil
}

// ListItemsByCategory returns items in a category with their stock status.
func (s *InventoryService) ListItemsByCategory(ctx context.Context, category string) ([]model.ItemWithStatus, error) {
	items, err := s.repo.ListItemsByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	return derive.ItemsWithStatus(items), nil
}

// GetItem returns one item with its stock status.
func (s *InventoryService) GetItem(ctx context.Context, id int64) (*model.ItemWithStatus, error) {
	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	withStatus := derive.WithStatus(*item)
	return &withStatus, nil
}

// ListLowStock returns the items at or below their reorder level.
func (s *InventoryService) ListLowStock(ctx context.Context) ([]model.ItemWithStatus, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	return derive.ItemsWithStatus(derive.FilterLowStock(items)), nil
}

// CreateItem validates and inserts a new item.
func (s *InventoryService) CreateItem(ctx context.Context, insert model.InsertInventoryItem) (*model.ItemWithStatus, error) {
	if err := checkStruct(insert); err != nil {
		return nil, err
	}

	item, err := s.repo.CreateItem(ctx, insert)
	if err != nil {
		return nil, err
	}
	s.invalidateMetrics(ctx)

	withStatus := derive.WithStatus(*item)
	return &withStatus, nil
}

// UpdateItem validates and applies a partial update.
func (s *InventoryService) UpdateItem(ctx context.Context, id int64, update model.ItemUpdate) (*model.ItemWithStatus, error) {
	if err := checkStruct(update); err != nil {
		return nil, err
	}

	item, err := s.repo.UpdateItem(ctx, id, update)
	if err != nil {
		return nil, err
	}
	s.invalidateMetrics(ctx)

	withStatus := derive.WithStatus(*item)
	return &withStatus, nil
}

// DeleteItem removes an item.
func (s *InventoryService) DeleteItem(ctx context.Context, id int64) error {
	if err := s.repo.DeleteItem(ctx, id); err != nil {
		return err
	}
	s.invalidateMetrics(ctx)
	return nil
}

func (s *InventoryService) invalidateMetrics(ctx context.Context) {
	if s.metrics != nil {
		s.metrics.Invalidate(ctx)
	}
}
