package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"concession-inventory-api/internal/cache"
	"concession-inventory-api/internal/derive"
	"concession-inventory-api/internal/model"
	"concession-inventory-api/internal/repository"
)

// metricsCacheKey is the cache key for the computed dashboard metrics.
const metricsCacheKey = "metrics:category"

// MetricsConfig holds the reporting window and cache TTL for the
// dashboard metrics.
type MetricsConfig struct {
	// Window is the reporting period. Revenue is summed over
	// [now-Window, now] and compared against [now-2*Window, now-Window).
	// Default: 30 days.
	Window time.Duration

	// CacheTTL bounds how stale a cached metrics view may be.
	// Default: 5 minutes.
	CacheTTL time.Duration
}

// MetricsService computes the dashboard's category metrics from a
// repository snapshot and caches the result. The computation itself
// lives in the derive package; this service only feeds it consistent
// input and manages the cache.
type MetricsService struct {
	items     repository.InventoryRepository
	purchases repository.PurchaseRepository
	cache     cache.Cache
	config    MetricsConfig

	// now is swappable for tests.
	now func() time.Time
}

// NewMetricsService creates a new metrics service.
// Returns nil if either repository is nil. c may be nil (no caching).
func NewMetricsService(
	items repository.InventoryRepository,
	purchases repository.PurchaseRepository,
	c cache.Cache,
	config MetricsConfig,
) *MetricsService {
	if items == nil || purchases == nil {
		return nil
	}
	if config.Window == 0 {
		config.Window = 30 * 24 * time.Hour
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = 5 * time.Minute
	}
	return &MetricsService{
		items:     items,
		purchases: purchases,
		cache:     c,
		config:    config,
		now:       time.Now,
	}
}

// CategoryMetrics returns the dashboard aggregate, computing it from
// the repositories on a cache miss.
func (s *MetricsService) CategoryMetrics(ctx context.Context) (*model.CategoryMetrics, error) {
	if s.cache == nil {
		return s.compute(ctx)
	}

	data, err := s.cache.GetOrSet(ctx, metricsCacheKey, s.config.CacheTTL, func() ([]byte, error) {
		metrics, err := s.compute(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(metrics)
	})
	if err != nil {
		return nil, err
	}

	var metrics model.CategoryMetrics
	if err := json.Unmarshal(data, &metrics); err != nil {
		return nil, err
	}
	return &metrics, nil
}

// compute snapshots the item collection plus the current and prior
// reporting windows of purchases and runs the derivation.
func (s *MetricsService) compute(ctx context.Context) (*model.CategoryMetrics, error) {
	items, err := s.items.ListItems(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	currentStart := now.Add(-s.config.Window)
	priorStart := now.Add(-2 * s.config.Window)

	current, err := s.purchases.ListPurchasesByDateRange(ctx, currentStart, now)
	if err != nil {
		return nil, err
	}
	prior, err := s.purchases.ListPurchasesByDateRange(ctx, priorStart, currentStart.Add(-time.Nanosecond))
	if err != nil {
		return nil, err
	}

	metrics := derive.CategoryMetrics(items, current, prior)
	return &metrics, nil
}

// Invalidate drops the cached metrics after a write that can change
// them. Cache failures are logged, not propagated; the entry expires
// by TTL anyway.
func (s *MetricsService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, metricsCacheKey); err != nil {
		log.Printf("[MetricsService] Failed to invalidate cache: %v", err)
	}
}
