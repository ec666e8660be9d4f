package service

import (
	"context"
	"log"

	"concession-inventory-api/internal/model"
	"concession-inventory-api/internal/repository"
	"concession-inventory-api/internal/square"
)

// SyncService drives catalog synchronization with Square and keeps the
// audit trail. Every attempt, successful or not, leaves a sync log
// entry behind.
type SyncService struct {
	client square.Client
	logs   repository.SyncLogRepository
}

// NewSyncService creates a new sync service.
// Returns nil if either dependency is nil.
func NewSyncService(client square.Client, logs repository.SyncLogRepository) *SyncService {
	if client == nil || logs == nil {
		return nil
	}
	return &SyncService{client: client, logs: logs}
}

// Run performs one synchronization pass and records the outcome.
func (s *SyncService) Run(ctx context.Context) (square.Result, *model.SyncLog, error) {
	result, err := s.client.Sync(ctx)
	if err != nil {
		// The attempt itself failed; record that before reporting.
		entry, logErr := s.logs.AppendSyncLog(ctx, model.SyncStatusFailed, err.Error())
		if logErr != nil {
			log.Printf("[SyncService] Failed to record sync failure: %v", logErr)
		}
		return square.Result{Success: false, Message: err.Error()}, entry, err
	}

	status := model.SyncStatusSuccess
	if !result.Success {
		status = model.SyncStatusFailed
	}
	entry, err := s.logs.AppendSyncLog(ctx, status, result.Message)
	if err != nil {
		return result, nil, err
	}
	return result, entry, nil
}

// Latest returns the most recent sync log entry, or
// repository.ErrNotFound when no sync has run yet.
func (s *SyncService) Latest(ctx context.Context) (*model.SyncLog, error) {
	return s.logs.LatestSyncLog(ctx)
}
