package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"concession-inventory-api/internal/model"
	"concession-inventory-api/internal/repository"
	"concession-inventory-api/internal/square"
)

// failingClient simulates a Square client whose attempt errors out.
type failingClient struct{ err error }

func (c *failingClient) Sync(ctx context.Context) (square.Result, error) {
	return square.Result{}, c.err
}

// reportingClient simulates a sync that runs but reports failure.
type reportingClient struct{ result square.Result }

func (c *reportingClient) Sync(ctx context.Context) (square.Result, error) {
	return c.result, nil
}

func TestSyncServiceRunSuccess(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewSyncService(square.NewStubClient(), store)
	require.NotNil(t, svc)
	ctx := context.Background()

	result, entry, err := svc.Run(ctx)
	require.NoError(t, err)
	assert.True(t, result.Success)
	require.NotNil(t, entry)
	assert.Equal(t, model.SyncStatusSuccess, entry.Status)

	latest, err := svc.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, entry.ID, latest.ID)
}

func TestSyncServiceRunReportedFailure(t *testing.T) {
	store := repository.NewMemoryStore()
	client := &reportingClient{result: square.Result{Success: false, Message: "catalog mismatch"}}
	svc := NewSyncService(client, store)
	require.NotNil(t, svc)

	result, entry, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Success)
	require.NotNil(t, entry)
	assert.Equal(t, model.SyncStatusFailed, entry.Status)
	assert.Equal(t, "catalog mismatch", entry.ErrorMessage)
}

func TestSyncServiceRunAttemptError(t *testing.T) {
	store := repository.NewMemoryStore()
	boom := errors.New("square unreachable")
	svc := NewSyncService(&failingClient{err: boom}, store)
	require.NotNil(t, svc)
	ctx := context.Background()

	result, entry, err := svc.Run(ctx)
	assert.ErrorIs(t, err, boom)
	assert.False(t, result.Success)
	require.NotNil(t, entry)
	assert.Equal(t, model.SyncStatusFailed, entry.Status)

	// The failed attempt is still in the audit trail.
	latest, err := svc.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.SyncStatusFailed, latest.Status)
	assert.Equal(t, "square unreachable", latest.ErrorMessage)
}

func TestSyncServiceLatestEmpty(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewSyncService(square.NewStubClient(), store)
	require.NotNil(t, svc)

	_, err := svc.Latest(context.Background())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
