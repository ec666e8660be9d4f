package model

import "time"

// Sync statuses recorded in the audit trail.
const (
	SyncStatusSuccess = "success"
	SyncStatusFailed  = "failed"
)

// SyncLog is an audit record of an attempted catalog synchronization
// with the external point-of-sale system. Append-only.
type SyncLog struct {
	ID           int64     `json:"id"`
	SyncDate     time.Time `json:"syncDate"`
	Status       string    `json:"status"` // 'success' or 'failed'
	ErrorMessage string    `json:"errorMessage,omitempty"`
}
