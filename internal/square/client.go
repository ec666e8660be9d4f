// Package square defines the boundary to the external Square
// point-of-sale catalog. Only the stub implementation ships today; a
// real API client can be substituted without touching the rest of the
// system.
package square

import "context"

// Result is the outcome of a catalog synchronization attempt.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Client synchronizes the local catalog with Square.
type Client interface {
	// Sync runs one synchronization pass. A failed pass is reported in
	// the Result; the error return is reserved for transport-level
	// problems that prevented the attempt entirely.
	Sync(ctx context.Context) (Result, error)
}

// StubClient always reports a successful sync without any network call.
// It stands in until a real Square integration is wired up.
type StubClient struct{}

// NewStubClient creates the stub Square client.
func NewStubClient() *StubClient {
	return &StubClient{}
}

// Sync reports success unconditionally.
func (c *StubClient) Sync(ctx context.Context) (Result, error) {
	return Result{
		Success: true,
		Message: "Sync completed successfully",
	}, nil
}

// Ensure StubClient implements Client
var _ Client = (*StubClient)(nil)
