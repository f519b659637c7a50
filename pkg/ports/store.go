package ports

import (
	"context"

	"github.com/aretw0/cadence/pkg/domain"
)

// CursorStore defines the interface for persisting wizard cursors.
// This lets stateless adapters (HTTP, MCP) resume a wizard by session ID.
type CursorStore interface {
	// Save persists the state for a given session ID.
	Save(ctx context.Context, sessionID string, state *domain.WizardState) error

	// Load retrieves the state for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.WizardState, error)

	// Delete removes the state for a given session ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of all stored sessions.
	List(ctx context.Context) ([]string, error)
}
