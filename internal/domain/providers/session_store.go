package providers

import (
	"context"

	"github.com/zatekoja/wanderlust/internal/domain/entities"
)

// SessionStore defines the interface for server-side session persistence
type SessionStore interface {
	// Get loads a session; a missing or expired session is a NOT_FOUND error
	Get(ctx context.Context, id string) (*entities.Session, error)

	// Save writes the session until its ExpiresAt
	Save(ctx context.Context, session *entities.Session) error

	// Delete removes a session
	Delete(ctx context.Context, id string) error
}
