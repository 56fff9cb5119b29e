package repositories

import (
	"context"

	"github.com/zatekoja/wanderlust/internal/domain/entities"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *entities.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*entities.User, error)

	// GetByIDs retrieves users by ID
	GetByIDs(ctx context.Context, ids []string) ([]*entities.User, error)

	// GetByUsername retrieves a user by username
	GetByUsername(ctx context.Context, username string) (*entities.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*entities.User, error)

	// UpdatePassword replaces a user's password hash
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
