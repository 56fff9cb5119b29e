package repositories

import (
	"context"

	"github.com/zatekoja/wanderlust/internal/domain/entities"
)

// ReviewRepository defines the interface for review operations
type ReviewRepository interface {
	// Create creates a new review
	Create(ctx context.Context, review *entities.Review) error

	// GetByID retrieves a review by ID
	GetByID(ctx context.Context, id string) (*entities.Review, error)

	// GetByIDs retrieves reviews by ID, preserving the order of ids
	GetByIDs(ctx context.Context, ids []string) ([]*entities.Review, error)

	// Delete deletes a review
	Delete(ctx context.Context, id string) error
}
