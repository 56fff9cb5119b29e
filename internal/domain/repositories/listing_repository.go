package repositories

import (
	"context"

	"github.com/zatekoja/wanderlust/internal/domain/entities"
)

// ListingRepository defines the interface for listing data operations
type ListingRepository interface {
	// Create creates a new listing
	Create(ctx context.Context, listing *entities.Listing) error

	// GetByID retrieves a listing by ID
	GetByID(ctx context.Context, id string) (*entities.Listing, error)

	// GetByIDs retrieves listings by ID, preserving the order of ids
	GetByIDs(ctx context.Context, ids []string) ([]*entities.Listing, error)

	// List retrieves listings matching filter, newest first
	List(ctx context.Context, filter entities.ListingFilter) ([]*entities.Listing, error)

	// ListMissingCoordinates retrieves listings that were never geocoded
	ListMissingCoordinates(ctx context.Context, limit int) ([]*entities.Listing, error)

	// Update persists the editable fields of a listing
	Update(ctx context.Context, listing *entities.Listing) error

	// UpdateCoordinates sets or clears a listing's coordinates
	UpdateCoordinates(ctx context.Context, id string, coords *entities.Coordinates) error

	// UpdateImage replaces a listing's image reference
	UpdateImage(ctx context.Context, id string, image entities.Image) error

	// UpdateCategory sets a listing's category
	UpdateCategory(ctx context.Context, id string, category entities.Category) error

	// AppendReview adds a review reference to the end of the listing's review set
	AppendReview(ctx context.Context, listingID, reviewID string) error

	// RemoveReview removes a review reference from the listing's review set
	RemoveReview(ctx context.Context, listingID, reviewID string) error

	// DeleteWithReviews deletes a listing and every review it references in
	// one transaction, returning the deleted review IDs
	DeleteWithReviews(ctx context.Context, id string) ([]string, error)

	// DeleteAll removes every listing and review
	DeleteAll(ctx context.Context) error
}

// ListingSearchRepository defines the interface for the listing search index
type ListingSearchRepository interface {
	// Index adds or replaces a listing document
	Index(ctx context.Context, listing *entities.Listing) error

	// Delete removes a listing document
	Delete(ctx context.Context, id string) error

	// Search returns IDs of listings matching filter
	Search(ctx context.Context, filter entities.ListingFilter) ([]string, error)
}
