package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/zatekoja/wanderlust/internal/domain/entities"
	"github.com/zatekoja/wanderlust/internal/domain/providers"
	"github.com/zatekoja/wanderlust/internal/domain/repositories"
	apperrors "github.com/zatekoja/wanderlust/pkg/errors"
)

// MsgListingNotFound is shown whenever a listing lookup misses
const MsgListingNotFound = "Listing doesn't exist!"

// ListingFields are the user-editable attributes of a listing
type ListingFields struct {
	Title       string
	Description string
	Price       float64
	Location    string
	Country     string
	Category    entities.Category
}

// ListingService handles business logic for listings
type ListingService struct {
	repo       repositories.ListingRepository
	searchRepo repositories.ListingSearchRepository
	reviewRepo repositories.ReviewRepository
	userRepo   repositories.UserRepository
	geocoder   providers.GeolocationProvider
	images     *ImageService
}

// NewListingService creates a new listing service. searchRepo and geocoder
// may be nil.
func NewListingService(
	repo repositories.ListingRepository,
	searchRepo repositories.ListingSearchRepository,
	reviewRepo repositories.ReviewRepository,
	userRepo repositories.UserRepository,
	geocoder providers.GeolocationProvider,
	images *ImageService,
) *ListingService {
	return &ListingService{
		repo:       repo,
		searchRepo: searchRepo,
		reviewRepo: reviewRepo,
		userRepo:   userRepo,
		geocoder:   geocoder,
		images:     images,
	}
}

// List returns listings matching filter, newest first. The search index is
// used when available, falling back to the database.
func (s *ListingService) List(ctx context.Context, filter entities.ListingFilter) ([]*entities.Listing, error) {
	if s.searchRepo != nil {
		ids, err := s.searchRepo.Search(ctx, filter)
		if err == nil {
			return s.repo.GetByIDs(ctx, ids)
		}
		log.Warn().Err(err).Msg("Listing search failed, falling back to database")
	}
	return s.repo.List(ctx, filter)
}

// Get retrieves a listing by ID
func (s *ListingService) Get(ctx context.Context, id string) (*entities.Listing, error) {
	if !validID(id) {
		return nil, apperrors.NewNotFoundError(MsgListingNotFound)
	}

	listing, err := s.repo.GetByID(ctx, id)
	if apperrors.Is(err, apperrors.ErrorTypeNotFound) {
		return nil, apperrors.NewNotFoundError(MsgListingNotFound)
	}
	return listing, err
}

// GetDetail retrieves a listing with its owner and reviews (with authors)
func (s *ListingService) GetDetail(ctx context.Context, id string) (*entities.ListingDetail, error) {
	listing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &entities.ListingDetail{Listing: listing, Reviews: []*entities.ReviewDetail{}}

	if listing.OwnerID != "" {
		owner, err := s.userRepo.GetByID(ctx, listing.OwnerID)
		switch {
		case err == nil:
			detail.Owner = owner
		case !apperrors.Is(err, apperrors.ErrorTypeNotFound):
			return nil, err
		}
	}

	reviews, err := s.reviewRepo.GetByIDs(ctx, listing.ReviewIDs)
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return detail, nil
	}

	authorIDs := make([]string, 0, len(reviews))
	for _, r := range reviews {
		authorIDs = append(authorIDs, r.AuthorID)
	}
	authors, err := s.userRepo.GetByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entities.User, len(authors))
	for _, u := range authors {
		byID[u.ID] = u
	}

	for _, r := range reviews {
		detail.Reviews = append(detail.Reviews, &entities.ReviewDetail{Review: r, Author: byID[r.AuthorID]})
	}
	return detail, nil
}

// Create uploads the image, geocodes the address and stores a new listing
// owned by ownerID
func (s *ListingService) Create(ctx context.Context, ownerID string, fields ListingFields, upload *providers.ImageUpload) (*entities.Listing, error) {
	if upload == nil {
		return nil, apperrors.NewFileConstraintError(MsgImageRequired)
	}

	image, err := s.images.Upload(ctx, *upload)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	listing := &entities.Listing{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Image:     *image,
		ReviewIDs: []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyFields(listing, fields)
	listing.Coordinates = s.geocode(ctx, listing)

	if err := s.repo.Create(ctx, listing); err != nil {
		s.images.Destroy(ctx, image.Filename)
		return nil, err
	}

	s.index(ctx, listing)
	return listing, nil
}

// Update uploads the new image first, so a rejected file leaves the listing
// untouched. It then saves the fields, the coordinates when the address
// changed, and finally swaps the image. The steps are separate writes.
func (s *ListingService) Update(ctx context.Context, id string, fields ListingFields, upload *providers.ImageUpload) (*entities.Listing, error) {
	listing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var image *entities.Image
	if upload != nil {
		if image, err = s.images.Upload(ctx, *upload); err != nil {
			return nil, err
		}
	}

	addressChanged := listing.Location != fields.Location || listing.Country != fields.Country
	applyFields(listing, fields)
	listing.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, listing); err != nil {
		if image != nil {
			s.images.Destroy(ctx, image.Filename)
		}
		return nil, err
	}

	if addressChanged {
		if coords := s.geocode(ctx, listing); coords != nil {
			if err := s.repo.UpdateCoordinates(ctx, listing.ID, coords); err != nil {
				log.Warn().Err(err).Str("listing_id", listing.ID).Msg("Failed to store listing coordinates")
			} else {
				listing.Coordinates = coords
			}
		}
	}

	if image != nil {
		if err := s.repo.UpdateImage(ctx, listing.ID, *image); err != nil {
			s.images.Destroy(ctx, image.Filename)
			return nil, err
		}
		s.images.Destroy(ctx, listing.Image.Filename)
		listing.Image = *image
	}

	s.index(ctx, listing)
	return listing, nil
}

// Delete removes the listing image, then the listing and its reviews in one
// transaction
func (s *ListingService) Delete(ctx context.Context, id string) error {
	listing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	s.images.Destroy(ctx, listing.Image.Filename)

	reviewIDs, err := s.repo.DeleteWithReviews(ctx, listing.ID)
	if err != nil {
		return err
	}
	log.Info().Str("listing_id", listing.ID).Int("reviews", len(reviewIDs)).Msg("Listing deleted")

	if s.searchRepo != nil {
		if err := s.searchRepo.Delete(ctx, listing.ID); err != nil {
			log.Warn().Err(err).Str("listing_id", listing.ID).Msg("Failed to remove listing from search index")
		}
	}
	return nil
}

// geocode looks up the listing address. Failures are logged and yield nil.
func (s *ListingService) geocode(ctx context.Context, listing *entities.Listing) *entities.Coordinates {
	if s.geocoder == nil {
		return nil
	}

	result, err := s.geocoder.Geocode(ctx, listing.Address())
	if err != nil {
		log.Warn().Err(err).Str("address", listing.Address()).Msg("Geocoding failed")
		return nil
	}
	coords := result.Coordinates
	return &coords
}

func (s *ListingService) index(ctx context.Context, listing *entities.Listing) {
	if s.searchRepo == nil {
		return
	}
	if err := s.searchRepo.Index(ctx, listing); err != nil {
		log.Warn().Err(err).Str("listing_id", listing.ID).Msg("Failed to index listing")
	}
}

func applyFields(listing *entities.Listing, fields ListingFields) {
	listing.Title = fields.Title
	listing.Description = fields.Description
	listing.Price = fields.Price
	listing.Location = fields.Location
	listing.Country = fields.Country
	listing.Category = fields.Category
}
