package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/zatekoja/wanderlust/internal/domain/entities"
	"github.com/zatekoja/wanderlust/internal/domain/repositories"
	apperrors "github.com/zatekoja/wanderlust/pkg/errors"
)

// MsgReviewNotFound is shown whenever a review lookup misses
const MsgReviewNotFound = "Review not found!"

// ReviewService handles business logic for reviews
type ReviewService struct {
	repo        repositories.ReviewRepository
	listingRepo repositories.ListingRepository
}

// NewReviewService creates a new review service
func NewReviewService(repo repositories.ReviewRepository, listingRepo repositories.ListingRepository) *ReviewService {
	return &ReviewService{
		repo:        repo,
		listingRepo: listingRepo,
	}
}

// Get retrieves a review by ID
func (s *ReviewService) Get(ctx context.Context, id string) (*entities.Review, error) {
	if !validID(id) {
		return nil, apperrors.NewNotFoundError(MsgReviewNotFound)
	}

	review, err := s.repo.GetByID(ctx, id)
	if apperrors.Is(err, apperrors.ErrorTypeNotFound) {
		return nil, apperrors.NewNotFoundError(MsgReviewNotFound)
	}
	return review, err
}

// Create stores a review and appends it to the listing. The two writes are
// not transactional.
func (s *ReviewService) Create(ctx context.Context, listingID, authorID string, rating int, comment string) (*entities.Review, error) {
	if !validID(listingID) {
		return nil, apperrors.NewNotFoundError(MsgListingNotFound)
	}
	if _, err := s.listingRepo.GetByID(ctx, listingID); err != nil {
		if apperrors.Is(err, apperrors.ErrorTypeNotFound) {
			return nil, apperrors.NewNotFoundError(MsgListingNotFound)
		}
		return nil, err
	}

	review := &entities.Review{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		Rating:    rating,
		Comment:   comment,
		AuthorID:  authorID,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}
	if err := s.listingRepo.AppendReview(ctx, listingID, review.ID); err != nil {
		return nil, err
	}

	return review, nil
}

// Delete detaches a review from its listing and deletes it
func (s *ReviewService) Delete(ctx context.Context, listingID, reviewID string) error {
	if !validID(listingID) {
		return apperrors.NewNotFoundError(MsgListingNotFound)
	}
	if !validID(reviewID) {
		return apperrors.NewNotFoundError(MsgReviewNotFound)
	}

	if err := s.listingRepo.RemoveReview(ctx, listingID, reviewID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, reviewID)
}
