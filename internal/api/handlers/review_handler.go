package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/wanderlust/internal/api/session"
	"github.com/zatekoja/wanderlust/internal/api/validation"
	"github.com/zatekoja/wanderlust/internal/api/views"
	"github.com/zatekoja/wanderlust/internal/application/services"
	"github.com/zatekoja/wanderlust/internal/domain/entities"
	apperrors "github.com/zatekoja/wanderlust/pkg/errors"
)

// ReviewService defines the review operations used by the handler.
type ReviewService interface {
	Create(ctx context.Context, listingID, authorID string, rating int, comment string) (*entities.Review, error)
	Delete(ctx context.Context, listingID, reviewID string) error
}

// ReviewHandler handles review forms
type ReviewHandler struct {
	reviews  ReviewService
	renderer views.Renderer
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviews ReviewService, renderer views.Renderer) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, renderer: renderer}
}

// Create handles POST /listings/{id}/reviews
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := r.ParseForm(); err != nil {
		respondWithError(h.renderer, w, r, apperrors.NewValidationError("Invalid form data"))
		return
	}

	review, err := validation.ParseReview(r.PostForm)
	if err != nil {
		respondWithError(h.renderer, w, r, err)
		return
	}

	sess := session.FromContext(r.Context())
	if _, err := h.reviews.Create(r.Context(), id, sess.UserID, review.Rating, review.Comment); err != nil {
		if apperrors.Is(err, apperrors.ErrorTypeNotFound) {
			flashError(w, r, err, services.MsgListingNotFound, "/listings")
			return
		}
		respondWithError(h.renderer, w, r, err)
		return
	}

	flashRedirect(w, r, entities.FlashSuccess, "Review Created!", "/listings/"+id)
}

// Delete handles DELETE /listings/{id}/reviews/{reviewId}
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.reviews.Delete(r.Context(), id, r.PathValue("reviewId")); err != nil {
		if apperrors.Is(err, apperrors.ErrorTypeNotFound) {
			flashError(w, r, err, services.MsgReviewNotFound, "/listings/"+id)
			return
		}
		respondWithError(h.renderer, w, r, err)
		return
	}

	flashRedirect(w, r, entities.FlashSuccess, "Review Deleted!", "/listings/"+id)
}
