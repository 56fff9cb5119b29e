package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/wanderlust/internal/api/session"
	"github.com/zatekoja/wanderlust/internal/api/views"
	"github.com/zatekoja/wanderlust/internal/domain/entities"
	apperrors "github.com/zatekoja/wanderlust/pkg/errors"
)

const (
	MsgLoginRequired = "You must be logged in to do that!"
	MsgNotOwner      = "You are not the owner of this listing!"
	MsgNotAuthor     = "You are not the author of this review!"
	MsgServerError   = "Something went wrong!"
)

// ListingFinder loads a listing by id
type ListingFinder interface {
	Get(ctx context.Context, id string) (*entities.Listing, error)
}

// ReviewFinder loads a review by id
type ReviewFinder interface {
	Get(ctx context.Context, id string) (*entities.Review, error)
}

// RequireLogin redirects anonymous users to the login page, remembering
// where they were going
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context())
		if sess.IsAuthenticated() {
			next.ServeHTTP(w, r)
			return
		}

		if strings.Contains(r.URL.Path, "/reviews") {
			sess.RedirectURL = "/listings/" + r.PathValue("id")
		} else {
			sess.RedirectURL = r.URL.RequestURI()
		}
		sess.AddFlash(entities.FlashError, MsgLoginRequired)
		http.Redirect(w, r, "/login", http.StatusFound)
	})
}

// RequireOwner lets only the listing's owner through
func RequireOwner(listings ListingFinder, renderer views.Renderer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := session.FromContext(r.Context())
			id := r.PathValue("id")

			listing, err := listings.Get(r.Context(), id)
			if err != nil {
				if apperrors.Is(err, apperrors.ErrorTypeNotFound) {
					sess.AddFlash(entities.FlashError, apperrors.MessageOf(err, "Listing doesn't exist!"))
					http.Redirect(w, r, "/listings", http.StatusFound)
					return
				}
				serverError(renderer, w, r, err)
				return
			}

			if !listing.IsOwnedBy(sess.UserID) {
				forbidden(w, r, apperrors.NewForbiddenError(MsgNotOwner), "/listings/"+id)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireReviewAuthor lets only the review's author through
func RequireReviewAuthor(reviews ReviewFinder, renderer views.Renderer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := session.FromContext(r.Context())
			back := "/listings/" + r.PathValue("id")

			review, err := reviews.Get(r.Context(), r.PathValue("reviewId"))
			if err != nil {
				if apperrors.Is(err, apperrors.ErrorTypeNotFound) {
					sess.AddFlash(entities.FlashError, apperrors.MessageOf(err, "Review not found!"))
					http.Redirect(w, r, back, http.StatusFound)
					return
				}
				serverError(renderer, w, r, err)
				return
			}

			if !review.IsAuthoredBy(sess.UserID) {
				forbidden(w, r, apperrors.NewForbiddenError(MsgNotAuthor), back)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// forbidden flashes a FORBIDDEN error's message and sends the user back
func forbidden(w http.ResponseWriter, r *http.Request, err error, back string) {
	sess := session.FromContext(r.Context())
	log.Info().
		Str("path", r.URL.Path).
		Str("user_id", sess.UserID).
		Bool("forbidden", apperrors.Is(err, apperrors.ErrorTypeForbidden)).
		Msg("Access denied")
	sess.AddFlash(entities.FlashError, apperrors.MessageOf(err, MsgServerError))
	http.Redirect(w, r, back, http.StatusFound)
}

func serverError(renderer views.Renderer, w http.ResponseWriter, r *http.Request, err error) {
	log.Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
	views.RenderError(renderer, w, r, http.StatusInternalServerError, MsgServerError)
}
