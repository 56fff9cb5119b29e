package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/wanderlust/internal/api/session"
	"github.com/zatekoja/wanderlust/internal/api/views"
	"github.com/zatekoja/wanderlust/internal/domain/entities"
	apperrors "github.com/zatekoja/wanderlust/pkg/errors"
)

// MsgServerError is shown for any unexpected failure
const MsgServerError = "Something went wrong!"

// MsgPageNotFound is shown for unknown routes
const MsgPageNotFound = "Page Not Found!"

func redirect(w http.ResponseWriter, r *http.Request, url string) {
	http.Redirect(w, r, url, http.StatusFound)
}

func flashRedirect(w http.ResponseWriter, r *http.Request, kind, message, url string) {
	session.Flash(r.Context(), kind, message)
	redirect(w, r, url)
}

func flashError(w http.ResponseWriter, r *http.Request, err error, fallback, url string) {
	flashRedirect(w, r, entities.FlashError, apperrors.MessageOf(err, fallback), url)
}

// respondWithError renders err through the error view. Validation errors
// show their message with a 400; anything else is logged and shown as a
// generic 500.
func respondWithError(renderer views.Renderer, w http.ResponseWriter, r *http.Request, err error) {
	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeValidation:
		views.RenderError(renderer, w, r, http.StatusBadRequest, apperrors.MessageOf(err, MsgServerError))
	case apperrors.ErrorTypeNotFound:
		views.RenderError(renderer, w, r, http.StatusNotFound, apperrors.MessageOf(err, MsgPageNotFound))
	default:
		log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("Request failed")
		views.RenderError(renderer, w, r, http.StatusInternalServerError, MsgServerError)
	}
}

// NotFoundHandler renders the 404 page for unmatched routes
func NotFoundHandler(renderer views.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views.RenderError(renderer, w, r, http.StatusNotFound, MsgPageNotFound)
	}
}
