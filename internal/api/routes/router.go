package routes

import (
	"net/http"

	"github.com/zatekoja/wanderlust/internal/api/handlers"
	"github.com/zatekoja/wanderlust/internal/api/middleware"
	"github.com/zatekoja/wanderlust/internal/api/session"
	"github.com/zatekoja/wanderlust/internal/api/views"
	"github.com/zatekoja/wanderlust/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	listingHandler       *handlers.ListingHandler
	reviewHandler        *handlers.ReviewHandler
	userHandler          *handlers.UserHandler
	passwordResetHandler *handlers.PasswordResetHandler
	health               http.Handler

	listings middleware.ListingFinder
	reviews  middleware.ReviewFinder

	sessions *session.Manager
	renderer views.Renderer
	metrics  *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	listingHandler *handlers.ListingHandler,
	reviewHandler *handlers.ReviewHandler,
	userHandler *handlers.UserHandler,
	passwordResetHandler *handlers.PasswordResetHandler,
	health http.Handler,
	listings middleware.ListingFinder,
	reviews middleware.ReviewFinder,
	sessions *session.Manager,
	renderer views.Renderer,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		listingHandler:       listingHandler,
		reviewHandler:        reviewHandler,
		userHandler:          userHandler,
		passwordResetHandler: passwordResetHandler,
		health:               health,

		listings: listings,
		reviews:  reviews,

		sessions: sessions,
		renderer: renderer,
		metrics:  metrics,
	}
}

// chain wraps h so the first middleware runs first
func chain(h http.HandlerFunc, mw ...func(http.Handler) http.Handler) http.Handler {
	var handler http.Handler = h
	for i := len(mw) - 1; i >= 0; i-- {
		handler = mw[i](handler)
	}
	return handler
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	loggedIn := middleware.RequireLogin
	isOwner := middleware.RequireOwner(r.listings, r.renderer)
	isReviewAuthor := middleware.RequireReviewAuthor(r.reviews, r.renderer)

	// Health check endpoint
	r.mux.Handle("GET /healthz", r.health)

	r.mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/listings", http.StatusFound)
	})

	// Listing endpoints
	r.mux.HandleFunc("GET /listings", r.listingHandler.Index)
	r.mux.Handle("POST /listings", chain(r.listingHandler.Create, loggedIn))
	r.mux.Handle("GET /listings/new", chain(r.listingHandler.New, loggedIn))
	r.mux.HandleFunc("GET /listings/{id}", r.listingHandler.Show)
	r.mux.Handle("PUT /listings/{id}", chain(r.listingHandler.Update, loggedIn, isOwner))
	r.mux.Handle("DELETE /listings/{id}", chain(r.listingHandler.Delete, loggedIn, isOwner))
	r.mux.Handle("GET /listings/{id}/edit", chain(r.listingHandler.Edit, loggedIn, isOwner))

	// Review endpoints
	r.mux.Handle("POST /listings/{id}/reviews", chain(r.reviewHandler.Create, loggedIn))
	r.mux.Handle("DELETE /listings/{id}/reviews/{reviewId}", chain(r.reviewHandler.Delete, loggedIn, isReviewAuthor))

	// User endpoints
	r.mux.HandleFunc("GET /signup", r.userHandler.SignupForm)
	r.mux.HandleFunc("POST /signup", r.userHandler.Signup)
	r.mux.HandleFunc("GET /login", r.userHandler.LoginForm)
	r.mux.HandleFunc("POST /login", r.userHandler.Login)
	r.mux.HandleFunc("GET /logout", r.userHandler.Logout)

	// Password reset endpoints
	r.mux.HandleFunc("GET /forget-password", r.passwordResetHandler.ForgotForm)
	r.mux.HandleFunc("POST /forget-password", r.passwordResetHandler.RequestCode)
	r.mux.HandleFunc("GET /verify-otp", r.passwordResetHandler.VerifyForm)
	r.mux.HandleFunc("POST /verify-otp", r.passwordResetHandler.Verify)
	r.mux.HandleFunc("GET /reset-password", r.passwordResetHandler.ResetForm)
	r.mux.HandleFunc("POST /reset-password", r.passwordResetHandler.Reset)

	r.mux.Handle("/", handlers.NotFoundHandler(r.renderer))

	// Apply middleware in reverse order (last middleware wraps first).
	// Observability wraps the mux directly so it can read the matched pattern.
	var handler http.Handler = r.mux
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.RecoverMiddleware(r.renderer)(handler)
	handler = middleware.MethodOverride(handler)
	handler = middleware.SessionMiddleware(r.sessions)(handler)

	return handler
}
