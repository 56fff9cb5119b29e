package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/wanderlust/internal/api/session"
	"github.com/zatekoja/wanderlust/internal/api/views"
	"github.com/zatekoja/wanderlust/internal/application/services"
	"github.com/zatekoja/wanderlust/internal/domain/entities"
	apperrors "github.com/zatekoja/wanderlust/pkg/errors"
)

// AuthService defines the account operations used by the handler.
type AuthService interface {
	Signup(ctx context.Context, username, email, password string) (*entities.User, error)
	Login(ctx context.Context, username, password string) (*entities.User, error)
}

// SessionRotator issues a fresh session id on privilege changes.
type SessionRotator interface {
	Rotate(st *session.State)
}

// UserHandler handles signup, login and logout
type UserHandler struct {
	auth     AuthService
	sessions SessionRotator
	renderer views.Renderer
}

// NewUserHandler creates a new user handler
func NewUserHandler(auth AuthService, sessions SessionRotator, renderer views.Renderer) *UserHandler {
	return &UserHandler{auth: auth, sessions: sessions, renderer: renderer}
}

// SignupForm handles GET /signup
func (h *UserHandler) SignupForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, views.UsersSignup, nil)
}

// Signup handles POST /signup
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		flashRedirect(w, r, entities.FlashError, "Invalid form data", "/signup")
		return
	}

	user, err := h.auth.Signup(r.Context(), r.PostForm.Get("username"), r.PostForm.Get("email"), r.PostForm.Get("password"))
	if err != nil {
		switch apperrors.TypeOf(err) {
		case apperrors.ErrorTypeValidation, apperrors.ErrorTypeConflict:
			flashError(w, r, err, MsgServerError, "/signup")
		default:
			respondWithError(h.renderer, w, r, err)
		}
		return
	}

	h.login(r, user)
	flashRedirect(w, r, entities.FlashSuccess, "Successfully signed up!", "/listings")
}

// LoginForm handles GET /login
func (h *UserHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, views.UsersLogin, nil)
}

// Login handles POST /login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		flashRedirect(w, r, entities.FlashError, services.MsgBadCredentials, "/login")
		return
	}

	user, err := h.auth.Login(r.Context(), r.PostForm.Get("username"), r.PostForm.Get("password"))
	if err != nil {
		if apperrors.Is(err, apperrors.ErrorTypeUnauthorized) {
			flashError(w, r, err, services.MsgBadCredentials, "/login")
			return
		}
		respondWithError(h.renderer, w, r, err)
		return
	}

	sess := session.FromContext(r.Context())
	target := sess.RedirectURL
	if target == "" {
		target = "/listings"
	}
	sess.RedirectURL = ""

	h.login(r, user)
	flashRedirect(w, r, entities.FlashSuccess, "Welcome back, "+user.Username+"!", target)
}

// Logout handles GET /logout
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session.FromContext(r.Context()).Logout()
	h.rotate(r)
	flashRedirect(w, r, entities.FlashSuccess, "Logged out successfully!", "/listings")
}

func (h *UserHandler) login(r *http.Request, user *entities.User) {
	h.rotate(r)
	session.FromContext(r.Context()).Login(user)
}

func (h *UserHandler) rotate(r *http.Request) {
	if st, ok := session.StateFrom(r.Context()); ok {
		h.sessions.Rotate(st)
	}
}
