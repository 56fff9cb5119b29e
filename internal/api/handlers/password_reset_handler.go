package handlers

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/zatekoja/wanderlust/internal/api/session"
	"github.com/zatekoja/wanderlust/internal/api/views"
	"github.com/zatekoja/wanderlust/internal/domain/entities"
	apperrors "github.com/zatekoja/wanderlust/pkg/errors"
)

// MsgResetSessionExpired is shown when the reset page is reached without a
// verified passcode
const MsgResetSessionExpired = "Invalid or expired session. Please start over."

// PasswordResetService defines the reset operations used by the handler.
type PasswordResetService interface {
	RequestCode(ctx context.Context, email string) error
	Verify(ctx context.Context, email, code string) error
	Reset(ctx context.Context, email, password, confirm string) error
}

// PasswordResetHandler walks a user through the emailed passcode flow
type PasswordResetHandler struct {
	resets   PasswordResetService
	renderer views.Renderer
}

// NewPasswordResetHandler creates a new password reset handler
func NewPasswordResetHandler(resets PasswordResetService, renderer views.Renderer) *PasswordResetHandler {
	return &PasswordResetHandler{resets: resets, renderer: renderer}
}

// EmailData is the model of the passcode and reset views
type EmailData struct {
	Email string `json:"email"`
}

// ForgotForm handles GET /forget-password
func (h *PasswordResetHandler) ForgotForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, views.ForgotPassword, nil)
}

// RequestCode handles POST /forget-password
func (h *PasswordResetHandler) RequestCode(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(h.renderer, w, r, apperrors.NewValidationError("Invalid form data"))
		return
	}
	email := strings.TrimSpace(r.PostForm.Get("email"))

	if err := h.resets.RequestCode(r.Context(), email); err != nil {
		switch apperrors.TypeOf(err) {
		case apperrors.ErrorTypeNotFound, apperrors.ErrorTypeExternal:
			flashError(w, r, err, MsgServerError, "/forget-password")
		default:
			respondWithError(h.renderer, w, r, err)
		}
		return
	}

	flashRedirect(w, r, entities.FlashSuccess, "OTP sent to your email!", verifyURL(email))
}

// VerifyForm handles GET /verify-otp
func (h *PasswordResetHandler) VerifyForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, views.VerifyOTP, EmailData{Email: r.URL.Query().Get("email")})
}

// Verify handles POST /verify-otp
func (h *PasswordResetHandler) Verify(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(h.renderer, w, r, apperrors.NewValidationError("Invalid form data"))
		return
	}
	email := strings.TrimSpace(r.PostForm.Get("email"))
	code := strings.TrimSpace(r.PostForm.Get("otp"))

	if err := h.resets.Verify(r.Context(), email, code); err != nil {
		if apperrors.Is(err, apperrors.ErrorTypeValidation) {
			flashError(w, r, err, MsgServerError, verifyURL(email))
			return
		}
		respondWithError(h.renderer, w, r, err)
		return
	}

	session.FromContext(r.Context()).ResetEmail = email
	h.renderer.Render(w, r, http.StatusOK, views.ResetPassword, EmailData{Email: email})
}

// ResetForm handles GET /reset-password
func (h *PasswordResetHandler) ResetForm(w http.ResponseWriter, r *http.Request) {
	email := session.FromContext(r.Context()).ResetEmail
	if email == "" {
		flashRedirect(w, r, entities.FlashError, MsgResetSessionExpired, "/forget-password")
		return
	}

	h.renderer.Render(w, r, http.StatusOK, views.ResetPassword, EmailData{Email: email})
}

// Reset handles POST /reset-password
func (h *PasswordResetHandler) Reset(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	if sess.ResetEmail == "" {
		flashRedirect(w, r, entities.FlashError, MsgResetSessionExpired, "/forget-password")
		return
	}

	if err := r.ParseForm(); err != nil {
		respondWithError(h.renderer, w, r, apperrors.NewValidationError("Invalid form data"))
		return
	}

	err := h.resets.Reset(r.Context(), sess.ResetEmail, r.PostForm.Get("password"), r.PostForm.Get("confirmPassword"))
	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeValidation:
		sess.AddFlash(entities.FlashError, apperrors.MessageOf(err, MsgServerError))
		h.renderer.Render(w, r, http.StatusOK, views.ResetPassword, EmailData{Email: sess.ResetEmail})
		return
	case apperrors.ErrorTypeNotFound:
		sess.ResetEmail = ""
		flashError(w, r, err, MsgServerError, "/forget-password")
		return
	}
	if err != nil {
		respondWithError(h.renderer, w, r, err)
		return
	}

	sess.ResetEmail = ""
	flashRedirect(w, r, entities.FlashSuccess, "Password reset successfully! Please log in.", "/login")
}

func verifyURL(email string) string {
	return "/verify-otp?email=" + url.QueryEscape(email)
}
