package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/wanderlust/internal/api/handlers"
	"github.com/zatekoja/wanderlust/internal/api/views"
	"github.com/zatekoja/wanderlust/internal/application/services"
	"github.com/zatekoja/wanderlust/internal/domain/entities"
	apperrors "github.com/zatekoja/wanderlust/pkg/errors"
)

func newResetHandler() (*handlers.PasswordResetHandler, *MockPasswordResetService) {
	resets := new(MockPasswordResetService)
	return handlers.NewPasswordResetHandler(resets, views.NewJSONRenderer()), resets
}

func TestPasswordResetHandler_RequestCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		location string
		kind     string
		message  string
	}{
		{
			name:     "sent",
			location: "/verify-otp?email=alice%40example.com",
			kind:     entities.FlashSuccess,
			message:  "OTP sent to your email!",
		},
		{
			name:     "unknown email",
			err:      apperrors.NewNotFoundError(services.MsgNoUserForEmail),
			location: "/forget-password",
			kind:     entities.FlashError,
			message:  "No user found with that email address.",
		},
		{
			name:     "email failure",
			err:      apperrors.NewExternalError(services.MsgEmailFailed, errors.New("smtp: 535")),
			location: "/forget-password",
			kind:     entities.FlashError,
			message:  "Error sending email. Please try again later.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, resets := newResetHandler()
			resets.On("RequestCode", mock.Anything, "alice@example.com").Return(tt.err)

			sess := &entities.Session{}
			form := url.Values{"email": {" alice@example.com "}}
			rec := serve("POST /forget-password", h.RequestCode, formRequest(http.MethodPost, "/forget-password", form), sess)

			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, tt.location, rec.Header().Get("Location"))
			assert.Equal(t, []string{tt.message}, sess.Flash[tt.kind])
		})
	}
}

func TestPasswordResetHandler_VerifyFailure(t *testing.T) {
	h, resets := newResetHandler()
	resets.On("Verify", mock.Anything, "alice@example.com", "000000").Return(apperrors.NewValidationError(services.MsgInvalidOTP))

	sess := &entities.Session{}
	form := url.Values{"email": {"alice@example.com"}, "otp": {"000000"}}
	rec := serve("POST /verify-otp", h.Verify, formRequest(http.MethodPost, "/verify-otp", form), sess)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/verify-otp?email=alice%40example.com", rec.Header().Get("Location"))
	assert.Empty(t, sess.ResetEmail)
	assert.Equal(t, []string{"Invalid or expired OTP!"}, sess.Flash[entities.FlashError])
}

func TestPasswordResetHandler_VerifySuccess(t *testing.T) {
	h, resets := newResetHandler()
	resets.On("Verify", mock.Anything, "alice@example.com", "123456").Return(nil)

	sess := &entities.Session{}
	form := url.Values{"email": {"alice@example.com"}, "otp": {"123456"}}
	rec := serve("POST /verify-otp", h.Verify, formRequest(http.MethodPost, "/verify-otp", form), sess)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice@example.com", sess.ResetEmail)
	page := decodePage(t, rec)
	assert.Equal(t, views.ResetPassword, page.View)
}

func TestPasswordResetHandler_ResetWithoutVerification(t *testing.T) {
	h, resets := newResetHandler()

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/reset-password", nil),
		formRequest(http.MethodPost, "/reset-password", url.Values{"password": {"secret1"}, "confirmPassword": {"secret1"}}),
	} {
		sess := &entities.Session{}
		handler := h.ResetForm
		if req.Method == http.MethodPost {
			handler = h.Reset
		}
		rec := serve(req.Method+" /reset-password", handler, req, sess)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/forget-password", rec.Header().Get("Location"))
		assert.Equal(t, []string{handlers.MsgResetSessionExpired}, sess.Flash[entities.FlashError])
	}
	resets.AssertNotCalled(t, "Reset", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPasswordResetHandler_ResetMismatchRerenders(t *testing.T) {
	h, resets := newResetHandler()
	resets.On("Reset", mock.Anything, "alice@example.com", "secret1", "secret2").
		Return(apperrors.NewValidationError(services.MsgPasswordMismatch))

	sess := &entities.Session{ResetEmail: "alice@example.com"}
	form := url.Values{"password": {"secret1"}, "confirmPassword": {"secret2"}}
	rec := serve("POST /reset-password", h.Reset, formRequest(http.MethodPost, "/reset-password", form), sess)

	require.Equal(t, http.StatusOK, rec.Code)
	page := decodePage(t, rec)
	assert.Equal(t, views.ResetPassword, page.View)
	assert.Equal(t, []string{"Passwords do not match!"}, page.Flash[entities.FlashError])
	assert.Equal(t, "alice@example.com", sess.ResetEmail)
}

func TestPasswordResetHandler_ResetUnknownUser(t *testing.T) {
	h, resets := newResetHandler()
	resets.On("Reset", mock.Anything, "gone@example.com", "secret1", "secret1").
		Return(apperrors.NewNotFoundError(services.MsgUserNotFound))

	sess := &entities.Session{ResetEmail: "gone@example.com"}
	form := url.Values{"password": {"secret1"}, "confirmPassword": {"secret1"}}
	rec := serve("POST /reset-password", h.Reset, formRequest(http.MethodPost, "/reset-password", form), sess)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/forget-password", rec.Header().Get("Location"))
	assert.Empty(t, sess.ResetEmail)
	assert.Equal(t, []string{"User not found!"}, sess.Flash[entities.FlashError])
}

func TestPasswordResetHandler_ResetSuccess(t *testing.T) {
	h, resets := newResetHandler()
	resets.On("Reset", mock.Anything, "alice@example.com", "secret1", "secret1").Return(nil)

	sess := &entities.Session{ResetEmail: "alice@example.com"}
	form := url.Values{"password": {"secret1"}, "confirmPassword": {"secret1"}}
	rec := serve("POST /reset-password", h.Reset, formRequest(http.MethodPost, "/reset-password", form), sess)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.Empty(t, sess.ResetEmail)
	assert.Equal(t, []string{"Password reset successfully! Please log in."}, sess.Flash[entities.FlashSuccess])
}
