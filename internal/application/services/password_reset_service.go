package services

import (
	"context"
	"crypto/rand"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/zatekoja/wanderlust/internal/domain/entities"
	"github.com/zatekoja/wanderlust/internal/domain/providers"
	"github.com/zatekoja/wanderlust/internal/domain/repositories"
	"github.com/zatekoja/wanderlust/internal/infrastructure/notifications"
	apperrors "github.com/zatekoja/wanderlust/pkg/errors"
)

const (
	MsgNoUserForEmail   = "No user found with that email address."
	MsgEmailFailed      = "Error sending email. Please try again later."
	MsgInvalidOTP       = "Invalid or expired OTP!"
	MsgUserNotFound     = "User not found!"
	MsgPasswordMissing  = "Both password fields are required!"
	MsgPasswordShort    = "Password must be at least 6 characters long!"
	MsgPasswordMismatch = "Passwords do not match!"
)

// MinPasswordLength is the shortest password accepted on reset
const MinPasswordLength = 6

// PasswordResetService issues and verifies one-time passcodes
type PasswordResetService struct {
	users  repositories.UserRepository
	otps   repositories.OTPRepository
	sender providers.EmailSender
	auth   *AuthService
	now    func() time.Time
}

// NewPasswordResetService creates a new password reset service
func NewPasswordResetService(
	users repositories.UserRepository,
	otps repositories.OTPRepository,
	sender providers.EmailSender,
	auth *AuthService,
) *PasswordResetService {
	return &PasswordResetService{
		users:  users,
		otps:   otps,
		sender: sender,
		auth:   auth,
		now:    time.Now,
	}
}

// RequestCode replaces any outstanding passcode for email with a new one and
// emails it. Unknown emails get a NOT_FOUND error and no passcode.
func (s *PasswordResetService) RequestCode(ctx context.Context, email string) error {
	if _, err := s.users.GetByEmail(ctx, email); err != nil {
		if apperrors.Is(err, apperrors.ErrorTypeNotFound) {
			return apperrors.NewNotFoundError(MsgNoUserForEmail)
		}
		return err
	}

	code, err := generateCode()
	if err != nil {
		return apperrors.NewInternalError("failed to generate passcode", err)
	}

	if _, err := s.otps.DeleteByEmail(ctx, email); err != nil {
		return err
	}

	now := s.now().UTC()
	otp := &entities.OneTimePasscode{
		ID:        uuid.New().String(),
		Email:     email,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(entities.OTPTTL),
	}
	if err := s.otps.Create(ctx, otp); err != nil {
		return err
	}

	if err := s.sender.Send(ctx, notifications.NewPasswordResetEmail(email, code)); err != nil {
		log.Error().Err(err).Str("email", email).Msg("Error sending OTP email")
		return apperrors.NewExternalError(MsgEmailFailed, err)
	}

	return nil
}

// Verify consumes the passcode. A wrong, expired or already used code is a
// VALIDATION error.
func (s *PasswordResetService) Verify(ctx context.Context, email, code string) error {
	if email == "" || code == "" {
		return apperrors.NewValidationError(MsgInvalidOTP)
	}

	now := s.now().UTC()
	otp, err := s.otps.Consume(ctx, email, code, now)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrorTypeNotFound) {
			return apperrors.NewValidationError(MsgInvalidOTP)
		}
		return err
	}
	if otp == nil || otp.IsExpired(now) {
		return apperrors.NewValidationError(MsgInvalidOTP)
	}
	return nil
}

// CheckNewPassword validates a password and its confirmation
func CheckNewPassword(password, confirm string) error {
	switch {
	case password == "" || confirm == "":
		return apperrors.NewValidationError(MsgPasswordMissing)
	case len(password) < MinPasswordLength:
		return apperrors.NewValidationError(MsgPasswordShort)
	case len(password) > MaxPasswordBytes:
		return apperrors.NewValidationError(MsgPasswordLong)
	case password != confirm:
		return apperrors.NewValidationError(MsgPasswordMismatch)
	}
	return nil
}

// Reset sets a new password for the verified email
func (s *PasswordResetService) Reset(ctx context.Context, email, password, confirm string) error {
	if err := CheckNewPassword(password, confirm); err != nil {
		return err
	}

	if err := s.auth.SetPassword(ctx, email, password); err != nil {
		if apperrors.Is(err, apperrors.ErrorTypeNotFound) {
			return apperrors.NewNotFoundError(MsgUserNotFound)
		}
		return err
	}
	return nil
}

// PurgeExpired deletes passcodes past their expiry
func (s *PasswordResetService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.otps.DeleteExpired(ctx, s.now().UTC())
}

// RunSweeper purges expired passcodes every interval until ctx is done
func (s *PasswordResetService) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.PurgeExpired(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("Failed to purge expired passcodes")
				continue
			}
			if n > 0 {
				log.Debug().Int64("deleted", n).Msg("Purged expired passcodes")
			}
		}
	}
}

// generateCode returns a uniformly random code in [100000, 999999]
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return big.NewInt(0).Add(n, big.NewInt(100000)).String(), nil
}
