package repositories

import (
	"context"
	"time"

	"github.com/zatekoja/wanderlust/internal/domain/entities"
)

// OTPRepository defines the interface for one-time passcode storage
type OTPRepository interface {
	// Create stores a new passcode
	Create(ctx context.Context, otp *entities.OneTimePasscode) error

	// DeleteByEmail removes every passcode issued to email
	DeleteByEmail(ctx context.Context, email string) (int64, error)

	// Consume atomically deletes and returns the passcode matching email and
	// code if it has not expired at now
	Consume(ctx context.Context, email, code string, now time.Time) (*entities.OneTimePasscode, error)

	// DeleteExpired removes passcodes that expired before now
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
