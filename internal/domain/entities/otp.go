package entities

import "time"

// OTPTTL is how long a one-time passcode stays valid
const OTPTTL = 5 * time.Minute

// OneTimePasscode authorizes a single password reset for an email
type OneTimePasscode struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Code      string    `json:"-" db:"code"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
}

// IsExpired reports whether the passcode is no longer usable at now
func (o *OneTimePasscode) IsExpired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}
