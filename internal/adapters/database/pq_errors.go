package database

import (
	"errors"

	"github.com/lib/pq"
	apperrors "github.com/zatekoja/wanderlust/pkg/errors"
)

// Postgres SQLSTATE codes the adapters translate
const (
	pqUniqueViolation   = "23505"
	pqStringTooLong     = "22001"
	pqNumericOutOfRange = "22003"
)

const (
	msgValueOutOfRange = "A submitted value is too long or out of range"
	msgUsernameTaken   = "A user with the given username is already registered"
	msgEmailTaken      = "A user with the given email is already registered"
)

// writeError maps a failed INSERT/UPDATE to an AppError. Values that overflow
// a column become validation errors instead of internal ones.
func writeError(err error, message string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pqStringTooLong, pqNumericOutOfRange:
			return apperrors.NewValidationError(msgValueOutOfRange)
		}
	}
	return apperrors.NewInternalError(message, err)
}
