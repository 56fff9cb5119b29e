package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/zatekoja/wanderlust/internal/domain/entities"
	"github.com/zatekoja/wanderlust/internal/domain/repositories"
	"github.com/zatekoja/wanderlust/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/wanderlust/pkg/errors"
)

const otpsTable = "otps"

// OTPAdapter implements the OTPRepository interface
type OTPAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewOTPAdapter creates a new one-time passcode adapter
func NewOTPAdapter(client *postgres.Client) *OTPAdapter {
	return &OTPAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var _ repositories.OTPRepository = (*OTPAdapter)(nil)

// Create stores a new passcode
func (a *OTPAdapter) Create(ctx context.Context, otp *entities.OneTimePasscode) error {
	query, args, err := a.db.Insert(otpsTable).Rows(goqu.Record{
		"id":         otp.ID,
		"email":      otp.Email,
		"code":       otp.Code,
		"created_at": otp.CreatedAt,
		"expires_at": otp.ExpiresAt,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create otp", err)
	}
	return nil
}

// DeleteByEmail removes every passcode issued to email
func (a *OTPAdapter) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	return a.delete(ctx, goqu.Ex{"email": email})
}

// Consume deletes and returns the matching unexpired passcode in one statement
func (a *OTPAdapter) Consume(ctx context.Context, email, code string, now time.Time) (*entities.OneTimePasscode, error) {
	query, args, err := a.db.Delete(otpsTable).
		Where(
			goqu.Ex{"email": email, "code": code},
			goqu.C("expires_at").Gt(now),
		).
		Returning("id", "email", "code", "created_at", "expires_at").
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build delete query", err)
	}

	var otp entities.OneTimePasscode
	err = a.client.DB().QueryRowContext(ctx, query, args...).
		Scan(&otp.ID, &otp.Email, &otp.Code, &otp.CreatedAt, &otp.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("otp not found or expired")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to consume otp", err)
	}
	return &otp, nil
}

// DeleteExpired removes passcodes that expired at or before now
func (a *OTPAdapter) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return a.delete(ctx, goqu.C("expires_at").Lte(now))
}

func (a *OTPAdapter) delete(ctx context.Context, where exp.Expression) (int64, error) {
	query, args, err := a.db.Delete(otpsTable).Where(where).ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return 0, apperrors.NewInternalError("failed to delete otps", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to get affected rows", err)
	}
	return n, nil
}
