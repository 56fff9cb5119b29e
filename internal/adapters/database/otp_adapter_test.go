package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/wanderlust/internal/adapters/database"
	"github.com/zatekoja/wanderlust/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/wanderlust/pkg/errors"
)

func newOTPAdapter(t *testing.T) (*database.OTPAdapter, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return database.NewOTPAdapter(postgres.NewClientFromDB(db)), mock
}

func TestOTPAdapter_Consume(t *testing.T) {
	adapter, mock := newOTPAdapter(t)
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`DELETE FROM "otps" WHERE .*"code" = '123456'.*"email" = 'a@example.com'.*"expires_at" > .* RETURNING "id", "email", "code", "created_at", "expires_at"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "code", "created_at", "expires_at"}).
			AddRow("o1", "a@example.com", "123456", now.Add(-time.Minute), now.Add(4*time.Minute)))

	otp, err := adapter.Consume(context.Background(), "a@example.com", "123456", now)
	require.NoError(t, err)
	assert.Equal(t, "o1", otp.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOTPAdapter_Consume_ExpiredOrMissing(t *testing.T) {
	adapter, mock := newOTPAdapter(t)
	mock.ExpectQuery(`DELETE FROM "otps"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "code", "created_at", "expires_at"}))

	otp, err := adapter.Consume(context.Background(), "a@example.com", "000000", time.Now())
	assert.Nil(t, otp)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeNotFound))
}

func TestOTPAdapter_DeleteByEmail(t *testing.T) {
	adapter, mock := newOTPAdapter(t)
	mock.ExpectExec(`DELETE FROM "otps" WHERE \("email" = 'a@example.com'\)`).
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := adapter.DeleteByEmail(context.Background(), "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestOTPAdapter_DeleteExpired(t *testing.T) {
	adapter, mock := newOTPAdapter(t)
	mock.ExpectExec(`DELETE FROM "otps" WHERE \("expires_at" <= `).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := adapter.DeleteExpired(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
