package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/wanderlust/internal/adapters/database"
	"github.com/zatekoja/wanderlust/internal/domain/entities"
	"github.com/zatekoja/wanderlust/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/wanderlust/pkg/errors"
)

var reviewCols = []string{"id", "rating", "comment", "author_id", "created_at"}

func newReviewAdapter(t *testing.T) (*database.ReviewAdapter, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return database.NewReviewAdapter(postgres.NewClientFromDB(db)), mock
}

func TestReviewAdapter_CreateAndGet(t *testing.T) {
	adapter, mock := newReviewAdapter(t)
	now := time.Now().UTC()

	mock.ExpectExec(`INSERT INTO "reviews"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`FROM "reviews" WHERE \("id" = 'r1'\)`).
		WillReturnRows(sqlmock.NewRows(reviewCols).AddRow("r1", 5, "Great stay", "u1", now))

	require.NoError(t, adapter.Create(context.Background(), &entities.Review{
		ID: "r1", Rating: 5, Comment: "Great stay", AuthorID: "u1", CreatedAt: now,
	}))

	review, err := adapter.GetByID(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, 5, review.Rating)
	assert.True(t, review.IsAuthoredBy("u1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewAdapter_GetByIDs_SkipsMissing(t *testing.T) {
	adapter, mock := newReviewAdapter(t)
	now := time.Now()

	mock.ExpectQuery(`FROM "reviews" WHERE`).
		WillReturnRows(sqlmock.NewRows(reviewCols).
			AddRow("r2", 3, "ok", "u2", now).
			AddRow("r1", 4, "nice", nil, now))

	reviews, err := adapter.GetByIDs(context.Background(), []string{"r1", "gone", "r2"})
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "r1", reviews[0].ID)
	assert.Empty(t, reviews[0].AuthorID)
	assert.Equal(t, "r2", reviews[1].ID)
}

func TestReviewAdapter_Delete_NotFound(t *testing.T) {
	adapter, mock := newReviewAdapter(t)
	mock.ExpectExec(`DELETE FROM "reviews"`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := adapter.Delete(context.Background(), "missing")
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeNotFound))
}
