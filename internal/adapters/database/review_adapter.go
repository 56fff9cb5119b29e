package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"
	"github.com/zatekoja/wanderlust/internal/domain/entities"
	"github.com/zatekoja/wanderlust/internal/domain/repositories"
	"github.com/zatekoja/wanderlust/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/wanderlust/pkg/errors"
)

const reviewsTable = "reviews"

var reviewColumns = []interface{}{"id", "rating", "comment", "author_id", "created_at"}

// ReviewAdapter implements the ReviewRepository interface
type ReviewAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewReviewAdapter creates a new review adapter
func NewReviewAdapter(client *postgres.Client) *ReviewAdapter {
	return &ReviewAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var _ repositories.ReviewRepository = (*ReviewAdapter)(nil)

// Create creates a new review
func (a *ReviewAdapter) Create(ctx context.Context, review *entities.Review) error {
	query, args, err := a.db.Insert(reviewsTable).Rows(goqu.Record{
		"id":         review.ID,
		"rating":     review.Rating,
		"comment":    review.Comment,
		"author_id":  nullString(review.AuthorID),
		"created_at": review.CreatedAt,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create review", err)
	}
	return nil
}

// GetByID retrieves a review by ID
func (a *ReviewAdapter) GetByID(ctx context.Context, id string) (*entities.Review, error) {
	query, args, err := a.db.Select(reviewColumns...).
		From(reviewsTable).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	review, err := scanReview(a.client.DB().QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("review not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get review", err)
	}
	return review, nil
}

// GetByIDs retrieves reviews by ID, preserving the order of ids
func (a *ReviewAdapter) GetByIDs(ctx context.Context, ids []string) ([]*entities.Review, error) {
	if len(ids) == 0 {
		return []*entities.Review{}, nil
	}

	query, args, err := a.db.Select(reviewColumns...).
		From(reviewsTable).
		Where(goqu.Ex{"id": ids}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list reviews", err)
	}
	defer rows.Close()

	byID := make(map[string]*entities.Review, len(ids))
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan review", err)
		}
		byID[review.ID] = review
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate reviews", err)
	}

	reviews := make([]*entities.Review, 0, len(byID))
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			reviews = append(reviews, r)
		}
	}
	return reviews, nil
}

// Delete deletes a review
func (a *ReviewAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete(reviewsTable).Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete review", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get affected rows", err)
	}
	if rows == 0 {
		return apperrors.NewNotFoundError("review not found")
	}
	return nil
}

func scanReview(row rowScanner) (*entities.Review, error) {
	var (
		review   entities.Review
		authorID sql.NullString
	)
	if err := row.Scan(&review.ID, &review.Rating, &review.Comment, &authorID, &review.CreatedAt); err != nil {
		return nil, err
	}
	review.AuthorID = authorID.String
	return &review, nil
}
