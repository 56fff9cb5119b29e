package database

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/lib/pq"
	"github.com/zatekoja/wanderlust/internal/domain/entities"
	"github.com/zatekoja/wanderlust/internal/domain/repositories"
	"github.com/zatekoja/wanderlust/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/wanderlust/pkg/errors"
)

const listingsTable = "listings"

var listingColumns = []interface{}{
	"id", "title", "description", "price", "location", "country", "category",
	"image_url", "image_filename", "latitude", "longitude", "review_ids",
	"owner_id", "created_at", "updated_at",
}

// ListingAdapter implements the ListingRepository interface
type ListingAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewListingAdapter creates a new listing adapter
func NewListingAdapter(client *postgres.Client) *ListingAdapter {
	return &ListingAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var _ repositories.ListingRepository = (*ListingAdapter)(nil)

// Create creates a new listing
func (a *ListingAdapter) Create(ctx context.Context, listing *entities.Listing) error {
	record := goqu.Record{
		"id":             listing.ID,
		"title":          listing.Title,
		"description":    listing.Description,
		"price":          listing.Price,
		"location":       listing.Location,
		"country":        listing.Country,
		"category":       string(listing.Category),
		"image_url":      listing.Image.URL,
		"image_filename": listing.Image.Filename,
		"latitude":       latitudeOf(listing.Coordinates),
		"longitude":      longitudeOf(listing.Coordinates),
		"review_ids":     pq.StringArray(nonNil(listing.ReviewIDs)),
		"owner_id":       nullString(listing.OwnerID),
		"created_at":     listing.CreatedAt,
		"updated_at":     listing.UpdatedAt,
	}

	query, args, err := a.db.Insert(listingsTable).Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return writeError(err, "failed to create listing")
	}

	return nil
}

// GetByID retrieves a listing by ID
func (a *ListingAdapter) GetByID(ctx context.Context, id string) (*entities.Listing, error) {
	query, args, err := a.db.Select(listingColumns...).
		From(listingsTable).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	listing, err := scanListing(a.client.DB().QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("listing not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get listing", err)
	}

	return listing, nil
}

// GetByIDs retrieves listings by ID, preserving the order of ids
func (a *ListingAdapter) GetByIDs(ctx context.Context, ids []string) ([]*entities.Listing, error) {
	if len(ids) == 0 {
		return []*entities.Listing{}, nil
	}

	query, args, err := a.db.Select(listingColumns...).
		From(listingsTable).
		Where(goqu.Ex{"id": ids}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	listings, err := a.queryListings(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*entities.Listing, len(listings))
	for _, l := range listings {
		byID[l.ID] = l
	}
	ordered := make([]*entities.Listing, 0, len(listings))
	for _, id := range ids {
		if l, ok := byID[id]; ok {
			ordered = append(ordered, l)
		}
	}
	return ordered, nil
}

// List retrieves listings matching filter, newest first
func (a *ListingAdapter) List(ctx context.Context, filter entities.ListingFilter) ([]*entities.Listing, error) {
	ds := a.db.Select(listingColumns...).From(listingsTable)

	if country := strings.TrimSpace(filter.Country); country != "" {
		ds = ds.Where(goqu.C("country").ILike("%" + escapeLike(country) + "%"))
	}
	if filter.Category != "" {
		ds = ds.Where(goqu.Ex{"category": string(filter.Category)})
	}

	query, args, err := ds.Order(goqu.C("created_at").Desc()).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	return a.queryListings(ctx, query, args...)
}

// ListMissingCoordinates retrieves listings that were never geocoded
func (a *ListingAdapter) ListMissingCoordinates(ctx context.Context, limit int) ([]*entities.Listing, error) {
	ds := a.db.Select(listingColumns...).
		From(listingsTable).
		Where(goqu.Or(goqu.C("latitude").IsNull(), goqu.C("longitude").IsNull())).
		Order(goqu.C("created_at").Asc())
	if limit > 0 {
		ds = ds.Limit(uint(limit))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	return a.queryListings(ctx, query, args...)
}

// Update persists the editable fields of a listing
func (a *ListingAdapter) Update(ctx context.Context, listing *entities.Listing) error {
	return a.update(ctx, listing.ID, goqu.Record{
		"title":       listing.Title,
		"description": listing.Description,
		"price":       listing.Price,
		"location":    listing.Location,
		"country":     listing.Country,
		"category":    string(listing.Category),
		"updated_at":  listing.UpdatedAt,
	})
}

// UpdateCoordinates sets or clears a listing's coordinates
func (a *ListingAdapter) UpdateCoordinates(ctx context.Context, id string, coords *entities.Coordinates) error {
	return a.update(ctx, id, goqu.Record{
		"latitude":   latitudeOf(coords),
		"longitude":  longitudeOf(coords),
		"updated_at": time.Now().UTC(),
	})
}

// UpdateImage replaces a listing's image reference
func (a *ListingAdapter) UpdateImage(ctx context.Context, id string, image entities.Image) error {
	return a.update(ctx, id, goqu.Record{
		"image_url":      image.URL,
		"image_filename": image.Filename,
		"updated_at":     time.Now().UTC(),
	})
}

// UpdateCategory sets a listing's category
func (a *ListingAdapter) UpdateCategory(ctx context.Context, id string, category entities.Category) error {
	return a.update(ctx, id, goqu.Record{
		"category":   string(category),
		"updated_at": time.Now().UTC(),
	})
}

// AppendReview adds a review reference to the end of the listing's review set
func (a *ListingAdapter) AppendReview(ctx context.Context, listingID, reviewID string) error {
	return a.update(ctx, listingID, goqu.Record{
		"review_ids": goqu.L("array_append(array_remove(review_ids, ?), ?)", reviewID, reviewID),
	})
}

// RemoveReview removes a review reference from the listing's review set
func (a *ListingAdapter) RemoveReview(ctx context.Context, listingID, reviewID string) error {
	return a.update(ctx, listingID, goqu.Record{
		"review_ids": goqu.L("array_remove(review_ids, ?)", reviewID),
	})
}

// DeleteWithReviews deletes a listing and the reviews it references in one
// transaction
func (a *ListingAdapter) DeleteWithReviews(ctx context.Context, id string) ([]string, error) {
	var reviewIDs pq.StringArray

	err := a.client.WithTx(ctx, func(tx *sql.Tx) error {
		query, args, err := a.db.From(listingsTable).
			Select("review_ids").
			Where(goqu.Ex{"id": id}).
			ForUpdate(exp.Wait).
			ToSQL()
		if err != nil {
			return apperrors.NewInternalError("failed to build query", err)
		}

		if err := tx.QueryRowContext(ctx, query, args...).Scan(&reviewIDs); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperrors.NewNotFoundError("listing not found")
			}
			return apperrors.NewInternalError("failed to load listing reviews", err)
		}

		if len(reviewIDs) > 0 {
			query, args, err = a.db.Delete(reviewsTable).Where(goqu.Ex{"id": []string(reviewIDs)}).ToSQL()
			if err != nil {
				return apperrors.NewInternalError("failed to build delete query", err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return apperrors.NewInternalError("failed to delete listing reviews", err)
			}
		}

		query, args, err = a.db.Delete(listingsTable).Where(goqu.Ex{"id": id}).ToSQL()
		if err != nil {
			return apperrors.NewInternalError("failed to build delete query", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return apperrors.NewInternalError("failed to delete listing", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return []string(reviewIDs), nil
}

// DeleteAll removes every listing and review
func (a *ListingAdapter) DeleteAll(ctx context.Context) error {
	return a.client.WithTx(ctx, func(tx *sql.Tx) error {
		for _, table := range []string{reviewsTable, listingsTable} {
			query, args, err := a.db.Delete(table).ToSQL()
			if err != nil {
				return apperrors.NewInternalError("failed to build delete query", err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return apperrors.NewInternalError("failed to clear "+table, err)
			}
		}
		return nil
	})
}

func (a *ListingAdapter) update(ctx context.Context, id string, record goqu.Record) error {
	query, args, err := a.db.Update(listingsTable).
		Set(record).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return writeError(err, "failed to update listing")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get affected rows", err)
	}
	if rows == 0 {
		return apperrors.NewNotFoundError("listing not found")
	}

	return nil
}

func (a *ListingAdapter) queryListings(ctx context.Context, query string, args ...interface{}) ([]*entities.Listing, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list listings", err)
	}
	defer rows.Close()

	listings := make([]*entities.Listing, 0)
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan listing", err)
		}
		listings = append(listings, listing)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate listings", err)
	}

	return listings, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanListing(row rowScanner) (*entities.Listing, error) {
	var (
		listing   entities.Listing
		category  string
		lat, lng  sql.NullFloat64
		reviewIDs pq.StringArray
		ownerID   sql.NullString
	)

	err := row.Scan(
		&listing.ID, &listing.Title, &listing.Description, &listing.Price,
		&listing.Location, &listing.Country, &category,
		&listing.Image.URL, &listing.Image.Filename, &lat, &lng, &reviewIDs,
		&ownerID, &listing.CreatedAt, &listing.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	listing.Category = entities.Category(category)
	if lat.Valid && lng.Valid {
		listing.Coordinates = &entities.Coordinates{Latitude: lat.Float64, Longitude: lng.Float64}
	}
	listing.ReviewIDs = nonNil(reviewIDs)
	listing.OwnerID = ownerID.String

	return &listing, nil
}

func latitudeOf(c *entities.Coordinates) interface{} {
	if c == nil {
		return nil
	}
	return c.Latitude
}

func longitudeOf(c *entities.Coordinates) interface{} {
	if c == nil {
		return nil
	}
	return c.Longitude
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
