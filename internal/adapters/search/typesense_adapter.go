package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"
	"github.com/zatekoja/wanderlust/internal/domain/entities"
	"github.com/zatekoja/wanderlust/internal/domain/repositories"
	tsclient "github.com/zatekoja/wanderlust/internal/infrastructure/clients/typesense"
)

// maxHits is the largest page Typesense serves
const maxHits = 250

// TypesenseAdapter implements listing search using Typesense
type TypesenseAdapter struct {
	client *tsclient.Client
}

var _ repositories.ListingSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	return a.client.InitSchema(ctx)
}

// Index indexes a listing
func (a *TypesenseAdapter) Index(ctx context.Context, listing *entities.Listing) error {
	_, err := a.client.Client().Collection(tsclient.ListingsCollection).Documents().Upsert(ctx, listingDocument(listing))
	if err != nil {
		return fmt.Errorf("failed to index listing: %w", err)
	}
	return nil
}

// Delete removes a listing from the index
func (a *TypesenseAdapter) Delete(ctx context.Context, id string) error {
	_, err := a.client.Client().Collection(tsclient.ListingsCollection).Document(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete listing from index: %w", err)
	}
	return nil
}

// Search returns IDs of listings whose country matches filter.Country,
// restricted to filter.Category when set
func (a *TypesenseAdapter) Search(ctx context.Context, filter entities.ListingFilter) ([]string, error) {
	result, err := a.client.Client().Collection(tsclient.ListingsCollection).Documents().Search(ctx, searchParams(filter))
	if err != nil {
		return nil, fmt.Errorf("failed to search listings: %w", err)
	}

	ids := []string{}
	if result.Hits == nil {
		return ids, nil
	}
	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		if id, ok := (*hit.Document)["id"].(string); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func searchParams(filter entities.ListingFilter) *api.SearchCollectionParams {
	q := strings.TrimSpace(filter.Country)
	if q == "" {
		q = "*"
	}

	params := &api.SearchCollectionParams{
		Q:       pointer.String(q),
		QueryBy: pointer.String("country"),
		SortBy:  pointer.String("created_at:desc"),
		PerPage: pointer.Int(maxHits),
	}
	if filter.Category != "" {
		params.FilterBy = pointer.String(fmt.Sprintf("category:=%s", filter.Category))
	}
	return params
}

func listingDocument(listing *entities.Listing) map[string]interface{} {
	return map[string]interface{}{
		"id":         listing.ID,
		"title":      listing.Title,
		"location":   listing.Location,
		"country":    listing.Country,
		"category":   string(listing.Category),
		"price":      listing.Price,
		"created_at": listing.CreatedAt.Unix(),
	}
}
