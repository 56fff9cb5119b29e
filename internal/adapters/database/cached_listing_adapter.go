package database

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/wanderlust/internal/domain/entities"
	"github.com/zatekoja/wanderlust/internal/domain/providers"
	"github.com/zatekoja/wanderlust/internal/domain/repositories"
)

// fillStripes bounds the eviction bookkeeping; ids hash onto a stripe
const fillStripes = 64

// CachedListingAdapter wraps a ListingRepository with a read-through cache
// for single listings. Every write through the adapter evicts the entry.
//
// A reader only stores what it loaded if no eviction hit the same stripe
// while it was reading, so a slow read cannot put a row back after a write
// has evicted it.
type CachedListingAdapter struct {
	repositories.ListingRepository
	cache providers.CacheProvider

	stripes [fillStripes]struct {
		mu  sync.Mutex
		gen uint64
	}
}

// NewCachedListingAdapter creates a new cached listing adapter
func NewCachedListingAdapter(adapter repositories.ListingRepository, cache providers.CacheProvider) *CachedListingAdapter {
	return &CachedListingAdapter{
		ListingRepository: adapter,
		cache:             cache,
	}
}

func stripeOf(id string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return int(h.Sum32() % fillStripes)
}

func (a *CachedListingAdapter) generation(id string) uint64 {
	st := &a.stripes[stripeOf(id)]
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.gen
}

// listingByIDTTL is in seconds
const listingByIDTTL = 300

func listingCacheKey(id string) string {
	return fmt.Sprintf("listing:%s", id)
}

// GetByID retrieves a listing by ID with caching
func (a *CachedListingAdapter) GetByID(ctx context.Context, id string) (*entities.Listing, error) {
	cacheKey := listingCacheKey(id)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var listing entities.Listing
		if err := json.Unmarshal(cached, &listing); err == nil {
			return &listing, nil
		}
		log.Warn().Err(err).Str("listing_id", id).Msg("Failed to unmarshal cached listing")
	}

	gen := a.generation(id)
	listing, err := a.ListingRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	a.fill(ctx, id, gen, listing)
	return listing, nil
}

// Update persists the editable fields and evicts the cached copy
func (a *CachedListingAdapter) Update(ctx context.Context, listing *entities.Listing) error {
	defer a.evict(ctx, listing.ID)
	return a.ListingRepository.Update(ctx, listing)
}

// UpdateCoordinates sets coordinates and evicts the cached copy
func (a *CachedListingAdapter) UpdateCoordinates(ctx context.Context, id string, coords *entities.Coordinates) error {
	defer a.evict(ctx, id)
	return a.ListingRepository.UpdateCoordinates(ctx, id, coords)
}

// UpdateImage replaces the image and evicts the cached copy
func (a *CachedListingAdapter) UpdateImage(ctx context.Context, id string, image entities.Image) error {
	defer a.evict(ctx, id)
	return a.ListingRepository.UpdateImage(ctx, id, image)
}

// UpdateCategory sets the category and evicts the cached copy
func (a *CachedListingAdapter) UpdateCategory(ctx context.Context, id string, category entities.Category) error {
	defer a.evict(ctx, id)
	return a.ListingRepository.UpdateCategory(ctx, id, category)
}

// AppendReview adds a review reference and evicts the cached copy
func (a *CachedListingAdapter) AppendReview(ctx context.Context, listingID, reviewID string) error {
	defer a.evict(ctx, listingID)
	return a.ListingRepository.AppendReview(ctx, listingID, reviewID)
}

// RemoveReview removes a review reference and evicts the cached copy
func (a *CachedListingAdapter) RemoveReview(ctx context.Context, listingID, reviewID string) error {
	defer a.evict(ctx, listingID)
	return a.ListingRepository.RemoveReview(ctx, listingID, reviewID)
}

// DeleteWithReviews deletes the listing and evicts the cached copy
func (a *CachedListingAdapter) DeleteWithReviews(ctx context.Context, id string) ([]string, error) {
	defer a.evict(ctx, id)
	return a.ListingRepository.DeleteWithReviews(ctx, id)
}

// fill stores listing unless an eviction on its stripe happened after gen
// was read
func (a *CachedListingAdapter) fill(ctx context.Context, id string, gen uint64, listing *entities.Listing) {
	data, err := json.Marshal(listing)
	if err != nil {
		return
	}

	st := &a.stripes[stripeOf(id)]
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.gen != gen {
		return
	}
	if err := a.cache.Set(ctx, listingCacheKey(id), data, listingByIDTTL); err != nil {
		log.Warn().Err(err).Str("listing_id", id).Msg("Failed to cache listing")
	}
}

func (a *CachedListingAdapter) evict(ctx context.Context, id string) {
	st := &a.stripes[stripeOf(id)]
	st.mu.Lock()
	defer st.mu.Unlock()
	st.gen++
	if err := a.cache.Delete(ctx, listingCacheKey(id)); err != nil {
		log.Warn().Err(err).Str("listing_id", id).Msg("Failed to evict cached listing")
	}
}
