package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/wanderlust/internal/domain/providers"
	"github.com/zatekoja/wanderlust/internal/domain/repositories"
	"golang.org/x/time/rate"
)

// GeocodeBackfillResult summarizes a backfill run
type GeocodeBackfillResult struct {
	Processed int
	Updated   int
	Skipped   int
	Failed    int
}

// GeocodeBackfillService fills in coordinates for listings that have none
type GeocodeBackfillService struct {
	repo     repositories.ListingRepository
	geocoder providers.GeolocationProvider
	limiter  *rate.Limiter
}

// NewGeocodeBackfillService creates a backfill that issues at most one
// geocoding request per interval
func NewGeocodeBackfillService(repo repositories.ListingRepository, geocoder providers.GeolocationProvider, interval time.Duration) *GeocodeBackfillService {
	return &GeocodeBackfillService{
		repo:     repo,
		geocoder: geocoder,
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Run geocodes up to limit listings lacking coordinates
func (s *GeocodeBackfillService) Run(ctx context.Context, limit int) (*GeocodeBackfillResult, error) {
	listings, err := s.repo.ListMissingCoordinates(ctx, limit)
	if err != nil {
		return nil, err
	}

	result := &GeocodeBackfillResult{}
	for i, listing := range listings {
		if listing.Location == "" || listing.Country == "" {
			result.Skipped++
			continue
		}
		if err := s.limiter.Wait(ctx); err != nil {
			return result, err
		}
		result.Processed++

		log.Info().Msgf("Geocoding %d/%d: %s", i+1, len(listings), listing.Address())

		geocoded, err := s.geocoder.Geocode(ctx, listing.Address())
		if err != nil {
			result.Failed++
			log.Warn().Err(err).Str("listing_id", listing.ID).Msg("Geocoding failed")
			continue
		}

		coords := geocoded.Coordinates
		if err := s.repo.UpdateCoordinates(ctx, listing.ID, &coords); err != nil {
			result.Failed++
			log.Error().Err(err).Str("listing_id", listing.ID).Msg("Failed to store coordinates")
			continue
		}
		result.Updated++
	}

	return result, nil
}
