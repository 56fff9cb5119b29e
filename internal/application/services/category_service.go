package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/wanderlust/internal/domain/entities"
	"github.com/zatekoja/wanderlust/internal/domain/repositories"
)

type categoryRule struct {
	category entities.Category
	keywords []string
}

// Checked in order against title, description, location and country; the
// first match wins.
var categoryRules = []categoryRule{
	{entities.CategoryPools, []string{"pool", "swimming"}},
	{entities.CategoryMountains, []string{"mountain", "hill", "alps"}},
	{entities.CategoryCastle, []string{"castle", "palace", "fort"}},
	{entities.CategoryCamping, []string{"camp", "tent", "outdoor"}},
	{entities.CategoryFarmhouse, []string{"farm", "ranch", "countryside"}},
	{entities.CategoryArctic, []string{"arctic", "snow", "ice", "igloo"}},
	{entities.CategoryBoats, []string{"boat", "yacht", "ship", "sail"}},
	{entities.CategoryDeserts, []string{"desert", "sahara", "dune"}},
	{entities.CategoryIconicCities, []string{"city", "urban", "downtown", "metro"}},
}

// AssignCategory infers a category from a listing's text
func AssignCategory(listing *entities.Listing) entities.Category {
	location := strings.ToLower(listing.Location)
	country := strings.ToLower(listing.Country)
	combined := strings.Join([]string{
		strings.ToLower(listing.Title),
		strings.ToLower(listing.Description),
		location,
		country,
	}, " ")

	for _, rule := range categoryRules {
		if containsAny(combined, rule.keywords...) {
			return rule.category
		}
	}

	switch {
	case containsAny(location, "beach", "coast"):
		return entities.CategoryTrending
	case containsAny(country, "switzerland", "nepal"):
		return entities.CategoryMountains
	case containsAny(combined, "room", "apartment", "house"):
		return entities.CategoryRooms
	}
	return entities.CategoryTrending
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// CategoryBackfillResult summarizes a backfill run
type CategoryBackfillResult struct {
	Processed int
	Updated   int
	Failed    int
}

// CategoryService assigns categories to stored listings
type CategoryService struct {
	repo repositories.ListingRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(repo repositories.ListingRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// Backfill assigns an inferred category to every listing whose category is
// not valid, or to every listing when overwrite is set
func (s *CategoryService) Backfill(ctx context.Context, overwrite bool) (*CategoryBackfillResult, error) {
	listings, err := s.repo.List(ctx, entities.ListingFilter{})
	if err != nil {
		return nil, err
	}

	result := &CategoryBackfillResult{}
	for _, listing := range listings {
		if listing.Category.Valid() && !overwrite {
			continue
		}
		result.Processed++

		category := AssignCategory(listing)
		if category == listing.Category {
			continue
		}
		if err := s.repo.UpdateCategory(ctx, listing.ID, category); err != nil {
			result.Failed++
			log.Error().Err(err).Str("listing_id", listing.ID).Msg("Failed to update listing category")
			continue
		}
		result.Updated++
		log.Info().Str("listing_id", listing.ID).Str("title", listing.Title).Str("category", string(category)).Msg("Listing category assigned")
	}

	return result, nil
}
