package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/wanderlust/internal/adapters/cache"
	"github.com/zatekoja/wanderlust/internal/adapters/database"
	"github.com/zatekoja/wanderlust/internal/adapters/providers/geolocation"
	"github.com/zatekoja/wanderlust/internal/application/services"
	"github.com/zatekoja/wanderlust/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/wanderlust/internal/infrastructure/observability"
	"github.com/zatekoja/wanderlust/pkg/config"
)

func main() {
	var task string
	var overwrite bool
	var limit int
	var interval time.Duration

	flag.StringVar(&task, "task", "geocode", "Backfill to run: geocode or categories")
	flag.BoolVar(&overwrite, "overwrite", false, "Recompute categories for every listing")
	flag.IntVar(&limit, "limit", 0, "Maximum listings to geocode (0 for all)")
	flag.DurationVar(&interval, "interval", time.Second, "Minimum delay between geocoder requests")
	flag.Parse()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	observability.InitLogger("wanderlust-backfill", cfg.Environment)

	// Setup DB
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pgClient.Close()

	listingRepo := database.NewListingAdapter(pgClient)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	start := time.Now()

	switch task {
	case "geocode":
		geocodeCache := cache.NewMemoryAdapter()
		defer geocodeCache.Close()
		geocoder := geolocation.NewProvider(cfg.Geolocation, geocodeCache)
		svc := services.NewGeocodeBackfillService(listingRepo, geocoder, interval)

		result, err := svc.Run(ctx, limit)
		if err != nil {
			log.Error().Err(err).Msg("Geocode backfill failed")
		}
		if result != nil {
			log.Info().
				Int("processed", result.Processed).
				Int("updated", result.Updated).
				Int("skipped", result.Skipped).
				Int("failed", result.Failed).
				Dur("elapsed", time.Since(start)).
				Msg("Geocode backfill complete")
		}
	case "categories":
		svc := services.NewCategoryService(listingRepo)

		result, err := svc.Backfill(ctx, overwrite)
		if err != nil {
			log.Error().Err(err).Msg("Category backfill failed")
		}
		if result != nil {
			log.Info().
				Int("processed", result.Processed).
				Int("updated", result.Updated).
				Int("failed", result.Failed).
				Dur("elapsed", time.Since(start)).
				Msg("Category backfill complete")
		}
	default:
		log.Fatal().Str("task", task).Msg("Unknown backfill task")
	}
}
