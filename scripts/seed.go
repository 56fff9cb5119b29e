package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/zatekoja/wanderlust/internal/adapters/database"
	"github.com/zatekoja/wanderlust/internal/adapters/search"
	"github.com/zatekoja/wanderlust/internal/application/services"
	"github.com/zatekoja/wanderlust/internal/domain/entities"
	"github.com/zatekoja/wanderlust/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/wanderlust/internal/infrastructure/clients/typesense"
	"github.com/zatekoja/wanderlust/internal/infrastructure/observability"
	"github.com/zatekoja/wanderlust/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	observability.InitLogger("wanderlust-seed", cfg.Environment)

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to DB")
	}
	defer pgClient.Close()

	migrator, err := postgres.NewMigrator(pgClient)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to prepare migrations")
	}
	if err := migrator.Up(); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	var searchRepo *search.TypesenseAdapter
	if cfg.Typesense.Enabled {
		tsClient, err := typesense.NewClient(&cfg.Typesense)
		if err != nil {
			log.Warn().Err(err).Msg("Typesense unavailable, skipping search indexing")
		} else {
			searchRepo = search.NewTypesenseAdapter(tsClient)
			if err := searchRepo.InitSchema(context.Background()); err != nil {
				log.Warn().Err(err).Msg("Failed to init Typesense schema")
			}
		}
	}

	userRepo := database.NewUserAdapter(pgClient)
	listingRepo := database.NewListingAdapter(pgClient)
	authService := services.NewAuthService(userRepo)

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Info().Msg("RESET_DB=true detected, deleting listings and reviews before seeding")
		if err := listingRepo.DeleteAll(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to reset listings")
		}
	}

	// 1. Seed the demo host
	owner, err := userRepo.GetByUsername(ctx, "wanderer")
	if err != nil {
		owner, err = authService.Signup(ctx, "wanderer", "wanderer@example.com", getEnv("SEED_PASSWORD", "wanderlust"))
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create demo user")
		}
	}

	// 2. Seed listings; entries without a category get one from their text
	now := time.Now().UTC()
	created := 0
	for _, listing := range sampleListings() {
		listing.ID = uuid.New().String()
		listing.OwnerID = owner.ID
		listing.ReviewIDs = []string{}
		listing.CreatedAt = now
		listing.UpdatedAt = now
		if listing.Category == "" {
			listing.Category = services.AssignCategory(listing)
		}

		if err := listingRepo.Create(ctx, listing); err != nil {
			log.Error().Err(err).Str("title", listing.Title).Msg("Failed to create listing")
			continue
		}
		created++

		if searchRepo != nil {
			if err := searchRepo.Index(ctx, listing); err != nil {
				log.Warn().Err(err).Str("listing_id", listing.ID).Msg("Failed to index listing")
			}
		}
	}

	log.Info().Int("listings", created).Str("owner", owner.Username).Msg("Seeding completed")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func sampleListings() []*entities.Listing {
	return []*entities.Listing{
		{
			Title:       "Luxury Villa in Hunza Valley",
			Description: "Experience the breathtaking beauty of Hunza Valley from this traditional yet luxurious villa.",
			Price:       150,
			Location:    "Hunza Valley",
			Country:     "Pakistan",
			Category:    entities.CategoryMountains,
			Image:       entities.Image{URL: "https://cdn.pixabay.com/photo/2018/08/27/12/50/chief-3634922_960_720.jpg", Filename: "hunza-valley-villa"},
			Coordinates: &entities.Coordinates{Latitude: 36.3167, Longitude: 74.6607},
		},
		{
			Title:       "Badshahi Mosque View Hotel",
			Description: "Wake up to the majestic view of Badshahi Mosque, one of the largest mosques in the world.",
			Price:       110,
			Location:    "Lahore",
			Country:     "Pakistan",
			Category:    entities.CategoryIconicCities,
			Image:       entities.Image{URL: "https://images.unsplash.com/photo-1722926283743-1a537cc4262f?w=500&auto=format&fit=crop&q=60&ixlib=rb-4.1.0&ixid=M3wxMjA3fDB8MHxzZWFyY2h8M3x8QmFkc2hhaSUyMG1vc3F1ZXxlbnwwfHwwfHx8MA%3D%3D", Filename: "badshahi-mosque-hotel"},
			Coordinates: &entities.Coordinates{Latitude: 31.5888, Longitude: 74.3104},
		},
		{
			Title:       "Swiss Alps Luxury Chalet",
			Description: "Traditional Alpine luxury in Zermatt with direct views of the Matterhorn.",
			Price:       850,
			Location:    "Zermatt",
			Country:     "Switzerland",
			Image:       entities.Image{URL: "https://images.unsplash.com/photo-1510312305653-8ed496efae75?w=500&auto=format&fit=crop&q=60&ixlib=rb-4.1.0&ixid=M3wxMjA3fDB8MHxzZWFyY2h8NHx8Y2FtcGluZ3xlbnwwfHwwfHx8MA%3D%3D", Filename: "swiss-alps-chalet"},
			Coordinates: &entities.Coordinates{Latitude: 46.0207, Longitude: 7.7491},
		},
		{
			Title:       "Lapland Ice Hotel Suite",
			Description: "Sleep in a room made entirely of ice and snow.",
			Price:       520,
			Location:    "Kiruna",
			Country:     "Sweden",
			Category:    entities.CategoryArctic,
			Image:       entities.Image{URL: "https://images.unsplash.com/photo-1451337516015-6b6e9a44a8a3?w=800", Filename: "lapland-ice-hotel"},
			Coordinates: &entities.Coordinates{Latitude: 67.8558, Longitude: 20.2253},
		},
		{
			Title:       "Cappadocia Cave Hotel",
			Description: "Unique cave hotel carved into fairy chimneys of Cappadocia.",
			Price:       180,
			Location:    "Göreme",
			Country:     "Turkey",
			Category:    entities.CategoryRooms,
			Image:       entities.Image{URL: "https://images.unsplash.com/photo-1615874959474-d609969a20ed?w=500&auto=format&fit=crop&q=60&ixlib=rb-4.1.0&ixid=M3wxMjA3fDB8MHxzZWFyY2h8NHx8YmVkcm9vbXxlbnwwfHwwfHx8MA%3D%3D", Filename: "cappadocia-cave"},
			Coordinates: &entities.Coordinates{Latitude: 38.6431, Longitude: 34.8289},
		},
		{
			Title:       "Neuschwanstein Castle Suite",
			Description: "Stay near the fairy-tale Neuschwanstein Castle in Bavaria.",
			Price:       320,
			Location:    "Schwangau",
			Country:     "Germany",
			Image:       entities.Image{URL: "https://images.unsplash.com/photo-1467269204594-9661b134dd2b?w=800", Filename: "neuschwanstein-suite"},
			Coordinates: &entities.Coordinates{Latitude: 47.5576, Longitude: 10.7498},
		},
		{
			Title:       "Thar Desert Heritage Camp",
			Description: "Authentic Rajasthani desert experience near Jaisalmer.",
			Price:       120,
			Location:    "Jaisalmer",
			Country:     "India",
			Category:    entities.CategoryDeserts,
			Image:       entities.Image{URL: "https://images.unsplash.com/photo-1542401886-65d6c61db217?w=800", Filename: "thar-desert-camp"},
			Coordinates: &entities.Coordinates{Latitude: 26.9157, Longitude: 70.9083},
		},
		{
			Title:       "Cotswolds Country Manor",
			Description: "Charming English countryside manor in the picturesque Cotswolds.",
			Price:       220,
			Location:    "Cotswolds",
			Country:     "UK",
			Category:    entities.CategoryFarmhouse,
			Image:       entities.Image{URL: "https://images.unsplash.com/photo-1600457008548-8a153e914616?w=500&auto=format&fit=crop&q=60&ixlib=rb-4.1.0&ixid=M3wxMjA3fDB8MHxzZWFyY2h8MTZ8fGZhcm0lMjBob3VzZXxlbnwwfHwwfHx8MA%3D%3D", Filename: "cotswolds-manor"},
			Coordinates: &entities.Coordinates{Latitude: 51.9950, Longitude: -1.7297},
		},
		{
			Title:       "Santorini Cave Pool Suite",
			Description: "Iconic blue-domed cave suite carved into Santorini's caldera cliffs.",
			Price:       550,
			Location:    "Oia",
			Country:     "Greece",
			Image:       entities.Image{URL: "https://images.unsplash.com/photo-1570077188670-e3a8d69ac5ff?w=800", Filename: "santorini-cave"},
			Coordinates: &entities.Coordinates{Latitude: 36.4618, Longitude: 25.3755},
		},
		{
			Title:       "Machu Picchu Mountain Lodge",
			Description: "Exclusive lodge with direct views of Machu Picchu.",
			Price:       320,
			Location:    "Aguas Calientes",
			Country:     "Peru",
			Category:    entities.CategoryMountains,
			Image:       entities.Image{URL: "https://images.unsplash.com/photo-1526392060635-9d6019884377?w=800", Filename: "machu-picchu-lodge"},
			Coordinates: &entities.Coordinates{Latitude: -13.1631, Longitude: -72.5450},
		},
	}
}
