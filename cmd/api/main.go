package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/wanderlust/internal/adapters/cache"
	"github.com/zatekoja/wanderlust/internal/adapters/database"
	"github.com/zatekoja/wanderlust/internal/adapters/providers/geolocation"
	"github.com/zatekoja/wanderlust/internal/adapters/providers/imagestore"
	"github.com/zatekoja/wanderlust/internal/adapters/search"
	sessionstore "github.com/zatekoja/wanderlust/internal/adapters/session"
	"github.com/zatekoja/wanderlust/internal/api/handlers"
	"github.com/zatekoja/wanderlust/internal/api/routes"
	"github.com/zatekoja/wanderlust/internal/api/session"
	"github.com/zatekoja/wanderlust/internal/api/views"
	"github.com/zatekoja/wanderlust/internal/application/services"
	"github.com/zatekoja/wanderlust/internal/domain/providers"
	"github.com/zatekoja/wanderlust/internal/domain/repositories"
	"github.com/zatekoja/wanderlust/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/wanderlust/internal/infrastructure/clients/redis"
	"github.com/zatekoja/wanderlust/internal/infrastructure/clients/typesense"
	"github.com/zatekoja/wanderlust/internal/infrastructure/notifications"
	"github.com/zatekoja/wanderlust/internal/infrastructure/observability"
	"github.com/zatekoja/wanderlust/pkg/config"
)

const otpSweepInterval = time.Minute

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Environment)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	migrator, err := postgres.NewMigrator(pgClient)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to prepare migrations")
	}
	if err := migrator.Up(); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	// Redis backs sessions and the geocode cache; without it both live in memory
	var cacheProvider providers.CacheProvider
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, falling back to in-memory cache")
		} else {
			defer redisClient.Close()
			cacheProvider = cache.NewRedisAdapter(redisClient.Client())
		}
	}
	if cacheProvider == nil {
		memoryCache := cache.NewMemoryAdapter()
		defer memoryCache.Close()
		cacheProvider = memoryCache
	}

	// Typesense is optional; listing search falls back to SQL
	var searchRepo repositories.ListingSearchRepository
	if cfg.Typesense.Enabled {
		typesenseClient, err := typesense.NewClient(&cfg.Typesense)
		if err != nil {
			log.Warn().Err(err).Msg("Typesense unavailable, listing search uses the database")
		} else {
			adapter := search.NewTypesenseAdapter(typesenseClient)
			if err := adapter.InitSchema(ctx); err != nil {
				log.Warn().Err(err).Msg("Failed to init Typesense schema")
			}
			searchRepo = adapter
		}
	}

	// Initialize adapters
	listingRepo := database.NewCachedListingAdapter(database.NewListingAdapter(pgClient), cacheProvider)
	reviewRepo := database.NewReviewAdapter(pgClient)
	userRepo := database.NewUserAdapter(pgClient)
	otpRepo := database.NewOTPAdapter(pgClient)

	geocoder := geolocation.NewProvider(cfg.Geolocation, cacheProvider)
	imageStore := imagestore.NewImageStore(cfg.ImageStore)
	emailSender := notifications.NewEmailSender(cfg.Email)

	// Initialize services
	imageService := services.NewImageService(imageStore)
	listingService := services.NewListingService(listingRepo, searchRepo, reviewRepo, userRepo, geocoder, imageService)
	reviewService := services.NewReviewService(reviewRepo, listingRepo)
	authService := services.NewAuthService(userRepo)
	passwordResetService := services.NewPasswordResetService(userRepo, otpRepo, emailSender, authService)

	go passwordResetService.RunSweeper(ctx, otpSweepInterval)

	// Initialize handlers
	renderer := views.NewJSONRenderer()
	sessions := session.NewManager(sessionstore.NewCacheStore(cacheProvider), cfg.Session, cfg.IsProduction())

	router := routes.NewRouter(
		handlers.NewListingHandler(listingService, imageService, renderer),
		handlers.NewReviewHandler(reviewService, renderer),
		handlers.NewUserHandler(authService, sessions, renderer),
		handlers.NewPasswordResetHandler(passwordResetService, renderer),
		handlers.HealthHandler(pgClient),
		listingService,
		reviewService,
		sessions,
		renderer,
		metrics,
	)

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", serverAddr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
