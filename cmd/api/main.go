package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"feastly/internal/auth"
	"feastly/internal/config"
	"feastly/internal/database"
	"feastly/internal/discovery"
	"feastly/internal/handler"
	"feastly/internal/repository"
	"feastly/internal/router"
	"feastly/internal/seed"
	"feastly/internal/service"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env if present; real environment variables win
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting feastly API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	restaurantRepo := repository.NewRestaurantRepository(pool, logger)
	menuRepo := repository.NewMenuRepository(pool, logger)
	userRepo := repository.NewUserRepository(pool, logger)
	purchaseRepo := repository.NewPurchaseRepository(pool, logger)

	// Seed the sample datasets if requested
	if cfg.Seed.Enabled {
		loader := seedLoader(ctx, cfg.Seed, logger)
		seeder := seed.NewSeeder(loader, restaurantRepo, menuRepo, userRepo, purchaseRepo, logger)
		if err := seeder.Run(ctx, cfg.Seed.RestaurantsPath, cfg.Seed.UsersPath); err != nil {
			return fmt.Errorf("failed to seed datasets: %w", err)
		}
	}

	// Initialize token issuer and discovery engine
	issuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, logger)
	engine := discovery.NewEngine(logger)

	// Initialize services
	restaurantService := service.NewRestaurantService(restaurantRepo, menuRepo, engine, logger)
	userService := service.NewUserService(userRepo, issuer, logger)
	purchaseService := service.NewPurchaseService(purchaseRepo, menuRepo, userRepo, restaurantRepo, logger)

	// Initialize HTTP handlers
	restaurantHandler := handler.NewRestaurantHandler(restaurantService, logger)
	userHandler := handler.NewUserHandler(userService, logger)
	purchaseHandler := handler.NewPurchaseHandler(purchaseService, logger)

	// Initialize router
	mux := router.New(restaurantHandler, userHandler, purchaseHandler, issuer, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// seedLoader builds the dataset loader, preferring S3 with a local fallback.
func seedLoader(ctx context.Context, cfg config.SeedConfig, logger zerolog.Logger) seed.Loader {
	fileLoader := seed.NewFileLoader(logger)

	if !cfg.S3Enabled {
		logger.Info().Msg("using local file system for seed datasets (S3 disabled)")
		return fileLoader
	}

	s3Loader, err := seed.NewS3Loader(ctx, cfg.S3Bucket, cfg.S3Region, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 loader, falling back to local file system only")
		return fileLoader
	}

	return seed.NewFallbackLoader(s3Loader, fileLoader, logger)
}
