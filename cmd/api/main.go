package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/events"
	"storefront/internal/handler"
	"storefront/internal/rates"
	"storefront/internal/repository"
	"storefront/internal/router"
	"storefront/internal/service"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Str("storage", cfg.Storage.Backend).Msg("starting storefront API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize state storage
	repo, err := openRepository(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close storage")
		}
	}()

	// Initialize order notifications
	publisher := newPublisher(cfg.NATS, logger)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close publisher")
		}
	}()

	// Initialize services
	commerceService, err := service.NewCommerceService(ctx, repo, service.DefaultCatalog(), service.DefaultCategories(), logger)
	if err != nil {
		return fmt.Errorf("failed to initialize commerce store: %w", err)
	}

	authService, err := service.NewAuthService(ctx, repo, service.AuthOptions{
		AdminPassword: cfg.Auth.AdminPassword,
		BcryptCost:    cfg.Auth.BcryptCost,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize auth store: %w", err)
	}

	fetcher := rates.NewHTTPFetcher(cfg.Currency.RatesURL, cfg.Currency.RefreshTimeout, logger)
	currencyService, err := service.NewCurrencyService(ctx, repo, fetcher, service.DefaultCurrencies(), cfg.Currency.Base, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize currency service: %w", err)
	}

	checkoutService := service.NewCheckoutService(commerceService, publisher, cfg.Checkout.ProcessingDelay, logger)

	// Refresh exchange rates in the background; startup never waits on it
	go service.RefreshRates(ctx, currencyService, cfg.Currency.RefreshTimeout, cfg.Currency.RefreshInterval)

	// Initialize HTTP handlers and router
	mux := router.New(router.Handlers{
		Auth:     handler.NewAuthHandler(authService, logger),
		Product:  handler.NewProductHandler(commerceService, currencyService, logger),
		Cart:     handler.NewCartHandler(commerceService, currencyService, logger),
		Order:    handler.NewOrderHandler(commerceService, checkoutService, currencyService, logger),
		Currency: handler.NewCurrencyHandler(currencyService, logger),
		Admin:    handler.NewAdminHandler(commerceService, authService, currencyService, logger),
	}, authService, cfg.Auth.APIKey, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15*time.Second + cfg.Checkout.ProcessingDelay,
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

		// Stop the rate refresher before draining requests
		cancel()

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

// openRepository builds the configured storage backend. With mirroring on,
// remote backends are copied to the local directory and reads fall back to
// it while the remote is unreachable.
func openRepository(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (repository.StateRepository, error) {
	var primary repository.StateRepository

	switch cfg.Storage.Backend {
	case config.StorageMemory:
		logger.Warn().Msg("using in-memory storage, state is lost on exit")
		return repository.NewMemoryRepository(), nil

	case config.StorageFile:
		return repository.NewFileRepository(cfg.Storage.Dir, logger)

	case config.StoragePostgres:
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		if err := database.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		primary = &poolOwner{StateRepository: repository.NewPostgresRepository(pool, logger), close: pool.Close}

	case config.StorageRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		repo, err := repository.NewRedisRepository(ctx, client, cfg.Redis.KeyPrefix, logger)
		if err != nil {
			client.Close()
			return nil, err
		}
		primary = repo

	case config.StorageS3:
		repo, err := repository.NewS3Repository(ctx, cfg.S3.Bucket, cfg.S3.Region, cfg.S3.Prefix, logger)
		if err != nil {
			return nil, err
		}
		primary = repo

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	if !cfg.Storage.Mirror {
		return primary, nil
	}

	local, err := repository.NewFileRepository(cfg.Storage.Dir, logger)
	if err != nil {
		primary.Close()
		return nil, err
	}

	logger.Info().Str("dir", cfg.Storage.Dir).Msg("mirroring state to local directory")
	return repository.NewFallbackRepository(primary, local, logger), nil
}

// poolOwner closes the pgx pool together with the repository using it.
type poolOwner struct {
	repository.StateRepository
	close func()
}

func (p *poolOwner) Close() error {
	err := p.StateRepository.Close()
	p.close()
	return err
}

func newPublisher(cfg config.NATSConfig, logger zerolog.Logger) events.Publisher {
	if cfg.URL == "" {
		logger.Info().Msg("order notifications disabled (NATS_URL not set)")
		return events.NewNopPublisher()
	}

	publisher, err := events.NewNATSPublisher(cfg.URL, cfg.Subject, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to connect to NATS, order notifications disabled")
		return events.NewNopPublisher()
	}
	return publisher
}
