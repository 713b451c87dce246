package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/cart"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handler"
	"storefront/internal/metrics"
	"storefront/internal/report"
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
	logger.Info().Msg("starting storefront API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(pool, logger); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	voucherRepo := repository.NewVoucherRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)

	// Initialize cart store
	cartStore, closeStore, err := newCartStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize cart store: %w", err)
	}
	defer closeStore()

	// Initialize report sink with S3 and local fallback
	reportSink := newReportSink(ctx, cfg, logger)

	m := metrics.New()

	// Initialize services
	locks := service.NewSessionLocks()
	productService := service.NewProductService(productRepo, logger)
	cartService := service.NewCartService(cartStore, locks, productRepo, m, logger)
	voucherService := service.NewVoucherService(voucherRepo, m, logger)
	checkoutService := service.NewCheckoutService(cartStore, locks, orderRepo, voucherRepo, m, logger)
	reportService := service.NewReportService(orderRepo, productRepo, reportSink, logger)

	// Initialize router
	mux := router.New(router.Handlers{
		Product:  handler.NewProductHandler(productService, logger),
		Cart:     handler.NewCartHandler(cartService, logger),
		Checkout: handler.NewCheckoutHandler(checkoutService, voucherService, logger),
		Manager:  handler.NewManagerHandler(voucherService, reportService, logger),
	}, m, cfg.Auth.APIKey, logger)

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

// newCartStore builds the configured cart store and a function releasing it.
func newCartStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (cart.Store, func(), error) {
	switch cfg.Cart.Store {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("failed to ping redis: %w", err)
		}

		logger.Info().
			Str("address", cfg.Redis.Address()).
			Dur("ttl", cfg.Cart.TTL).
			Msg("using redis cart store")

		return cart.NewRedisStore(client, cfg.Cart.TTL), func() {
			if err := client.Close(); err != nil {
				logger.Error().Err(err).Msg("failed to close redis client")
			}
		}, nil

	case "file":
		store, err := cart.NewFileStore(cfg.Cart.Dir)
		if err != nil {
			return nil, nil, err
		}
		logger.Info().Str("dir", cfg.Cart.Dir).Msg("using file cart store")
		return store, func() {}, nil

	default:
		logger.Warn().Msg("using in-memory cart store, carts are lost on restart")
		return cart.NewMemoryStore(), func() {}, nil
	}
}

// newReportSink writes reports to S3 when enabled, keeping the local
// directory as fallback.
func newReportSink(ctx context.Context, cfg *config.Config, logger zerolog.Logger) report.Sink {
	fileSink := report.NewFileSink(cfg.Report.Dir, logger)

	var s3Sink report.Sink
	if cfg.S3.Enabled {
		sink, err := report.NewS3Sink(ctx, cfg.S3.Bucket, cfg.S3.Region, cfg.S3.Prefix, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 sink, falling back to local file system only")
		} else {
			s3Sink = sink
		}
	} else {
		logger.Info().Msg("using local file system for reports (S3 disabled)")
	}

	return report.NewFallbackSink(s3Sink, fileSink, cfg.S3.Enabled, logger)
}
