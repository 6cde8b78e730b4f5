package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"techhub-shop/internal/config"
	"techhub-shop/internal/database"
	"techhub-shop/internal/events"
	"techhub-shop/internal/handler"
	"techhub-shop/internal/repository"
	"techhub-shop/internal/router"
	"techhub-shop/internal/service"
	"techhub-shop/internal/shipping"
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
	logger.Info().Msg("starting techhub-shop API server")

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
	productRepo := repository.NewProductRepository(pool, logger)
	cartRepo := repository.NewCartRepository(pool, logger)
	paymentRepo := repository.NewPaymentMethodRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)

	// Initialize shipping catalogue loader with S3 and local fallback
	fileLoader := shipping.NewFileLoader(logger)
	var catalogLoader shipping.Loader = fileLoader

	if cfg.Shipping.S3Enabled {
		s3Loader, err := shipping.NewS3Loader(ctx, cfg.Shipping.S3Bucket, cfg.Shipping.S3Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			catalogLoader = shipping.NewFallbackLoader(s3Loader, fileLoader, cfg.Shipping.S3Prefix, true, logger)
		}
	}

	catalog, err := shipping.NewCatalog(ctx, cfg.Shipping.CatalogFile, catalogLoader, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize shipping catalogue: %w", err)
	}

	// Initialize order event publisher
	publisher := events.NewNopPublisher()
	if cfg.Events.Enabled {
		publisher, err = events.NewRabbitPublisher(cfg.Events.URL, cfg.Events.Exchange, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize event publisher: %w", err)
		}
	}
	defer publisher.Close()

	// Initialize services
	checkoutService := service.NewCheckoutService(orderRepo, productRepo, cartRepo, paymentRepo, catalog, publisher, logger)
	orderService := service.NewOrderService(orderRepo, publisher, logger)
	paymentService := service.NewPaymentService(paymentRepo, orderRepo, nil, logger)

	// Initialize HTTP handlers
	checkoutHandler := handler.NewCheckoutHandler(checkoutService, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)
	paymentHandler := handler.NewPaymentHandler(paymentService, logger)

	// Initialize router
	mux := router.New(checkoutHandler, orderHandler, paymentHandler, cfg.Auth.JWTSecret, logger)

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
