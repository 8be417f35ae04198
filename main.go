package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	appLogger "github.com/FACorreiaa/go-itinerary-generator/app/logger"
	"github.com/FACorreiaa/go-itinerary-generator/app/observability/metrics"
	"github.com/FACorreiaa/go-itinerary-generator/app/tracer"
	"github.com/FACorreiaa/go-itinerary-generator/config"
	"github.com/FACorreiaa/go-itinerary-generator/internal/container"
	"github.com/FACorreiaa/go-itinerary-generator/internal/router"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	logger := setupLogger(cfg.Mode)
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, &cfg, logger); err != nil {
		logger.Error("Application exited with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Application shut down complete.")
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	providers, err := tracer.InitTracingAndMetrics()
	if err != nil {
		return err
	}
	metrics.InitAppMetrics()

	c, err := container.NewContainer(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to build container: %w", err)
	}
	defer c.Close()

	handler := router.SetupRouter(&router.Config{
		Logger:            logger,
		CityHandler:       c.CityHandler,
		ItineraryHandler:  c.ItineraryHandler,
		AllowedOrigins:    cfg.CORS.AllowedOrigins,
		RateLimitRequests: cfg.RateLimit.Requests,
		RateLimitWindow:   cfg.RateLimit.Window,
		RequestTimeout:    cfg.Server.Timeout,
	})

	servers := []*http.Server{newServer(":"+cfg.Server.HTTPPort, handler, cfg.Server.Timeout, logger)}
	if cfg.Handlers.Prometheus.Enabled {
		metricsRouter := chi.NewRouter()
		metricsRouter.Handle("/metrics", providers.Handler())
		servers = append(servers, newServer(":"+cfg.Handlers.Prometheus.Port, metricsRouter, 10*time.Second, logger))
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		g.Go(func() error {
			logger.Info("Starting HTTP server", slog.String("address", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server %s: %w", srv.Addr, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received, starting graceful shutdown...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		var errs []error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("shutdown %s: %w", srv.Addr, err))
			}
		}
		if err := providers.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, err)
		}
		return errors.Join(errs...)
	})

	return g.Wait()
}

func newServer(addr string, handler http.Handler, writeTimeout time.Duration, logger *slog.Logger) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: writeTimeout + 5*time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
}

func setupLogger(mode string) *slog.Logger {
	if mode == "production" {
		return appLogger.New(os.Stdout, mode, slog.LevelInfo)
	}
	return appLogger.New(os.Stdout, "development", slog.LevelDebug)
}
