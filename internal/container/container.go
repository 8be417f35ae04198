package container

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/patrickmn/go-cache"

	database "github.com/FACorreiaa/go-itinerary-generator/app/db"
	"github.com/FACorreiaa/go-itinerary-generator/config"
	"github.com/FACorreiaa/go-itinerary-generator/internal/api/city"
	generativeAI "github.com/FACorreiaa/go-itinerary-generator/internal/api/generative_ai"
	"github.com/FACorreiaa/go-itinerary-generator/internal/api/itinerary"
	llmInteraction "github.com/FACorreiaa/go-itinerary-generator/internal/api/llm_interaction"
	"github.com/FACorreiaa/go-itinerary-generator/internal/types"
)

// Container holds all application dependencies.
type Container struct {
	Config           *config.Config
	Logger           *slog.Logger
	Pool             *pgxpool.Pool
	CityService      city.Service
	ItineraryService itinerary.Service
	CityHandler      *city.Handler
	ItineraryHandler *itinerary.Handler
}

type Option func(*options)

type options struct {
	generator generativeAI.ContentGenerator
}

// WithGenerator replaces the Gemini client, e.g. with a fake in tests.
func WithGenerator(g generativeAI.ContentGenerator) Option {
	return func(o *options) { o.generator = g }
}

// NewContainer wires repositories, services and handlers from cfg.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...Option) (*Container, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	c := &Container{Config: cfg, Logger: logger}

	var repo llmInteraction.Repository = llmInteraction.NoopRepository{}
	if cfg.Repositories.Postgres.Enabled {
		pool, err := openDatabase(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		c.Pool = pool
		repo = llmInteraction.NewPostgresLlmInteractionRepo(pool, logger)
	}
	recorder := llmInteraction.NewRecorder(repo, logger)

	generator := o.generator
	if generator == nil {
		aiClient, err := generativeAI.NewAIClient(ctx, cfg.LLM.APIKey, cfg.LLM.Timeout)
		switch {
		case errors.Is(err, types.ErrMissingAPIKey):
			logger.Warn("GOOGLE_GEMINI_API_KEY is not set, model-backed endpoints will fail")
			generator = generativeAI.UnconfiguredClient{}
		case err != nil:
			c.Close()
			return nil, fmt.Errorf("failed to create AI client: %w", err)
		default:
			generator = aiClient
		}
	}

	answers := cache.New(cfg.Cache.CityCheckTTL, cfg.Cache.CleanupInterval)
	cityService := city.NewCityService(generator, cfg.LLM.ValidationModel, answers, recorder, logger)

	store := itinerary.NewMemorySessionStore(cfg.Itinerary.SessionTTL, cfg.Cache.CleanupInterval)
	itineraryService := itinerary.NewItineraryService(generator, cityService, store, recorder, itinerary.Options{
		Model:               cfg.LLM.Model,
		Temperature:         cfg.LLM.Temperature,
		ValidateDestination: cfg.Itinerary.ValidateDestination,
	}, logger)

	c.CityService = cityService
	c.ItineraryService = itineraryService
	c.CityHandler = city.NewCityHandler(cityService, logger)
	c.ItineraryHandler = itinerary.NewItineraryHandler(itineraryService, logger)
	return c, nil
}

func openDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	dbConfig, err := database.NewDatabaseConfig(cfg, logger)
	if err != nil {
		return nil, err
	}
	if err = database.RunMigrations(dbConfig.ConnectionURL, logger); err != nil {
		return nil, err
	}
	pool, err := database.Init(ctx, dbConfig.ConnectionURL, logger)
	if err != nil {
		return nil, err
	}
	if !database.WaitForDB(ctx, pool, logger) {
		pool.Close()
		return nil, errors.New("database not ready after waiting")
	}
	return pool, nil
}

// Close releases all resources held by the container.
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
		c.Logger.Info("Database connection pool closed")
	}
}
