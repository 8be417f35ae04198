package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	appLogger "github.com/FACorreiaa/go-itinerary-generator/app/logger"
	appMiddleware "github.com/FACorreiaa/go-itinerary-generator/app/middleware"
	"github.com/FACorreiaa/go-itinerary-generator/internal/api/city"
	"github.com/FACorreiaa/go-itinerary-generator/internal/api/itinerary"
)

// Config contains the dependencies needed for the router setup.
type Config struct {
	Logger           *slog.Logger
	CityHandler      *city.Handler
	ItineraryHandler *itinerary.Handler
	AllowedOrigins   []string
	// RateLimitRequests per RateLimitWindow per client IP on model-backed routes; <= 0 disables it.
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RequestTimeout    time.Duration
}

// SetupRouter builds the full HTTP handler including server-wide middleware.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(appLogger.StructuredLogger(cfg.Logger))
	r.Use(middleware.Recoverer)
	r.Use(appMiddleware.Metrics)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Location"},
		MaxAge:         300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	var limited []func(http.Handler) http.Handler
	if cfg.RateLimitRequests > 0 {
		limited = append(limited, httprate.LimitByIP(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// /api/generate and /api/validate-city are the paths the browser form posts to.
	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(limited...)
			r.Post("/generate", cfg.ItineraryHandler.Generate)
			r.Post("/validate-city", cfg.CityHandler.ValidateCity)
		})

		r.Route("/v1/itineraries", func(r chi.Router) {
			r.With(limited...).Post("/", cfg.ItineraryHandler.CreateItinerary)
			r.Get("/{id}", cfg.ItineraryHandler.GetItinerary)
			r.Post("/{id}/days/{dayIndex}/activities", cfg.ItineraryHandler.AddActivity)
			r.Put("/{id}/days/{dayIndex}/activities/{activityIndex}", cfg.ItineraryHandler.UpdateActivity)
			r.Delete("/{id}/days/{dayIndex}/activities/{activityIndex}", cfg.ItineraryHandler.DeleteActivity)
		})
	})

	return r
}
