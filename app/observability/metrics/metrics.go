package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	HTTPRequestsTotal         metric.Int64Counter
	HTTPRequestDuration       metric.Float64Histogram
	ItineraryGenerationsTotal metric.Int64Counter
	ItineraryErrorsTotal      metric.Int64Counter
	CityChecksTotal           metric.Int64Counter
	CityCheckCacheHitsTotal   metric.Int64Counter
	LLMRequestDuration        metric.Float64Histogram
	ActivityEditsTotal        metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics creates the instruments once, from the global MeterProvider.
// Call it after the provider is installed or the instruments stay no-op.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("go-itinerary-generator")
		m := &AppMetrics{}
		var err error

		m.HTTPRequestsTotal, err = meter.Int64Counter(
			"http_requests_total",
			metric.WithDescription("Total number of HTTP requests served"),
			metric.WithUnit("{request}"),
		)
		must("http_requests_total", err)

		m.HTTPRequestDuration, err = meter.Float64Histogram(
			"http_request_duration_seconds",
			metric.WithDescription("Duration of HTTP requests in seconds"),
			metric.WithUnit("s"),
		)
		must("http_request_duration_seconds", err)

		m.ItineraryGenerationsTotal, err = meter.Int64Counter(
			"itinerary_generations_total",
			metric.WithDescription("Itineraries successfully generated by the model"),
			metric.WithUnit("{itinerary}"),
		)
		must("itinerary_generations_total", err)

		m.ItineraryErrorsTotal, err = meter.Int64Counter(
			"itinerary_generation_errors_total",
			metric.WithDescription("Itinerary generations that failed"),
			metric.WithUnit("{error}"),
		)
		must("itinerary_generation_errors_total", err)

		m.CityChecksTotal, err = meter.Int64Counter(
			"city_checks_total",
			metric.WithDescription("Destination checks answered, by outcome"),
			metric.WithUnit("{check}"),
		)
		must("city_checks_total", err)

		m.CityCheckCacheHitsTotal, err = meter.Int64Counter(
			"city_check_cache_hits_total",
			metric.WithDescription("Destination checks answered from cache"),
			metric.WithUnit("{check}"),
		)
		must("city_check_cache_hits_total", err)

		m.LLMRequestDuration, err = meter.Float64Histogram(
			"llm_request_duration_seconds",
			metric.WithDescription("Latency of calls to the generative model"),
			metric.WithUnit("s"),
		)
		must("llm_request_duration_seconds", err)

		m.ActivityEditsTotal, err = meter.Int64Counter(
			"itinerary_activity_edits_total",
			metric.WithDescription("Activity add, update and delete operations"),
			metric.WithUnit("{edit}"),
		)
		must("itinerary_activity_edits_total", err)

		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

func must(name string, err error) {
	if err != nil {
		log.Fatalf("Metrics: Failed to create %s: %v", name, err)
	}
}

// Get returns the instruments, initialising them on first use.
func Get() *AppMetrics {
	InitAppMetrics()
	return appMetrics
}
