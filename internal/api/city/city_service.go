package city

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-itinerary-generator/app/observability/metrics"
	generativeAI "github.com/FACorreiaa/go-itinerary-generator/internal/api/generative_ai"
	llmInteraction "github.com/FACorreiaa/go-itinerary-generator/internal/api/llm_interaction"
	"github.com/FACorreiaa/go-itinerary-generator/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service answers whether a free-text destination list names real places.
type Service interface {
	ValidateCity(ctx context.Context, city string) (bool, error)
}

type ServiceImpl struct {
	logger   *slog.Logger
	aiClient generativeAI.ContentGenerator
	model    string
	cache    *cache.Cache
	recorder *llmInteraction.Recorder
}

// NewCityService builds the service. A nil cache disables caching.
func NewCityService(aiClient generativeAI.ContentGenerator, model string, answers *cache.Cache, recorder *llmInteraction.Recorder, logger *slog.Logger) *ServiceImpl {
	if model == "" {
		model = generativeAI.DefaultModel
	}
	return &ServiceImpl{
		logger:   logger,
		aiClient: aiClient,
		model:    model,
		cache:    answers,
		recorder: recorder,
	}
}

func (s *ServiceImpl) ValidateCity(ctx context.Context, city string) (bool, error) {
	ctx, span := otel.Tracer("CityService").Start(ctx, "ValidateCity", trace.WithAttributes(
		attribute.String("city.query", city),
	))
	defer span.End()

	city = strings.TrimSpace(city)
	if city == "" {
		span.SetStatus(codes.Error, "city required")
		return false, types.ErrCityRequired
	}

	m := metrics.Get()
	key := cacheKey(city)
	if s.cache != nil {
		if v, found := s.cache.Get(key); found {
			if valid, ok := v.(bool); ok {
				m.CityCheckCacheHitsTotal.Add(ctx, 1)
				span.SetAttributes(attribute.Bool("city.cache_hit", true), attribute.Bool("city.valid", valid))
				return valid, nil
			}
		}
	}

	prompt := cityCheckPrompt(city)
	start := time.Now()
	resp, err := s.aiClient.GenerateResponse(ctx, s.model, prompt, cityCheckConfig())
	m.LLMRequestDuration.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("request_type", types.InteractionCityCheck)))
	answer := generativeAI.FirstText(resp)
	s.recorder.Record(ctx, types.InteractionCityCheck, s.model, prompt, answer, resp, start, err)
	if err != nil {
		s.logger.ErrorContext(ctx, "City validation call failed", slog.String("city", city), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "model call failed")
		return false, err
	}

	valid := isAffirmative(answer)
	s.logger.DebugContext(ctx, "City validation answered",
		slog.String("city", city),
		slog.String("answer", answer),
		slog.Bool("valid", valid))
	m.CityChecksTotal.Add(ctx, 1, metric.WithAttributes(attribute.Bool("valid", valid)))
	span.SetAttributes(attribute.Bool("city.valid", valid))
	span.SetStatus(codes.Ok, "")

	if s.cache != nil {
		s.cache.SetDefault(key, valid)
	}
	return valid, nil
}
