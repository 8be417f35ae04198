package itinerary

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-itinerary-generator/app/observability/metrics"
	"github.com/FACorreiaa/go-itinerary-generator/internal/api/city"
	generativeAI "github.com/FACorreiaa/go-itinerary-generator/internal/api/generative_ai"
	llmInteraction "github.com/FACorreiaa/go-itinerary-generator/internal/api/llm_interaction"
	"github.com/FACorreiaa/go-itinerary-generator/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	// GenerateItinerary is the stateless proxy: one model call, no session.
	GenerateItinerary(ctx context.Context, req types.TripRequest) (*types.Itinerary, error)
	CreateSession(ctx context.Context, req types.TripRequest) (*types.ItinerarySession, error)
	GetSession(ctx context.Context, id uuid.UUID) (*types.ItinerarySession, error)
	AddActivity(ctx context.Context, id uuid.UUID, dayIndex int) (*types.ItinerarySession, error)
	UpdateActivity(ctx context.Context, id uuid.UUID, dayIndex, activityIndex int, activity types.Activity) (*types.ItinerarySession, error)
	DeleteActivity(ctx context.Context, id uuid.UUID, dayIndex, activityIndex int) (*types.ItinerarySession, error)
}

type Options struct {
	Model       string
	Temperature *float32
	// ValidateDestination runs the city check before a session is generated.
	ValidateDestination bool
}

type ServiceImpl struct {
	logger   *slog.Logger
	aiClient generativeAI.ContentGenerator
	cities   city.Service
	store    SessionStore
	recorder *llmInteraction.Recorder
	opts     Options
	now      func() time.Time
}

func NewItineraryService(aiClient generativeAI.ContentGenerator, cities city.Service, store SessionStore,
	recorder *llmInteraction.Recorder, opts Options, logger *slog.Logger) *ServiceImpl {
	if opts.Model == "" {
		opts.Model = generativeAI.DefaultModel
	}
	return &ServiceImpl{
		logger:   logger,
		aiClient: aiClient,
		cities:   cities,
		store:    store,
		recorder: recorder,
		opts:     opts,
		now:      time.Now,
	}
}

func (s *ServiceImpl) GenerateItinerary(ctx context.Context, req types.TripRequest) (*types.Itinerary, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "GenerateItinerary")
	defer span.End()

	req.Normalize()
	if err := req.Validate(time.Time{}); err != nil {
		span.SetStatus(codes.Error, "invalid request")
		return nil, err
	}
	return s.generate(ctx, span, req)
}

func (s *ServiceImpl) generate(ctx context.Context, span trace.Span, req types.TripRequest) (*types.Itinerary, error) {
	span.SetAttributes(
		attribute.String("trip.city", req.City),
		attribute.String("trip.start_date", req.StartDate),
		attribute.String("trip.end_date", req.EndDate),
		attribute.Int("trip.days", req.Days()),
	)
	m := metrics.Get()
	l := s.logger.With(slog.String("city", req.City), slog.Int("days", req.Days()))

	prompt := itineraryPrompt(req)
	start := time.Now()
	resp, err := s.aiClient.GenerateResponse(ctx, s.opts.Model, prompt, generationConfig(s.opts.Temperature))
	m.LLMRequestDuration.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("request_type", types.InteractionItinerary)))

	var raw string
	call := generativeAI.FirstFunctionCall(resp)
	if call != nil {
		if b, marshalErr := json.Marshal(call.Args); marshalErr == nil {
			raw = string(b)
		}
	}

	itinerary, parseErr := parseItinerary(err, raw)
	recordErr := err
	if recordErr == nil {
		recordErr = parseErr
	}
	s.recorder.Record(ctx, types.InteractionItinerary, s.opts.Model, prompt, raw, resp, start, recordErr)

	if recordErr != nil {
		l.ErrorContext(ctx, "Itinerary generation failed", slog.Any("error", recordErr))
		m.ItineraryErrorsTotal.Add(ctx, 1)
		span.RecordError(recordErr)
		span.SetStatus(codes.Error, "generation failed")
		return nil, recordErr
	}

	l.InfoContext(ctx, "Itinerary generated",
		slog.String("trip_title", itinerary.TripTitle),
		slog.Int("activities", itinerary.ActivityCount()),
		slog.Duration("latency", time.Since(start)))
	m.ItineraryGenerationsTotal.Add(ctx, 1)
	span.SetStatus(codes.Ok, "")
	return itinerary, nil
}

// parseItinerary decodes the function call arguments. raw is empty when the model sent no call.
func parseItinerary(callErr error, raw string) (*types.Itinerary, error) {
	if callErr != nil {
		return nil, callErr
	}
	if raw == "" || raw == "null" {
		return nil, types.ErrNoItineraryData
	}
	var it types.Itinerary
	if err := json.Unmarshal([]byte(raw), &it); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrNoItineraryData, err)
	}
	if err := it.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrNoItineraryData, err)
	}
	it.Normalize()
	return &it, nil
}

func (s *ServiceImpl) CreateSession(ctx context.Context, req types.TripRequest) (*types.ItinerarySession, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "CreateSession")
	defer span.End()

	req.Normalize()
	if err := req.Validate(s.now().UTC()); err != nil {
		span.SetStatus(codes.Error, "invalid request")
		return nil, err
	}

	if s.opts.ValidateDestination && s.cities != nil {
		valid, err := s.cities.ValidateCity(ctx, req.City)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "destination check failed")
			return nil, err
		}
		if !valid {
			span.SetStatus(codes.Error, "unknown destination")
			return nil, fmt.Errorf("%w: %s", types.ErrUnknownDestination, req.City)
		}
	}

	it, err := s.generate(ctx, span, req)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	session := types.ItinerarySession{
		ID:        uuid.New(),
		Itinerary: *it,
		Request:   req,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store itinerary: %w", err)
	}
	span.SetAttributes(attribute.String("itinerary.id", session.ID.String()))
	s.logger.InfoContext(ctx, "Itinerary session created", slog.String("itinerary_id", session.ID.String()))
	return &session, nil
}

func (s *ServiceImpl) GetSession(ctx context.Context, id uuid.UUID) (*types.ItinerarySession, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *ServiceImpl) AddActivity(ctx context.Context, id uuid.UUID, dayIndex int) (*types.ItinerarySession, error) {
	return s.edit(ctx, id, "add", func(it types.Itinerary) (types.Itinerary, error) {
		return types.AddActivity(it, dayIndex)
	})
}

func (s *ServiceImpl) UpdateActivity(ctx context.Context, id uuid.UUID, dayIndex, activityIndex int, activity types.Activity) (*types.ItinerarySession, error) {
	return s.edit(ctx, id, "update", func(it types.Itinerary) (types.Itinerary, error) {
		return types.UpdateActivity(it, dayIndex, activityIndex, activity)
	})
}

func (s *ServiceImpl) DeleteActivity(ctx context.Context, id uuid.UUID, dayIndex, activityIndex int) (*types.ItinerarySession, error) {
	return s.edit(ctx, id, "delete", func(it types.Itinerary) (types.Itinerary, error) {
		return types.DeleteActivity(it, dayIndex, activityIndex)
	})
}

func (s *ServiceImpl) edit(ctx context.Context, id uuid.UUID, op string, fn func(types.Itinerary) (types.Itinerary, error)) (*types.ItinerarySession, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "EditActivity", trace.WithAttributes(
		attribute.String("itinerary.id", id.String()),
		attribute.String("edit.op", op),
	))
	defer span.End()

	session, err := s.store.Update(ctx, id, fn)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "edit failed")
		return nil, err
	}
	metrics.Get().ActivityEditsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
	span.SetStatus(codes.Ok, "")
	return &session, nil
}
