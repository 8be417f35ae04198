package itinerary

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-itinerary-generator/internal/api"
	"github.com/FACorreiaa/go-itinerary-generator/internal/types"
)

type Handler struct {
	logger  *slog.Logger
	service Service
}

func NewItineraryHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
	}
}

// CreateSessionResponse is returned by POST /api/v1/itineraries.
type CreateSessionResponse struct {
	ID        uuid.UUID       `json:"id"`
	Itinerary types.Itinerary `json:"itinerary"`
}

// Generate handles POST /api/generate and returns the bare itinerary.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "Generate", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/generate"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Generate"))

	// the browser form may post extra keys, which are ignored
	var req types.TripRequest
	if err := api.DecodeJSONBody(w, r, &req, api.AllowUnknownFields()); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		span.SetStatus(codes.Error, "invalid body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	itinerary, err := h.service.GenerateItinerary(ctx, req)
	if err != nil {
		h.fail(w, r, l, span, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	api.WriteJSONResponse(w, r, http.StatusOK, itinerary)
}

// CreateItinerary handles POST /api/v1/itineraries.
func (h *Handler) CreateItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "CreateItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/itineraries"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "CreateItinerary"))

	var req types.TripRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		span.SetStatus(codes.Error, "invalid body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	session, err := h.service.CreateSession(ctx, req)
	if err != nil {
		h.fail(w, r, l, span, err)
		return
	}

	span.SetAttributes(attribute.String("itinerary.id", session.ID.String()))
	span.SetStatus(codes.Ok, "")
	w.Header().Set("Location", "/api/v1/itineraries/"+session.ID.String())
	api.WriteJSONResponse(w, r, http.StatusCreated, CreateSessionResponse{ID: session.ID, Itinerary: session.Itinerary})
}

// GetItinerary handles GET /api/v1/itineraries/{id}.
func (h *Handler) GetItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "GetItinerary")
	defer span.End()

	l := h.logger.With(slog.String("handler", "GetItinerary"))

	id, err := parseItineraryID(r)
	if err != nil {
		h.fail(w, r, l, span, err)
		return
	}

	session, err := h.service.GetSession(ctx, id)
	if err != nil {
		h.fail(w, r, l, span, err)
		return
	}
	span.SetStatus(codes.Ok, "")
	api.WriteJSONResponse(w, r, http.StatusOK, session)
}

// AddActivity handles POST /api/v1/itineraries/{id}/days/{dayIndex}/activities.
func (h *Handler) AddActivity(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "AddActivity")
	defer span.End()

	l := h.logger.With(slog.String("handler", "AddActivity"))

	id, err := parseItineraryID(r)
	if err != nil {
		h.fail(w, r, l, span, err)
		return
	}
	dayIndex, err := parseIndex(r, "dayIndex")
	if err != nil {
		h.fail(w, r, l, span, err)
		return
	}

	session, err := h.service.AddActivity(ctx, id, dayIndex)
	if err != nil {
		h.fail(w, r, l, span, err)
		return
	}
	span.SetStatus(codes.Ok, "")
	api.WriteJSONResponse(w, r, http.StatusCreated, session)
}

// UpdateActivity handles PUT /api/v1/itineraries/{id}/days/{dayIndex}/activities/{activityIndex}.
func (h *Handler) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "UpdateActivity")
	defer span.End()

	l := h.logger.With(slog.String("handler", "UpdateActivity"))

	id, dayIndex, activityIndex, err := parseActivityPath(r)
	if err != nil {
		h.fail(w, r, l, span, err)
		return
	}

	var activity types.Activity
	if err := api.DecodeJSONBody(w, r, &activity); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		span.SetStatus(codes.Error, "invalid body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	session, err := h.service.UpdateActivity(ctx, id, dayIndex, activityIndex, activity)
	if err != nil {
		h.fail(w, r, l, span, err)
		return
	}
	span.SetStatus(codes.Ok, "")
	api.WriteJSONResponse(w, r, http.StatusOK, session)
}

// DeleteActivity handles DELETE /api/v1/itineraries/{id}/days/{dayIndex}/activities/{activityIndex}.
func (h *Handler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "DeleteActivity")
	defer span.End()

	l := h.logger.With(slog.String("handler", "DeleteActivity"))

	id, dayIndex, activityIndex, err := parseActivityPath(r)
	if err != nil {
		h.fail(w, r, l, span, err)
		return
	}

	session, err := h.service.DeleteActivity(ctx, id, dayIndex, activityIndex)
	if err != nil {
		h.fail(w, r, l, span, err)
		return
	}
	span.SetStatus(codes.Ok, "")
	api.WriteJSONResponse(w, r, http.StatusOK, session)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, l *slog.Logger, span trace.Span, err error) {
	status := statusFor(err)
	span.RecordError(err)
	span.SetStatus(codes.Error, http.StatusText(status))
	if status >= http.StatusInternalServerError {
		l.ErrorContext(r.Context(), "Request failed", slog.Any("error", err))
	} else {
		l.WarnContext(r.Context(), "Request rejected", slog.Int("status", status), slog.Any("error", err))
	}
	api.ErrorResponse(w, r, status, err.Error())
}

// statusFor maps service errors to HTTP status codes. Model failures stay 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, types.ErrMissingFields),
		errors.Is(err, types.ErrInvalidDate),
		errors.Is(err, types.ErrInvalidDateRange),
		errors.Is(err, types.ErrStartDateInPast),
		errors.Is(err, types.ErrFieldTooLong),
		errors.Is(err, types.ErrCityRequired),
		errors.Is(err, types.ErrInvalidIndex),
		errors.Is(err, types.ErrInvalidActivity),
		errors.Is(err, types.ErrInvalidItineraryID):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrUnknownDestination):
		return http.StatusUnprocessableEntity
	case errors.Is(err, types.ErrItineraryNotFound),
		errors.Is(err, types.ErrDayNotFound),
		errors.Is(err, types.ErrActivityNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func parseItineraryID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", types.ErrInvalidItineraryID, raw)
	}
	return id, nil
}

func parseIndex(r *http.Request, param string) (int, error) {
	raw := chi.URLParam(r, param)
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s=%q", types.ErrInvalidIndex, param, raw)
	}
	return n, nil
}

func parseActivityPath(r *http.Request) (uuid.UUID, int, int, error) {
	id, err := parseItineraryID(r)
	if err != nil {
		return uuid.Nil, 0, 0, err
	}
	dayIndex, err := parseIndex(r, "dayIndex")
	if err != nil {
		return uuid.Nil, 0, 0, err
	}
	activityIndex, err := parseIndex(r, "activityIndex")
	if err != nil {
		return uuid.Nil, 0, 0, err
	}
	return id, dayIndex, activityIndex, nil
}
