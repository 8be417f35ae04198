package city

import (
	"errors"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
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

func NewCityHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
	}
}

// ValidateCity handles POST /api/validate-city.
func (h *Handler) ValidateCity(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("CityHandler").Start(r.Context(), "ValidateCity", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/validate-city"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "ValidateCity"))

	var req types.CityCheckRequest
	if err := api.DecodeJSONBody(w, r, &req, api.AllowUnknownFields()); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		span.SetStatus(codes.Error, "invalid body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	valid, err := h.service.ValidateCity(ctx, req.City)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")
		if errors.Is(err, types.ErrCityRequired) {
			api.ErrorResponse(w, r, http.StatusBadRequest, types.ErrCityRequired.Error())
			return
		}
		l.ErrorContext(ctx, "City validation failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	span.SetStatus(codes.Ok, "")
	api.WriteJSONResponse(w, r, http.StatusOK, types.CityCheckResponse{IsValid: valid})
}
