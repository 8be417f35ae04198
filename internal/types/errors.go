package types

import "errors"

var (
	ErrMissingFields      = errors.New("Missing required fields")
	ErrInvalidDate        = errors.New("dates must use the YYYY-MM-DD format")
	ErrInvalidDateRange   = errors.New("end date cannot be before start date")
	ErrStartDateInPast    = errors.New("start date cannot be in the past")
	ErrFieldTooLong       = errors.New("field exceeds maximum length")
	ErrCityRequired       = errors.New("City is required")
	ErrUnknownDestination = errors.New("destination does not look like a known city, country or tourist destination")

	ErrMissingAPIKey       = errors.New("API key is not configured")
	ErrUpstreamFailure     = errors.New("Google AI API request failed")
	ErrNoItineraryData     = errors.New("API did not return valid itinerary data")
	ErrInvalidItinerary    = errors.New("itinerary returned by the model is incomplete")
	ErrInvalidActivity     = errors.New("activity time and title are required")
	ErrEmptyModelResponse  = errors.New("model returned an empty response")
	ErrItineraryNotFound   = errors.New("itinerary not found")
	ErrDayNotFound         = errors.New("day not found in itinerary")
	ErrActivityNotFound    = errors.New("activity not found in day plan")
	ErrInvalidIndex        = errors.New("index must be a non-negative integer")
	ErrInvalidItineraryID  = errors.New("invalid itinerary ID format")
	ErrInteractionNotSaved = errors.New("llm interaction was not saved")
)
