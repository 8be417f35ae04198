package tripclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/FACorreiaa/go-itinerary-generator/internal/types"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// Client talks to the itinerary HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) ValidateCity(ctx context.Context, city string) (bool, error) {
	var out types.CityCheckResponse
	if err := c.do(ctx, http.MethodPost, "/api/validate-city", types.CityCheckRequest{City: city}, &out); err != nil {
		return false, err
	}
	return out.IsValid, nil
}

func (c *Client) Generate(ctx context.Context, req types.TripRequest) (*types.Itinerary, error) {
	var out types.Itinerary
	if err := c.do(ctx, http.MethodPost, "/api/generate", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateItinerary(ctx context.Context, req types.TripRequest) (*types.ItinerarySession, error) {
	var out types.ItinerarySession
	if err := c.do(ctx, http.MethodPost, "/api/v1/itineraries", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetItinerary(ctx context.Context, id uuid.UUID) (*types.ItinerarySession, error) {
	var out types.ItinerarySession
	if err := c.do(ctx, http.MethodGet, "/api/v1/itineraries/"+id.String(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddActivity(ctx context.Context, id uuid.UUID, dayIndex int) (*types.ItinerarySession, error) {
	var out types.ItinerarySession
	path := fmt.Sprintf("/api/v1/itineraries/%s/days/%d/activities", id, dayIndex)
	if err := c.do(ctx, http.MethodPost, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateActivity(ctx context.Context, id uuid.UUID, dayIndex, activityIndex int, activity types.Activity) (*types.ItinerarySession, error) {
	var out types.ItinerarySession
	path := fmt.Sprintf("/api/v1/itineraries/%s/days/%d/activities/%d", id, dayIndex, activityIndex)
	if err := c.do(ctx, http.MethodPut, path, activity, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteActivity(ctx context.Context, id uuid.UUID, dayIndex, activityIndex int) (*types.ItinerarySession, error) {
	var out types.ItinerarySession
	path := fmt.Sprintf("/api/v1/itineraries/%s/days/%d/activities/%d", id, dayIndex, activityIndex)
	if err := c.do(ctx, http.MethodDelete, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload struct {
			Error string `json:"error"`
		}
		msg := strings.TrimSpace(string(raw))
		if json.Unmarshal(raw, &payload) == nil && payload.Error != "" {
			msg = payload.Error
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
