package itinerary

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-itinerary-generator/internal/types"
)

type MockContentGenerator struct {
	mock.Mock
}

func (m *MockContentGenerator) GenerateResponse(ctx context.Context, model, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	args := m.Called(ctx, model, prompt, config)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*genai.GenerateContentResponse), args.Error(1)
}

type MockCityService struct {
	mock.Mock
}

func (m *MockCityService) ValidateCity(ctx context.Context, city string) (bool, error) {
	args := m.Called(ctx, city)
	return args.Bool(0), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func functionCallResponse(args map[string]any) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []*genai.Part{
			{FunctionCall: &genai.FunctionCall{Name: formatItineraryFunction, Args: args}},
		}}}},
	}
}

func sampleArgs() map[string]any {
	return map[string]any{
		"tripTitle": "東京三日遊",
		"dailyPlans": []any{
			map[string]any{
				"date": "2026-11-01",
				"day":  "第一天",
				"activities": []any{
					map[string]any{"time": "09:00 - 12:00", "title": "[東京] 參觀淺草寺", "description": "早點到"},
				},
			},
			map[string]any{"date": "2026-11-02", "day": "第二天"},
		},
	}
}

func validRequest() types.TripRequest {
	return types.TripRequest{City: " 東京 ", StartDate: "2026-11-01", EndDate: "2026-11-02"}
}

func newTestService(ai *MockContentGenerator, cities *MockCityService, validate bool) *ServiceImpl {
	var svc *ServiceImpl
	if cities == nil {
		svc = NewItineraryService(ai, nil, NewMemorySessionStore(time.Hour, time.Hour), nil,
			Options{ValidateDestination: validate}, discardLogger())
	} else {
		svc = NewItineraryService(ai, cities, NewMemorySessionStore(time.Hour, time.Hour), nil,
			Options{ValidateDestination: validate}, discardLogger())
	}
	svc.now = func() time.Time { return time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC) }
	return svc
}

func TestServiceImpl_GenerateItinerary(t *testing.T) {
	ctx := context.Background()

	t.Run("parses function call args", func(t *testing.T) {
		ai := new(MockContentGenerator)
		ai.On("GenerateResponse", mock.Anything, "gemini-2.5-flash", mock.AnythingOfType("string"), mock.Anything).
			Return(functionCallResponse(sampleArgs()), nil)
		svc := newTestService(ai, nil, false)

		it, err := svc.GenerateItinerary(ctx, validRequest())
		require.NoError(t, err)
		assert.Equal(t, "東京三日遊", it.TripTitle)
		require.Len(t, it.DailyPlans, 2)
		assert.Equal(t, "[東京] 參觀淺草寺", it.DailyPlans[0].Activities[0].Title)
		assert.NotNil(t, it.DailyPlans[1].Activities)
		assert.Empty(t, it.DailyPlans[1].Activities)

		prompt := ai.Calls[0].Arguments.String(2)
		assert.Contains(t, prompt, "「東京」")
	})

	t.Run("missing fields never reach the model", func(t *testing.T) {
		ai := new(MockContentGenerator)
		svc := newTestService(ai, nil, false)

		_, err := svc.GenerateItinerary(ctx, types.TripRequest{City: "東京", StartDate: "2026-11-01"})
		assert.ErrorIs(t, err, types.ErrMissingFields)
		ai.AssertNotCalled(t, "GenerateResponse", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("past dates are accepted by the proxy", func(t *testing.T) {
		ai := new(MockContentGenerator)
		ai.On("GenerateResponse", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(functionCallResponse(sampleArgs()), nil)
		svc := newTestService(ai, nil, false)

		_, err := svc.GenerateItinerary(ctx, types.TripRequest{City: "東京", StartDate: "2020-01-01", EndDate: "2020-01-02"})
		assert.NoError(t, err)
	})

	t.Run("text answer without function call", func(t *testing.T) {
		ai := new(MockContentGenerator)
		ai.On("GenerateResponse", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []*genai.Part{{Text: "抱歉"}}}},
			}}, nil)
		svc := newTestService(ai, nil, false)

		_, err := svc.GenerateItinerary(ctx, validRequest())
		assert.ErrorIs(t, err, types.ErrNoItineraryData)
	})

	t.Run("incomplete itinerary", func(t *testing.T) {
		ai := new(MockContentGenerator)
		ai.On("GenerateResponse", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(functionCallResponse(map[string]any{"tripTitle": "x"}), nil)
		svc := newTestService(ai, nil, false)

		_, err := svc.GenerateItinerary(ctx, validRequest())
		assert.ErrorIs(t, err, types.ErrNoItineraryData)
		assert.ErrorIs(t, err, types.ErrInvalidItinerary)
	})

	t.Run("upstream failure is passed through", func(t *testing.T) {
		ai := new(MockContentGenerator)
		ai.On("GenerateResponse", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, types.ErrUpstreamFailure)
		svc := newTestService(ai, nil, false)

		_, err := svc.GenerateItinerary(ctx, validRequest())
		assert.True(t, errors.Is(err, types.ErrUpstreamFailure))
	})
}

func TestServiceImpl_CreateSession(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects past start date", func(t *testing.T) {
		ai := new(MockContentGenerator)
		svc := newTestService(ai, nil, false)

		_, err := svc.CreateSession(ctx, types.TripRequest{City: "東京", StartDate: "2026-10-16", EndDate: "2026-10-18"})
		assert.ErrorIs(t, err, types.ErrStartDateInPast)
	})

	t.Run("unknown destination", func(t *testing.T) {
		ai := new(MockContentGenerator)
		cities := new(MockCityService)
		cities.On("ValidateCity", mock.Anything, "Qwerty").Return(false, nil)
		svc := newTestService(ai, cities, true)

		_, err := svc.CreateSession(ctx, types.TripRequest{City: "Qwerty", StartDate: "2026-11-01", EndDate: "2026-11-02"})
		assert.ErrorIs(t, err, types.ErrUnknownDestination)
		ai.AssertNotCalled(t, "GenerateResponse", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("creates, edits and reads back a session", func(t *testing.T) {
		ai := new(MockContentGenerator)
		ai.On("GenerateResponse", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(functionCallResponse(sampleArgs()), nil)
		cities := new(MockCityService)
		cities.On("ValidateCity", mock.Anything, "東京").Return(true, nil)
		svc := newTestService(ai, cities, true)

		session, err := svc.CreateSession(ctx, validRequest())
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, session.ID)
		assert.Equal(t, "東京", session.Request.City)

		added, err := svc.AddActivity(ctx, session.ID, 1)
		require.NoError(t, err)
		assert.Equal(t, []types.Activity{types.DefaultActivity}, added.Itinerary.DailyPlans[1].Activities)

		edited := types.Activity{Time: "14:00 - 16:00", Title: "[東京] 築地", Description: "吃壽司"}
		updated, err := svc.UpdateActivity(ctx, session.ID, 1, 0, edited)
		require.NoError(t, err)
		assert.Equal(t, edited, updated.Itinerary.DailyPlans[1].Activities[0])

		deleted, err := svc.DeleteActivity(ctx, session.ID, 0, 0)
		require.NoError(t, err)
		assert.Empty(t, deleted.Itinerary.DailyPlans[0].Activities)

		got, err := svc.GetSession(ctx, session.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Itinerary.DailyPlans[0].Activities)
		assert.Equal(t, edited, got.Itinerary.DailyPlans[1].Activities[0])

		_, err = svc.DeleteActivity(ctx, session.ID, 5, 0)
		assert.ErrorIs(t, err, types.ErrDayNotFound)
		_, err = svc.UpdateActivity(ctx, session.ID, 0, 0, edited)
		assert.ErrorIs(t, err, types.ErrActivityNotFound)
		_, err = svc.UpdateActivity(ctx, session.ID, 1, 0, types.Activity{Title: "沒有時間"})
		assert.ErrorIs(t, err, types.ErrInvalidActivity)

		unchanged, err := svc.GetSession(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, edited, unchanged.Itinerary.DailyPlans[1].Activities[0])
		assert.NoError(t, unchanged.Itinerary.Validate())

		cities.AssertExpectations(t)
	})

	t.Run("unknown session", func(t *testing.T) {
		svc := newTestService(new(MockContentGenerator), nil, false)
		_, err := svc.GetSession(ctx, uuid.New())
		assert.ErrorIs(t, err, types.ErrItineraryNotFound)
		_, err = svc.AddActivity(ctx, uuid.New(), 0)
		assert.ErrorIs(t, err, types.ErrItineraryNotFound)
	})
}
