package city

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-itinerary-generator/internal/types"
)

type MockCityService struct {
	mock.Mock
}

func (m *MockCityService) ValidateCity(ctx context.Context, city string) (bool, error) {
	args := m.Called(ctx, city)
	return args.Bool(0), args.Error(1)
}

func TestHandler_ValidateCity(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(*MockCityService)
		wantStatus int
		wantBody   map[string]interface{}
	}{
		{
			name: "valid destination",
			body: `{"city":"Tokyo, Kyoto"}`,
			setup: func(s *MockCityService) {
				s.On("ValidateCity", mock.Anything, "Tokyo, Kyoto").Return(true, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   map[string]interface{}{"isValid": true},
		},
		{
			name: "extra keys are ignored",
			body: `{"city":"Osaka","lang":"zh-TW"}`,
			setup: func(s *MockCityService) {
				s.On("ValidateCity", mock.Anything, "Osaka").Return(true, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   map[string]interface{}{"isValid": true},
		},
		{
			name: "unknown destination",
			body: `{"city":"Asdfgh"}`,
			setup: func(s *MockCityService) {
				s.On("ValidateCity", mock.Anything, "Asdfgh").Return(false, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   map[string]interface{}{"isValid": false},
		},
		{
			name: "blank city",
			body: `{"city":"  "}`,
			setup: func(s *MockCityService) {
				s.On("ValidateCity", mock.Anything, "  ").Return(false, types.ErrCityRequired)
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   map[string]interface{}{"error": "City is required"},
		},
		{
			name: "upstream failure",
			body: `{"city":"Paris"}`,
			setup: func(s *MockCityService) {
				s.On("ValidateCity", mock.Anything, "Paris").
					Return(false, fmt.Errorf("%w: quota exceeded", types.ErrUpstreamFailure))
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   map[string]interface{}{"error": "Google AI API request failed: quota exceeded"},
		},
		{
			name:       "malformed body",
			body:       `{"city":`,
			setup:      func(*MockCityService) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockCityService)
			tt.setup(svc)
			h := NewCityHandler(svc, discardLogger())

			req := httptest.NewRequest(http.MethodPost, "/api/validate-city", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			h.ValidateCity(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			for k, v := range tt.wantBody {
				assert.Equal(t, v, body[k])
			}
			svc.AssertExpectations(t)
		})
	}
}
