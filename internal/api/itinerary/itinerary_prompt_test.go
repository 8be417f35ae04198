package itinerary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-itinerary-generator/internal/types"
)

func TestItineraryPrompt_DefaultPreferences(t *testing.T) {
	prompt := itineraryPrompt(types.TripRequest{City: "東京, 京都", StartDate: "2026-11-01", EndDate: "2026-11-05"})

	assert.Contains(t, prompt, "請為我規劃一份在多個城市「東京, 京都」的旅遊行程，日期從 2026-11-01 到 2026-11-05。")
	assert.Contains(t, prompt, "請嚴格按照使用者輸入的順序來規劃行程：東京, 京都。")
	assert.Contains(t, prompt, "我的旅行需求如下：\n"+defaultPreferences)
	assert.NotContains(t, prompt, "重要航班資訊")
	assert.True(t, strings.HasSuffix(prompt, "請以繁體中文回覆，並嚴格遵循指定的 JSON schema 格式。"))
}

func TestItineraryPrompt_PreferencesAndFlights(t *testing.T) {
	req := types.TripRequest{
		City:          "Lisbon",
		StartDate:     "2026-11-01",
		EndDate:       "2026-11-03",
		TripPurpose:   "美食",
		Companions:    "家庭",
		Preferences:   "不要太早起床",
		DepartureTime: "18:30",
	}
	prompt := itineraryPrompt(req)

	assert.Contains(t, prompt, "旅行目的: 美食； 同行者: 家庭； 其他偏好: 不要太早起床")
	assert.NotContains(t, prompt, "旅行節奏")
	assert.NotContains(t, prompt, "預算範圍")
	assert.NotContains(t, prompt, defaultPreferences)

	assert.Contains(t, prompt, "重要航班資訊：\n最後一天的航班離開時間是 18:30。")
	assert.NotContains(t, prompt, "第一天的航班抵達時間")
}

func TestFlightDetails_Order(t *testing.T) {
	lines := flightDetails(types.TripRequest{ArrivalTime: "09:00", DepartureTime: "21:00"})
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "第一天的航班抵達時間是 09:00"))
	assert.True(t, strings.HasPrefix(lines[1], "最後一天的航班離開時間是 21:00"))
}

func TestGenerationConfig(t *testing.T) {
	cfg := generationConfig(nil)
	assert.Nil(t, cfg.Temperature)
	require.Len(t, cfg.Tools, 1)
	require.Len(t, cfg.Tools[0].FunctionDeclarations, 1)

	decl := cfg.Tools[0].FunctionDeclarations[0]
	assert.Equal(t, formatItineraryFunction, decl.Name)
	assert.Equal(t, []string{"tripTitle", "dailyPlans"}, decl.Parameters.Required)

	day := decl.Parameters.Properties["dailyPlans"].Items
	assert.Equal(t, []string{"date", "day", "activities"}, day.Required)
	activity := day.Properties["activities"].Items
	assert.Equal(t, []string{"time", "title", "description"}, activity.Required)

	assert.Equal(t, genai.FunctionCallingConfigModeAny, cfg.ToolConfig.FunctionCallingConfig.Mode)
	assert.Equal(t, []string{formatItineraryFunction}, cfg.ToolConfig.FunctionCallingConfig.AllowedFunctionNames)

	withTemp := generationConfig(genai.Ptr[float32](0.7))
	require.NotNil(t, withTemp.Temperature)
	assert.InDelta(t, 0.7, *withTemp.Temperature, 1e-6)

	zero := float32(0)
	greedy := generationConfig(&zero)
	require.NotNil(t, greedy.Temperature)
	assert.Equal(t, float32(0), *greedy.Temperature)
	zero = 1
	assert.Equal(t, float32(0), *greedy.Temperature, "config must not alias the caller's value")
}
