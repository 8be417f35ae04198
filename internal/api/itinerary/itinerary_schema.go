package itinerary

import "google.golang.org/genai"

const formatItineraryFunction = "format_itinerary"

func itinerarySchema() *genai.Schema {
	activity := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"time":        {Type: genai.TypeString, Description: "建議時間區間，例如 '早上 9:00 - 12:00'"},
			"title":       {Type: genai.TypeString, Description: "活動或景點名稱，可包含所在城市，例如 '[東京] 參觀淺草寺'"},
			"description": {Type: genai.TypeString, Description: "活動的簡短描述，包含地點特色或建議"},
		},
		Required: []string{"time", "title", "description"},
	}
	day := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"date":       {Type: genai.TypeString, Description: "當天日期，格式 YYYY-MM-DD"},
			"day":        {Type: genai.TypeString, Description: "行程的第幾天，例如 '第一天'"},
			"activities": {Type: genai.TypeArray, Description: "當天的活動列表", Items: activity},
		},
		Required: []string{"date", "day", "activities"},
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"tripTitle":  {Type: genai.TypeString, Description: "行程的總標題，例如 '日本關東關西十日遊'"},
			"dailyPlans": {Type: genai.TypeArray, Description: "每日行程規劃的陣列", Items: day},
		},
		Required: []string{"tripTitle", "dailyPlans"},
	}
}

// generationConfig forces a single format_itinerary call. A nil temperature
// keeps the model default.
func generationConfig(temperature *float32) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{
			FunctionDeclarations: []*genai.FunctionDeclaration{{
				Name:        formatItineraryFunction,
				Description: "Formats the itinerary into the specified JSON structure.",
				Parameters:  itinerarySchema(),
			}},
		}},
		ToolConfig: &genai.ToolConfig{
			FunctionCallingConfig: &genai.FunctionCallingConfig{
				Mode:                 genai.FunctionCallingConfigModeAny,
				AllowedFunctionNames: []string{formatItineraryFunction},
			},
		},
	}
	if temperature != nil {
		cfg.Temperature = genai.Ptr(*temperature)
	}
	return cfg
}
