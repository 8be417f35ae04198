package types

import "github.com/google/uuid"

// LlmInteraction is one model call as recorded in the llm_interactions table.
type LlmInteraction struct {
	ID               uuid.UUID `json:"id"`
	RequestType      string    `json:"request_type"`
	Prompt           string    `json:"prompt"`
	ResponseText     string    `json:"response_text"`
	ModelUsed        string    `json:"model_used"`
	PromptTokens     int       `json:"prompt_tokens"`
	CompletionTokens int       `json:"completion_tokens"`
	TotalTokens      int       `json:"total_tokens"`
	LatencyMs        int       `json:"latency_ms"`
	Succeeded        bool      `json:"succeeded"`
}

const (
	InteractionItinerary = "itinerary"
	InteractionCityCheck = "city_check"
)
