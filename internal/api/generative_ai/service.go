package generativeAI

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-itinerary-generator/internal/types"
)

const DefaultModel = "gemini-2.5-flash"

// ContentGenerator is the part of the Gemini API the services depend on.
type ContentGenerator interface {
	GenerateResponse(ctx context.Context, model, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

var (
	_ ContentGenerator = (*AIClient)(nil)
	_ ContentGenerator = UnconfiguredClient{}
)

type AIClient struct {
	client  *genai.Client
	timeout time.Duration
}

func NewAIClient(ctx context.Context, apiKey string, timeout time.Duration) (*AIClient, error) {
	if apiKey == "" {
		return nil, types.ErrMissingAPIKey
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &AIClient{
		client:  client,
		timeout: timeout,
	}, nil
}

// GenerateResponse sends a single-turn prompt to the given model.
func (ai *AIClient) GenerateResponse(ctx context.Context, model, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	ctx, span := otel.Tracer("AIClient").Start(ctx, "GenerateResponse", trace.WithAttributes(
		attribute.String("llm.model", model),
		attribute.Int("prompt.length", len(prompt)),
	))
	defer span.End()

	if ai.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ai.timeout)
		defer cancel()
	}

	resp, err := ai.client.Models.GenerateContent(ctx, model, genai.Text(prompt), config)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generate content failed")
		return nil, fmt.Errorf("%w: %v", types.ErrUpstreamFailure, err)
	}
	span.SetStatus(codes.Ok, "")
	return resp, nil
}

// UnconfiguredClient stands in when no API key is set, so the server still boots
// and each model-backed request fails with ErrMissingAPIKey.
type UnconfiguredClient struct{}

func (UnconfiguredClient) GenerateResponse(context.Context, string, string, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return nil, types.ErrMissingAPIKey
}

// FirstText returns the text of the first candidate's first text part.
func FirstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		return ""
	}
	for _, part := range cand.Content.Parts {
		if part != nil && part.Text != "" && !part.Thought {
			return part.Text
		}
	}
	return ""
}

// FirstFunctionCall returns the first function call of the first candidate, or nil.
func FirstFunctionCall(resp *genai.GenerateContentResponse) *genai.FunctionCall {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		return nil
	}
	for _, part := range cand.Content.Parts {
		if part != nil && part.FunctionCall != nil {
			return part.FunctionCall
		}
	}
	return nil
}

// Usage extracts token counts; zero values when the response has no metadata.
func Usage(resp *genai.GenerateContentResponse) (prompt, completion, total int) {
	if resp == nil || resp.UsageMetadata == nil {
		return 0, 0, 0
	}
	return int(resp.UsageMetadata.PromptTokenCount),
		int(resp.UsageMetadata.CandidatesTokenCount),
		int(resp.UsageMetadata.TotalTokenCount)
}
