package llmInteraction

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/genai"

	generativeAI "github.com/FACorreiaa/go-itinerary-generator/internal/api/generative_ai"
	"github.com/FACorreiaa/go-itinerary-generator/internal/types"
)

// Recorder turns a finished model call into an audit row. Save failures are logged, never returned.
type Recorder struct {
	repo   Repository
	logger *slog.Logger
}

func NewRecorder(repo Repository, logger *slog.Logger) *Recorder {
	if repo == nil {
		repo = NoopRepository{}
	}
	return &Recorder{repo: repo, logger: logger}
}

// Record stores the call. responseText is what the caller consumed from resp.
func (r *Recorder) Record(ctx context.Context, requestType, model, prompt, responseText string, resp *genai.GenerateContentResponse, started time.Time, callErr error) {
	if r == nil {
		return
	}
	promptTokens, completionTokens, totalTokens := generativeAI.Usage(resp)
	interaction := types.LlmInteraction{
		RequestType:      requestType,
		Prompt:           prompt,
		ResponseText:     responseText,
		ModelUsed:        model,
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
		TotalTokens:      totalTokens,
		LatencyMs:        int(time.Since(started).Milliseconds()),
		Succeeded:        callErr == nil,
	}
	// the request context may already be cancelled by the time the call returns
	if _, err := r.repo.SaveInteraction(context.WithoutCancel(ctx), interaction); err != nil {
		r.logger.WarnContext(ctx, "Failed to record llm interaction",
			slog.String("request_type", requestType),
			slog.Any("error", err))
	}
}
