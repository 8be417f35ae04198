package llmInteraction

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-itinerary-generator/internal/types"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPostgresLlmInteractionRepo_SaveInteraction(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPostgresLlmInteractionRepo(mock, discardLogger())
	interaction := types.LlmInteraction{
		RequestType:      types.InteractionItinerary,
		Prompt:           "plan Tokyo",
		ResponseText:     `{"tripTitle":"Tokyo"}`,
		ModelUsed:        "gemini-2.5-flash",
		PromptTokens:     10,
		CompletionTokens: 20,
		TotalTokens:      30,
		LatencyMs:        1500,
		Succeeded:        true,
	}

	t.Run("returns generated id", func(t *testing.T) {
		id := uuid.New()
		mock.ExpectQuery(`INSERT INTO llm_interactions`).
			WithArgs(interaction.RequestType, interaction.Prompt, interaction.ResponseText, interaction.ModelUsed,
				interaction.PromptTokens, interaction.CompletionTokens, interaction.TotalTokens,
				interaction.LatencyMs, interaction.Succeeded).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(id))

		got, err := repo.SaveInteraction(context.Background(), interaction)
		require.NoError(t, err)
		assert.Equal(t, id, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wraps database errors", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO llm_interactions`).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(errors.New("connection reset"))

		got, err := repo.SaveInteraction(context.Background(), interaction)
		assert.Equal(t, uuid.Nil, got)
		assert.ErrorIs(t, err, types.ErrInteractionNotSaved)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

type captureRepo struct {
	saved []types.LlmInteraction
	err   error
}

func (c *captureRepo) SaveInteraction(_ context.Context, interaction types.LlmInteraction) (uuid.UUID, error) {
	c.saved = append(c.saved, interaction)
	return uuid.New(), c.err
}

func TestRecorder_Record(t *testing.T) {
	repo := &captureRepo{}
	rec := NewRecorder(repo, discardLogger())

	resp := &genai.GenerateContentResponse{
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{
			PromptTokenCount: 3, CandidatesTokenCount: 1, TotalTokenCount: 4,
		},
	}
	rec.Record(context.Background(), types.InteractionCityCheck, "gemini-2.5-flash", "prompt", "Yes", resp, time.Now(), nil)
	rec.Record(context.Background(), types.InteractionCityCheck, "gemini-2.5-flash", "prompt", "", nil, time.Now(), errors.New("boom"))

	require.Len(t, repo.saved, 2)
	assert.True(t, repo.saved[0].Succeeded)
	assert.Equal(t, 4, repo.saved[0].TotalTokens)
	assert.Equal(t, "Yes", repo.saved[0].ResponseText)
	assert.False(t, repo.saved[1].Succeeded)
	assert.Zero(t, repo.saved[1].TotalTokens)
}

func TestRecorder_SaveFailureIsSwallowed(t *testing.T) {
	repo := &captureRepo{err: errors.New("db down")}
	rec := NewRecorder(repo, discardLogger())
	assert.NotPanics(t, func() {
		rec.Record(context.Background(), types.InteractionItinerary, "m", "p", "", nil, time.Now(), nil)
	})

	var nilRec *Recorder
	assert.NotPanics(t, func() {
		nilRec.Record(context.Background(), types.InteractionItinerary, "m", "p", "", nil, time.Now(), nil)
	})
}
