package llmInteraction

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/FACorreiaa/go-itinerary-generator/internal/types"
)

// Repository stores one row per model call.
type Repository interface {
	SaveInteraction(ctx context.Context, interaction types.LlmInteraction) (uuid.UUID, error)
}

// DB is satisfied by *pgxpool.Pool and pgxmock.PgxPoolIface.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var (
	_ Repository = (*PostgresLlmInteractionRepo)(nil)
	_ Repository = NoopRepository{}
)

type PostgresLlmInteractionRepo struct {
	logger *slog.Logger
	db     DB
}

func NewPostgresLlmInteractionRepo(db DB, logger *slog.Logger) *PostgresLlmInteractionRepo {
	return &PostgresLlmInteractionRepo{
		logger: logger,
		db:     db,
	}
}

func (r *PostgresLlmInteractionRepo) SaveInteraction(ctx context.Context, interaction types.LlmInteraction) (uuid.UUID, error) {
	query := `
        INSERT INTO llm_interactions (
            request_type, prompt, response_text, model_used,
            prompt_tokens, completion_tokens, total_tokens, latency_ms, succeeded
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id
    `
	var id uuid.UUID
	err := r.db.QueryRow(ctx, query,
		interaction.RequestType, interaction.Prompt, interaction.ResponseText, interaction.ModelUsed,
		interaction.PromptTokens, interaction.CompletionTokens, interaction.TotalTokens,
		interaction.LatencyMs, interaction.Succeeded,
	).Scan(&id)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert llm interaction",
			slog.String("request_type", interaction.RequestType),
			slog.Any("error", err))
		return uuid.Nil, fmt.Errorf("%w: %v", types.ErrInteractionNotSaved, err)
	}
	r.logger.DebugContext(ctx, "LLM interaction saved", slog.String("interaction_id", id.String()))
	return id, nil
}

// NoopRepository is used when postgres is disabled.
type NoopRepository struct{}

func (NoopRepository) SaveInteraction(context.Context, types.LlmInteraction) (uuid.UUID, error) {
	return uuid.Nil, nil
}
