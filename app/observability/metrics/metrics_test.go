package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetIsIdempotent(t *testing.T) {
	first := Get()
	require.NotNil(t, first)
	assert.Same(t, first, Get())

	assert.NotNil(t, first.HTTPRequestsTotal)
	assert.NotNil(t, first.ItineraryGenerationsTotal)
	assert.NotNil(t, first.CityCheckCacheHitsTotal)
	assert.NotNil(t, first.ActivityEditsTotal)

	// Instruments from the default provider are no-ops but must be safe to call.
	assert.NotPanics(t, func() {
		first.ActivityEditsTotal.Add(context.Background(), 1)
		first.LLMRequestDuration.Record(context.Background(), 0.5)
	})
}
