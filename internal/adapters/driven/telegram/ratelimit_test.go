package telegram

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chanscout/chanscout-cli/internal/adapters/driven/telegram/fixture"
	"github.com/chanscout/chanscout-cli/internal/core/ports/driven"
)

func newFixtureClient() *fixture.Client {
	return fixture.NewClient(fixture.Dataset{
		Entities: []driven.RawEntity{
			{ID: "1", Title: "Crypto News", Handle: "cryptonews", Broadcast: true, ParticipantCount: 1000},
		},
	})
}

func TestThrottledPassesThrough(t *testing.T) {
	client := NewThrottledRate(newFixtureClient(), 1000, 10)
	ctx := context.Background()

	entities, err := client.SearchEntities(ctx, "crypto", 10)
	require.NoError(t, err)
	require.Len(t, entities, 1)
	assert.Equal(t, "Crypto News", entities[0].Title)

	entity, err := client.ResolveHandle(ctx, "@cryptonews")
	require.NoError(t, err)
	assert.Equal(t, "1", entity.ID)

	require.NoError(t, client.Close())
}

func TestThrottledHonorsContextCancellation(t *testing.T) {
	// One request per hour with no burst capacity left after the first
	client := NewThrottledRate(newFixtureClient(), 1.0/3600, 1)
	ctx := context.Background()

	_, err := client.SearchEntities(ctx, "crypto", 10)
	require.NoError(t, err)

	cancelled, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	_, err = client.SearchEntities(cancelled, "crypto", 10)
	assert.Error(t, err)
}

func TestThrottledFloodWaitBlocks(t *testing.T) {
	client := NewThrottledRate(newFixtureClient(), 1000, 10)
	client.SetFloodWait(50 * time.Millisecond)

	start := time.Now()
	_, err := client.SearchEntities(context.Background(), "crypto", 10)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestThrottledFloodWaitCancellable(t *testing.T) {
	client := NewThrottledRate(newFixtureClient(), 1000, 10)
	client.SetFloodWait(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := client.SearchEntities(ctx, "crypto", 10)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
