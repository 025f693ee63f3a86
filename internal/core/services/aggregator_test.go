package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chanscout/chanscout-cli/internal/core/domain"
	"github.com/chanscout/chanscout-cli/internal/core/ports/driven"
)

func oneVariant(text string) []domain.QueryVariant {
	return []domain.QueryVariant{{Text: text, Origin: domain.OriginOriginal}}
}

func findCandidate(t *testing.T, candidates []domain.SearchCandidate, identity string) domain.SearchCandidate {
	t.Helper()
	for _, c := range candidates {
		if c.Identity == identity {
			return c
		}
	}
	t.Fatalf("candidate %s not found", identity)
	return domain.SearchCandidate{}
}

func TestAggregatorMergesDuplicatesAcrossStrategies(t *testing.T) {
	entity := driven.RawEntity{ID: "-100555", Title: "Crypto Daily", Handle: "cryptodaily", Broadcast: true}
	agg := NewAggregator([]driven.SearchStrategy{
		&fakeStrategy{name: "direct", entities: []driven.RawEntity{entity}},
		&fakeStrategy{name: "contacts", entities: []driven.RawEntity{entity}},
	})

	candidates := agg.Search(context.Background(), oneVariant("crypto"), domain.DiscoverOptions{})

	require.Len(t, candidates, 1)
	c := candidates[0]
	assert.Equal(t, "555", c.Identity)
	assert.ElementsMatch(t, []string{"direct:crypto", "contacts:crypto"}, c.FoundBy)
	assert.Equal(t, "https://t.me/cryptodaily", c.Link)
}

func TestAggregatorTagsCarryVariantText(t *testing.T) {
	entity := driven.RawEntity{ID: "1", Title: "Games Hub"}
	agg := NewAggregator([]driven.SearchStrategy{
		&fakeStrategy{name: "direct", entities: []driven.RawEntity{entity}},
	})

	variants := []domain.QueryVariant{
		{Text: "игры", Origin: domain.OriginOriginal},
		{Text: "games", Origin: domain.OriginSynonym},
	}
	candidates := agg.Search(context.Background(), variants, domain.DiscoverOptions{})

	require.Len(t, candidates, 1)
	assert.ElementsMatch(t, []string{"direct:игры", "direct:games"}, candidates[0].FoundBy)
}

func TestAggregatorStrategyFailureIsolated(t *testing.T) {
	agg := NewAggregator([]driven.SearchStrategy{
		&fakeStrategy{name: "direct", err: errors.New("surface down")},
		&fakeStrategy{name: "contacts", entities: []driven.RawEntity{
			{ID: "2", Title: "Survivor"},
		}},
	})

	candidates := agg.Search(context.Background(), oneVariant("q"), domain.DiscoverOptions{})

	require.Len(t, candidates, 1)
	assert.Equal(t, "Survivor", candidates[0].Title)
}

func TestAggregatorTimeoutKeepsPartialResults(t *testing.T) {
	fast := &fakeStrategy{name: "fast", entities: []driven.RawEntity{{ID: "1", Title: "Fast"}}}
	slow := &fakeStrategy{
		name:     "slow",
		entities: []driven.RawEntity{{ID: "2", Title: "Slow"}},
		delay: func(ctx context.Context) {
			<-ctx.Done()
			time.Sleep(20 * time.Millisecond)
		},
	}
	agg := NewAggregator([]driven.SearchStrategy{fast, slow})

	opts := domain.DiscoverOptions{Timeout: 50 * time.Millisecond}
	candidates := agg.Search(context.Background(), oneVariant("q"), opts)

	require.Len(t, candidates, 1)
	assert.Equal(t, "Fast", candidates[0].Title)
}

func TestAggregatorDropsMalformedRecords(t *testing.T) {
	agg := NewAggregator([]driven.SearchStrategy{
		&fakeStrategy{name: "direct", entities: []driven.RawEntity{
			{ID: "", Title: "No ID"},
			{ID: "2", Title: ""},
			{ID: "3", Title: "Banned", Deactivated: true},
			{ID: "4", Title: "Kept"},
		}},
	})

	candidates := agg.Search(context.Background(), oneVariant("q"), domain.DiscoverOptions{})

	require.Len(t, candidates, 1)
	assert.Equal(t, "Kept", candidates[0].Title)
}

func TestAggregatorHardFilters(t *testing.T) {
	entities := []driven.RawEntity{
		{ID: "1", Title: "Small Channel", Broadcast: true, ParticipantCount: 50},
		{ID: "2", Title: "Big Channel", Broadcast: true, ParticipantCount: 5000, Verified: true},
		{ID: "3", Title: "Huge Group", Broadcast: false, ParticipantCount: 100000},
	}
	agg := NewAggregator([]driven.SearchStrategy{
		&fakeStrategy{name: "direct", entities: entities},
	})
	ctx := context.Background()

	channels := agg.Search(ctx, oneVariant("q"), domain.DiscoverOptions{Kind: domain.FilterChannels})
	require.Len(t, channels, 2)

	verified := agg.Search(ctx, oneVariant("q"), domain.DiscoverOptions{VerifiedOnly: true})
	require.Len(t, verified, 1)
	assert.Equal(t, "Big Channel", verified[0].Title)

	sized := agg.Search(ctx, oneVariant("q"), domain.DiscoverOptions{
		MinParticipants: 100, MaxParticipants: 10000,
	})
	require.Len(t, sized, 1)
	assert.Equal(t, "Big Channel", sized[0].Title)
}

func TestAggregatorBlacklist(t *testing.T) {
	agg := NewAggregator([]driven.SearchStrategy{
		&fakeStrategy{name: "direct", entities: []driven.RawEntity{
			{ID: "1", Title: "Pump and Dump Signals"},
			{ID: "2", Title: "Honest Channel", Description: "no scam here"},
			{ID: "3", Title: "Clean News"},
		}},
	})

	candidates := agg.Search(context.Background(), oneVariant("q"), domain.DiscoverOptions{})

	require.Len(t, candidates, 1)
	assert.Equal(t, "Clean News", candidates[0].Title)
}

func TestAggregatorClassifiesCategories(t *testing.T) {
	agg := NewAggregator([]driven.SearchStrategy{
		&fakeStrategy{name: "direct", entities: []driven.RawEntity{
			{ID: "1", Title: "Bitcoin Signals", Description: "crypto trading"},
		}},
	})

	candidates := agg.Search(context.Background(), oneVariant("q"), domain.DiscoverOptions{})

	require.Len(t, candidates, 1)
	assert.NotEqual(t, domain.CategoryGeneral, candidates[0].Category)
}

func TestAggregatorNoStrategies(t *testing.T) {
	agg := NewAggregator(nil)
	candidates := agg.Search(context.Background(), oneVariant("q"), domain.DiscoverOptions{})
	assert.Empty(t, candidates)
}

func TestAggregatorFoundByCountsForSharedHit(t *testing.T) {
	shared := driven.RawEntity{ID: "10", Title: "Crypto World", Handle: "cryptoworld"}
	only := driven.RawEntity{ID: "11", Title: "Crypto Corner"}
	agg := NewAggregator([]driven.SearchStrategy{
		&fakeStrategy{name: "direct", entities: []driven.RawEntity{shared, only}},
		&fakeStrategy{name: "content", entities: []driven.RawEntity{shared}},
	})

	candidates := agg.Search(context.Background(), oneVariant("crypto"), domain.DiscoverOptions{})

	require.Len(t, candidates, 2)
	assert.Len(t, findCandidate(t, candidates, "10").FoundBy, 2)
	assert.Len(t, findCandidate(t, candidates, "11").FoundBy, 1)
}
