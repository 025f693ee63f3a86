package strategies

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

// stubClient is a hand-rolled EntityClient for strategy tests.
type stubClient struct {
	entities  []driven.RawEntity
	contacts  []driven.RawEntity
	msgResult driven.MessageSearchResult
	resolve   map[string]driven.RawEntity
	recent    map[string][]driven.RawMessage
	err       error

	resolveCalls []string
}

func (c *stubClient) SearchEntities(context.Context, string, int) ([]driven.RawEntity, error) {
	return c.entities, c.err
}

func (c *stubClient) SearchContacts(context.Context, string, int) ([]driven.RawEntity, error) {
	return c.contacts, c.err
}

func (c *stubClient) SearchMessages(context.Context, string, int) (driven.MessageSearchResult, error) {
	return c.msgResult, c.err
}

func (c *stubClient) ResolveHandle(_ context.Context, handle string) (driven.RawEntity, error) {
	c.resolveCalls = append(c.resolveCalls, handle)
	if c.err != nil {
		return driven.RawEntity{}, c.err
	}
	e, ok := c.resolve[handle]
	if !ok {
		return driven.RawEntity{}, domain.ErrEntityNotFound
	}
	return e, nil
}

func (c *stubClient) RecentMessages(_ context.Context, identity string, _ int) ([]driven.RawMessage, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.recent[identity], nil
}

func (c *stubClient) Close() error { return nil }

// stubStore backs the related strategy's similarity lookup.
type stubStore struct {
	byCategory map[string][]domain.SearchCandidate
	err        error
}

func (s *stubStore) SaveCandidates(context.Context, string, []domain.SearchCandidate) error {
	return nil
}

func (s *stubStore) SaveSearch(context.Context, driven.SearchRecord) error { return nil }

func (s *stubStore) CandidatesByCategory(_ context.Context, category string, _, _ int) ([]domain.SearchCandidate, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.byCategory[category], nil
}

func (s *stubStore) CandidateByIdentity(context.Context, string) (domain.SearchCandidate, error) {
	return domain.SearchCandidate{}, domain.ErrEntityNotFound
}

func (s *stubStore) PopularQueries(context.Context, time.Time, int) ([]driven.PopularQuery, error) {
	return nil, nil
}

func (s *stubStore) Close() error { return nil }

func TestDirectSearch(t *testing.T) {
	client := &stubClient{entities: []driven.RawEntity{{ID: "1", Title: "Hit"}}}
	strategy := NewDirect(client)

	assert.Equal(t, "direct", strategy.Name())

	entities, err := strategy.Search(context.Background(), "q", 50)
	require.NoError(t, err)
	require.Len(t, entities, 1)
	assert.Equal(t, "Hit", entities[0].Title)
}

func TestDirectSearchWrapsError(t *testing.T) {
	cause := errors.New("surface down")
	strategy := NewDirect(&stubClient{err: cause})

	_, err := strategy.Search(context.Background(), "q", 50)
	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "direct search")
}

func TestContactsSearch(t *testing.T) {
	client := &stubClient{contacts: []driven.RawEntity{{ID: "2", Title: "Peer"}}}
	strategy := NewContacts(client)

	assert.Equal(t, "contacts", strategy.Name())

	entities, err := strategy.Search(context.Background(), "q", 50)
	require.NoError(t, err)
	require.Len(t, entities, 1)
	assert.Equal(t, "Peer", entities[0].Title)
}

func TestContentSearchKeepsOwnersOnly(t *testing.T) {
	client := &stubClient{msgResult: driven.MessageSearchResult{
		Messages: []driven.RawMessage{
			{PeerID: "-100555", Text: "a matching post"},
		},
		Entities: []driven.RawEntity{
			{ID: "555", Title: "Owner"},
			{ID: "999", Title: "Incidental"},
		},
	}}
	strategy := NewContent(client)

	// The aggregator turns this name into "content:<variant>" tags.
	assert.Equal(t, "content", strategy.Name())

	entities, err := strategy.Search(context.Background(), "q", 50)
	require.NoError(t, err)
	require.Len(t, entities, 1)
	assert.Equal(t, "Owner", entities[0].Title)
}

func TestContentSearchIgnoresMessagesWithoutPeer(t *testing.T) {
	client := &stubClient{msgResult: driven.MessageSearchResult{
		Messages: []driven.RawMessage{{PeerID: "", Text: "orphan"}},
		Entities: []driven.RawEntity{{ID: "1", Title: "Someone"}},
	}}
	strategy := NewContent(client)

	entities, err := strategy.Search(context.Background(), "q", 50)
	require.NoError(t, err)
	assert.Empty(t, entities)
}

func TestExtractMentions(t *testing.T) {
	text := "Check @cryptodaily and t.me/newsfeed, also telegram.me/gamershub. " +
		"Again @cryptodaily. Short @abc is noise."

	mentions := extractMentions(text)
	assert.Equal(t, []string{"cryptodaily", "newsfeed", "gamershub"}, mentions)
}

func TestExtractMentionsEmpty(t *testing.T) {
	assert.Empty(t, extractMentions("no handles in this text"))
}

func TestCatalogScansAndFilters(t *testing.T) {
	client := &stubClient{
		resolve: map[string]driven.RawEntity{
			"tgcatalog":   {ID: "-100900", Title: "Catalog", Handle: "tgcatalog"},
			"cryptodaily": {ID: "1", Title: "Crypto Daily", Handle: "cryptodaily"},
			"foodblog":    {ID: "2", Title: "Food Blog", Handle: "foodblog"},
		},
		recent: map[string][]driven.RawMessage{
			"-100900": {
				{Text: "Today: @cryptodaily and @foodblog, plus @tgcatalog itself"},
			},
		},
	}
	strategy := NewCatalog(client, []string{"tgcatalog"})

	assert.Equal(t, "catalog", strategy.Name())

	entities, err := strategy.Search(context.Background(), "crypto", 50)
	require.NoError(t, err)
	require.Len(t, entities, 1)
	assert.Equal(t, "Crypto Daily", entities[0].Title)

	// The catalog never resolves a mention of itself.
	assert.NotContains(t, client.resolveCalls[1:], "tgcatalog")
}

func TestCatalogSkipsUnreachableCatalog(t *testing.T) {
	client := &stubClient{
		resolve: map[string]driven.RawEntity{
			"second": {ID: "-100901", Title: "Second", Handle: "second"},
			"hit":    {ID: "3", Title: "Crypto Hit", Handle: "hit"},
		},
		recent: map[string][]driven.RawMessage{
			"-100901": {{Text: "featuring t.me/hit today"}},
		},
	}
	strategy := NewCatalog(client, []string{"missing", "second"})

	entities, err := strategy.Search(context.Background(), "crypto", 50)
	require.NoError(t, err)
	require.Len(t, entities, 1)
	assert.Equal(t, "Crypto Hit", entities[0].Title)
}

func TestCatalogDefaultsWhenUnconfigured(t *testing.T) {
	strategy := NewCatalog(&stubClient{}, nil)
	assert.Equal(t, DefaultCatalogs, strategy.catalogs)
}

func TestRelatedRequiresStore(t *testing.T) {
	strategy := NewRelated(&stubClient{}, nil)

	_, err := strategy.Search(context.Background(), "q", 50)
	assert.ErrorIs(t, err, domain.ErrStrategyUnavailable)
}

func TestRelatedExpandsThroughCategories(t *testing.T) {
	client := &stubClient{entities: []driven.RawEntity{
		{ID: "1", Title: "Bitcoin Signals", Description: "crypto trading"},
	}}
	store := &stubStore{byCategory: map[string][]domain.SearchCandidate{
		"crypto": {
			{Identity: "1", Title: "Bitcoin Signals"}, // the seed itself
			{Identity: "7", Title: "DeFi World", Handle: "defiworld",
				Kind: domain.KindChannel, ParticipantCount: 900, Verified: true},
		},
	}}
	strategy := NewRelated(client, store)

	assert.Equal(t, "related", strategy.Name())

	entities, err := strategy.Search(context.Background(), "crypto", 50)
	require.NoError(t, err)
	require.Len(t, entities, 1, "seed must not be returned as its own relative")

	got := entities[0]
	assert.Equal(t, "7", got.ID)
	assert.Equal(t, "DeFi World", got.Title)
	assert.Equal(t, "defiworld", got.Handle)
	assert.True(t, got.Broadcast)
	assert.Equal(t, 900, got.ParticipantCount)
	assert.True(t, got.Verified)
}

func TestRelatedSkipsGeneralCategorySeeds(t *testing.T) {
	client := &stubClient{entities: []driven.RawEntity{
		{ID: "1", Title: "Random Stuff", Description: "things"},
	}}
	store := &stubStore{byCategory: map[string][]domain.SearchCandidate{
		domain.CategoryGeneral: {{Identity: "8", Title: "Should Not Appear"}},
	}}
	strategy := NewRelated(client, store)

	entities, err := strategy.Search(context.Background(), "random", 50)
	require.NoError(t, err)
	assert.Empty(t, entities)
}

func TestRelatedLookupFailureIsSkipped(t *testing.T) {
	client := &stubClient{entities: []driven.RawEntity{
		{ID: "1", Title: "Bitcoin Signals", Description: "crypto trading"},
	}}
	strategy := NewRelated(client, &stubStore{err: errors.New("db locked")})

	entities, err := strategy.Search(context.Background(), "crypto", 50)
	require.NoError(t, err)
	assert.Empty(t, entities)
}
