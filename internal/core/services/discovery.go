package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chanscout/chanscout-cli/internal/core/domain"
	"github.com/chanscout/chanscout-cli/internal/core/ports/driven"
	"github.com/chanscout/chanscout-cli/internal/core/ports/driving"
	"github.com/chanscout/chanscout-cli/internal/logger"
)

// Ensure Discovery implements the interface.
var _ driving.DiscoveryService = (*Discovery)(nil)

// Discovery is the engine's inbound entry point. It runs query
// expansion, aggregation, ranking and optional enrichment, with a TTL
// cache in front of the aggregate+rank stage.
//
// Caches are owned by the Discovery instance - created with it,
// cleared on demand, no process-wide singletons - so tests never share
// hidden state.
type Discovery struct {
	expander   *QueryExpander
	aggregator *Aggregator
	enricher   *Enricher
	store      driven.ResultStore // optional
	cache      *ttlCache[[]domain.SearchCandidate]
	now        func() time.Time
}

// NewDiscovery creates the discovery service. The result store is
// optional (may be nil); persistence is best-effort either way.
func NewDiscovery(
	expander *QueryExpander,
	aggregator *Aggregator,
	enricher *Enricher,
	store driven.ResultStore,
) *Discovery {
	return &Discovery{
		expander:   expander,
		aggregator: aggregator,
		enricher:   enricher,
		store:      store,
		cache:      newTTLCache[[]domain.SearchCandidate](DefaultResultCacheTTL),
		now:        time.Now,
	}
}

// SetResultCacheTTL replaces the result cache with one using the given
// TTL. Ranking policy changes require this (or ClearCaches) to take
// effect within the old TTL window, since the ranked list is what is
// cached.
func (d *Discovery) SetResultCacheTTL(ttl time.Duration) {
	d.cache = newTTLCache[[]domain.SearchCandidate](ttl)
}

// Discover finds, ranks and optionally enriches public communities
// matching the query. An empty list is a valid terminal state
// distinguishable from a failed call; the only caller-visible error is
// an invalid option set.
func (d *Discovery) Discover(
	ctx context.Context, query string, opts domain.DiscoverOptions,
) ([]domain.EnrichedCandidate, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts = opts.Normalize()

	logger.Section("Discovery")
	query = strings.TrimSpace(query)
	logger.Debug("Query: %q, kind=%s, limit=%d, enrich=%t",
		query, opts.Kind, opts.Limit, opts.Enrich)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.EnrichedCandidate{}, nil
	}

	ranked := d.rankedCandidates(ctx, query, opts)

	if !opts.Enrich {
		out := make([]domain.EnrichedCandidate, 0, len(ranked))
		for _, c := range ranked {
			out = append(out, domain.EnrichedCandidate{SearchCandidate: c})
		}
		return out, nil
	}
	return d.enricher.Enrich(ctx, ranked, opts), nil
}

// rankedCandidates serves the aggregate+rank stage through the cache.
func (d *Discovery) rankedCandidates(
	ctx context.Context, query string, opts domain.DiscoverOptions,
) []domain.SearchCandidate {
	key := hashKey(opts.CacheKey(query))
	if opts.UseCache {
		if cached, ok := d.cache.Get(key); ok {
			logger.Info("Result cache hit for %q", query)
			return cached
		}
	}

	variants := d.expander.Expand(query)
	logger.Debug("Expanded into %d variants", len(variants))

	candidates := d.aggregator.Search(ctx, variants, opts)
	if opts.Category != "" {
		candidates = filterByCategory(candidates, opts.Category)
		logger.Debug("After category filter %q: %d candidates", opts.Category, len(candidates))
	}

	ranked := Rank(candidates, query)
	if len(ranked) > opts.Limit {
		ranked = ranked[:opts.Limit]
	}
	logger.Info("Ranked %d candidates for %q", len(ranked), query)

	if opts.UseCache {
		d.cache.Put(key, ranked)
	}
	d.persist(ctx, query, ranked)
	return ranked
}

// persist saves results and history best-effort: a store failure is
// logged and never fails the discovery call.
func (d *Discovery) persist(ctx context.Context, query string, candidates []domain.SearchCandidate) {
	if d.store == nil {
		return
	}
	if err := d.store.SaveCandidates(ctx, query, candidates); err != nil {
		logger.Warn("Persisting candidates failed: %v", err)
	}
	rec := driven.SearchRecord{
		ID:          uuid.NewString(),
		Query:       query,
		ResultCount: len(candidates),
		At:          d.now(),
	}
	if err := d.store.SaveSearch(ctx, rec); err != nil {
		logger.Warn("Persisting search history failed: %v", err)
	}
}

// ClearCaches empties the result and enrichment caches immediately.
func (d *Discovery) ClearCaches() {
	d.cache.Clear()
	d.enricher.ClearCache()
	logger.Info("Caches cleared")
}

func filterByCategory(candidates []domain.SearchCandidate, category string) []domain.SearchCandidate {
	kept := make([]domain.SearchCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Category == category {
			kept = append(kept, c)
		}
	}
	return kept
}
