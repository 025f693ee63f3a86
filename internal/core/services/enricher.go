package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"golang.org/x/time/rate"

	"github.com/chanscout/chanscout-cli/internal/core/domain"
	"github.com/chanscout/chanscout-cli/internal/logger"
)

// DefaultAnalysisDelay spaces consecutive enrichment items to respect
// the remote surface's rate limits.
const DefaultAnalysisDelay = 1500 * time.Millisecond

// Enricher sequences metrics collection and AI assessment per
// candidate, with inter-item throttling and per-item error isolation.
// It maintains its own result cache keyed by identity + title, so a
// community whose identity churns under the same title re-analyzes
// instead of serving a stale neighbour's entry.
type Enricher struct {
	collector *MetricsCollector
	assessor  *Assessor
	cache     *ttlCache[domain.EnrichedCandidate]
	limiter   *rate.Limiter
	now       func() time.Time
}

// NewEnricher creates an enricher with the default inter-item delay
// and enrichment-cache TTL.
func NewEnricher(collector *MetricsCollector, assessor *Assessor) *Enricher {
	return &Enricher{
		collector: collector,
		assessor:  assessor,
		cache:     newTTLCache[domain.EnrichedCandidate](DefaultEnrichmentCacheTTL),
		limiter:   rate.NewLimiter(rate.Every(DefaultAnalysisDelay), 1),
		now:       time.Now,
	}
}

// SetAnalysisDelay reconfigures the inter-item throttle.
func (e *Enricher) SetAnalysisDelay(d time.Duration) {
	if d <= 0 {
		e.limiter = rate.NewLimiter(rate.Inf, 1)
		return
	}
	e.limiter = rate.NewLimiter(rate.Every(d), 1)
}

// ClearCache empties the enrichment-result cache immediately.
func (e *Enricher) ClearCache() {
	e.cache.Clear()
}

// Enrich processes candidates strictly in the given ranked order.
// The first opts.AnalysisLimit candidates get metrics + assessment;
// the rest pass through unenriched. One candidate's failure never
// aborts the batch: it yields an entry carrying zero metrics and a
// fallback or partial assessment, still in order.
//
// With opts.SortByQuality set the returned list is re-sorted by
// assessed quality score - an opt-in secondary ordering distinct from
// the relevance ranking.
func (e *Enricher) Enrich(
	ctx context.Context, ranked []domain.SearchCandidate, opts domain.DiscoverOptions,
) []domain.EnrichedCandidate {
	opts = opts.Normalize()

	logger.Section("Enrichment")
	logger.Debug("Candidates: %d, analysis limit: %d", len(ranked), opts.AnalysisLimit)

	out := make([]domain.EnrichedCandidate, 0, len(ranked))
	for i, candidate := range ranked {
		if i >= opts.AnalysisLimit {
			out = append(out, domain.EnrichedCandidate{SearchCandidate: candidate})
			continue
		}
		out = append(out, e.enrichOne(ctx, candidate))
	}

	if opts.SortByQuality {
		sortByQuality(out)
	}
	return out
}

// enrichOne runs the cache check, metrics collection and assessment
// for a single candidate.
func (e *Enricher) enrichOne(ctx context.Context, candidate domain.SearchCandidate) domain.EnrichedCandidate {
	key := hashKey(candidate.Identity + "|" + candidate.Title)
	if cached, ok := e.cache.Get(key); ok {
		logger.Debug("Enrichment cache hit for %q", candidate.Title)
		return cached
	}

	// Inter-item delay: the external surfaces are rate-limited.
	if err := e.limiter.Wait(ctx); err != nil {
		logger.Warn("Enrichment interrupted before %q: %v", candidate.Title, err)
		return domain.EnrichedCandidate{SearchCandidate: candidate}
	}

	metrics, samples, err := e.collector.Collect(ctx, candidate)
	if err != nil {
		if errors.Is(err, domain.ErrMetricsUnavailable) {
			logger.Warn("Metrics unavailable for %q: %v", candidate.Title, err)
		} else {
			logger.Warn("Metrics collection failed for %q: %v", candidate.Title, err)
		}
		// metrics already holds the zero-sample state.
	}

	enriched := domain.EnrichedCandidate{
		SearchCandidate: candidate,
		Enriched:        true,
		Metrics:         metrics,
		Assessment:      e.assessor.Assess(ctx, candidate, metrics, samples),
		AnalyzedAt:      e.now(),
	}

	// A wholly failed enrichment is not worth pinning for the cache
	// TTL; leave it uncached so the next call retries both surfaces.
	if err == nil || !enriched.Assessment.Failed() {
		e.cache.Put(key, enriched)
	}
	return enriched
}

// sortByQuality orders by assessed quality score, subscriber count as
// tie-break, stable so unassessed passthrough entries keep their
// relative rank order at the bottom.
func sortByQuality(batch []domain.EnrichedCandidate) {
	sort.SliceStable(batch, func(i, j int) bool {
		qi, qj := batch[i].Assessment.QualityScore, batch[j].Assessment.QualityScore
		if qi != qj {
			return qi > qj
		}
		return batch[i].ParticipantCount > batch[j].ParticipantCount
	})
}
