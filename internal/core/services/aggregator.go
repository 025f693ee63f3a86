package services

import (
	"context"
	"strings"
	"sync"

	"github.com/chanscout/chanscout-cli/internal/core/domain"
	"github.com/chanscout/chanscout-cli/internal/core/ports/driven"
	"github.com/chanscout/chanscout-cli/internal/logger"
)

// blacklistWords drops obviously abusive communities before ranking.
var blacklistWords = []string{"scam", "fake", "spam", "pump", "dump"}

// strategyResult is one strategy invocation's contribution.
type strategyResult struct {
	tag      string
	entities []driven.RawEntity
	err      error
}

// Aggregator fans a query out to every enabled strategy concurrently,
// races the combined set against a timeout, and merges partial results
// into a deduplicated candidate set. One strategy's failure never
// affects another's contribution.
type Aggregator struct {
	strategies []driven.SearchStrategy
}

// NewAggregator creates an aggregator over the enabled strategies.
func NewAggregator(strategies []driven.SearchStrategy) *Aggregator {
	return &Aggregator{strategies: strategies}
}

// Search invokes every strategy for every query variant, merges by
// normalized identity, applies the hard filters, and returns the
// deduplicated candidate list unordered. On timeout whatever completed
// is used; outstanding invocations are abandoned and their eventual
// results discarded.
func (a *Aggregator) Search(
	ctx context.Context, variants []domain.QueryVariant, opts domain.DiscoverOptions,
) []domain.SearchCandidate {
	opts = opts.Normalize()

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	total := len(a.strategies) * len(variants)
	if total == 0 {
		return []domain.SearchCandidate{}
	}
	logger.Section("Strategy Fan-Out")
	logger.Debug("Strategies: %d, variants: %d, timeout: %s",
		len(a.strategies), len(variants), opts.Timeout)

	// Buffered to the full invocation count so abandoned goroutines
	// never block after a timeout.
	results := make(chan strategyResult, total)

	var wg sync.WaitGroup
	for _, strat := range a.strategies {
		for _, variant := range variants {
			wg.Add(1)
			go func(s driven.SearchStrategy, v domain.QueryVariant) {
				defer wg.Done()
				entities, err := s.Search(ctx, v.Text, opts.Limit)
				results <- strategyResult{
					tag:      s.Name() + ":" + v.Text,
					entities: entities,
					err:      err,
				}
			}(strat, variant)
		}
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	// Single-threaded merge loop: the only place FoundBy is mutated.
	merged := make(map[string]*domain.SearchCandidate)
	order := make([]string, 0, opts.Limit)
	timedOut := false

collect:
	for {
		select {
		case res, ok := <-results:
			if !ok {
				break collect
			}
			a.mergeResult(merged, &order, res, opts)
		case <-ctx.Done():
			timedOut = true
			// Drain whatever already completed, then stop waiting.
			for {
				select {
				case res, ok := <-results:
					if !ok {
						break collect
					}
					a.mergeResult(merged, &order, res, opts)
				default:
					break collect
				}
			}
		}
	}

	if timedOut {
		logger.Warn("Fan-out deadline exceeded, proceeding with partial merge")
	}

	candidates := make([]domain.SearchCandidate, 0, len(order))
	for _, id := range order {
		candidates = append(candidates, *merged[id])
	}
	logger.Info("Aggregated %d unique candidates", len(candidates))
	return candidates
}

// mergeResult folds one strategy contribution into the merged map.
func (a *Aggregator) mergeResult(
	merged map[string]*domain.SearchCandidate, order *[]string,
	res strategyResult, opts domain.DiscoverOptions,
) {
	if res.err != nil {
		logger.Warn("Strategy %s failed: %v", res.tag, res.err)
		return
	}
	admitted := 0
	for _, raw := range res.entities {
		candidate, ok := a.admit(raw, opts)
		if !ok {
			continue
		}
		admitted++
		if existing, dup := merged[candidate.Identity]; dup {
			existing.MergeFoundBy(res.tag)
			continue
		}
		candidate.FoundBy = []string{res.tag}
		merged[candidate.Identity] = &candidate
		*order = append(*order, candidate.Identity)
	}
	logger.Debug("Strategy %s: %d records, %d admitted", res.tag, len(res.entities), admitted)
}

// admit normalizes a raw record into a candidate and applies the hard
// filters. Returns false for records that must not enter the merge.
func (a *Aggregator) admit(raw driven.RawEntity, opts domain.DiscoverOptions) (domain.SearchCandidate, bool) {
	if raw.ID == "" || raw.Title == "" || raw.Deactivated {
		return domain.SearchCandidate{}, false
	}

	kind := domain.KindGroup
	if raw.Broadcast {
		kind = domain.KindChannel
	}
	switch opts.Kind {
	case domain.FilterChannels:
		if kind != domain.KindChannel {
			return domain.SearchCandidate{}, false
		}
	case domain.FilterGroups:
		if kind != domain.KindGroup {
			return domain.SearchCandidate{}, false
		}
	}

	if raw.ParticipantCount < opts.MinParticipants {
		return domain.SearchCandidate{}, false
	}
	if opts.MaxParticipants > 0 && raw.ParticipantCount > opts.MaxParticipants {
		return domain.SearchCandidate{}, false
	}
	if opts.VerifiedOnly && !raw.Verified {
		return domain.SearchCandidate{}, false
	}

	haystack := strings.ToLower(raw.Title + " " + raw.Description)
	for _, word := range blacklistWords {
		if strings.Contains(haystack, word) {
			return domain.SearchCandidate{}, false
		}
	}

	link := ""
	if raw.Handle != "" {
		link = "https://t.me/" + raw.Handle
	}
	return domain.SearchCandidate{
		Identity:         domain.NormalizeIdentity(raw.ID),
		Title:            raw.Title,
		Handle:           raw.Handle,
		Kind:             kind,
		ParticipantCount: raw.ParticipantCount,
		Description:      raw.Description,
		Verified:         raw.Verified,
		Category:         domain.Classify(raw.Title, raw.Description),
		Link:             link,
	}, true
}
