package strategies

import (
	"context"
	"fmt"

	"github.com/chanscout/chanscout-cli/internal/core/domain"
	"github.com/chanscout/chanscout-cli/internal/core/ports/driven"
	"github.com/chanscout/chanscout-cli/internal/logger"
)

// Ensure Related implements the interface.
var _ driven.SearchStrategy = (*Related)(nil)

// Expansion bounds: how many top direct hits seed the expansion and
// how many similar entities each seed contributes.
const (
	relatedSeedCount   = 5
	relatedPerCategory = 5

	// relatedMinParticipants keeps the similarity lookup above noise.
	relatedMinParticipants = 100
)

// Related expands the top results of a direct search with
// similar/related entities. Similarity is a local lookup over
// previously discovered candidates sharing a category, not a live
// platform call.
type Related struct {
	client driven.EntityClient
	store  driven.ResultStore
}

// NewRelated creates the related-entity expansion strategy.
func NewRelated(client driven.EntityClient, store driven.ResultStore) *Related {
	return &Related{client: client, store: store}
}

// Name returns the FoundBy attribution tag.
func (s *Related) Name() string { return "related" }

// Search finds the query's top entities and expands each through the
// category-similarity lookup.
func (s *Related) Search(ctx context.Context, query string, limit int) ([]driven.RawEntity, error) {
	if s.store == nil {
		return nil, fmt.Errorf("%w: related expansion needs a result store", domain.ErrStrategyUnavailable)
	}

	seeds, err := s.client.SearchEntities(ctx, query, relatedSeedCount*2)
	if err != nil {
		return nil, fmt.Errorf("related expansion %q: %w", query, err)
	}
	if len(seeds) > relatedSeedCount {
		seeds = seeds[:relatedSeedCount]
	}

	seen := make(map[string]bool, len(seeds))
	for _, seed := range seeds {
		seen[domain.NormalizeIdentity(seed.ID)] = true
	}

	var entities []driven.RawEntity
	for _, seed := range seeds {
		category := domain.Classify(seed.Title, seed.Description)
		if category == domain.CategoryGeneral {
			continue
		}
		similar, err := s.store.CandidatesByCategory(ctx, category, relatedMinParticipants, relatedPerCategory)
		if err != nil {
			logger.Debug("Similarity lookup for category %s failed: %v", category, err)
			continue
		}
		for _, c := range similar {
			if seen[c.Identity] {
				continue
			}
			seen[c.Identity] = true
			entities = append(entities, toRawEntity(c))
			if len(entities) >= limit {
				return entities, nil
			}
		}
	}
	return entities, nil
}

// toRawEntity converts a stored candidate back to the raw record shape
// the aggregator expects from every strategy.
func toRawEntity(c domain.SearchCandidate) driven.RawEntity {
	return driven.RawEntity{
		ID:               c.Identity,
		Title:            c.Title,
		Handle:           c.Handle,
		Broadcast:        c.Kind == domain.KindChannel,
		ParticipantCount: c.ParticipantCount,
		Description:      c.Description,
		Verified:         c.Verified,
	}
}
