package driving

import (
	"context"

	"github.com/chanscout/chanscout-cli/internal/core/domain"
)

// DiscoveryService provides channel discovery to external actors.
type DiscoveryService interface {
	// Discover finds, ranks and optionally enriches public communities
	// matching the query. An empty result is a valid terminal state,
	// not an error; only invalid options produce a caller-visible
	// failure.
	Discover(ctx context.Context, query string, opts domain.DiscoverOptions) ([]domain.EnrichedCandidate, error)

	// ClearCaches empties the result and enrichment caches immediately.
	ClearCaches()
}
