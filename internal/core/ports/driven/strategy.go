package driven

import "context"

// SearchStrategy is one independent method of locating entities that
// match a query. Each retrieval surface (direct search, contacts,
// content search, catalogs, related-entity expansion) implements this
// interface.
//
// Strategies must not fail on a per-item malformed record - they skip
// it and continue. A strategy may fail entirely (surface unavailable);
// the aggregator catches that, logs it, and carries on with the
// remaining strategies.
type SearchStrategy interface {
	// Name returns the strategy tag used in FoundBy attribution.
	Name() string

	// Search returns raw candidate records for one query variant.
	Search(ctx context.Context, query string, limit int) ([]RawEntity, error)
}
