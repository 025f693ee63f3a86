package strategies

import (
	"context"
	"fmt"

	"github.com/chanscout/chanscout-cli/internal/core/ports/driven"
)

// Ensure Direct implements the interface.
var _ driven.SearchStrategy = (*Direct)(nil)

// Direct searches entity titles and handles on the global surface.
type Direct struct {
	client driven.EntityClient
}

// NewDirect creates the direct entity search strategy.
func NewDirect(client driven.EntityClient) *Direct {
	return &Direct{client: client}
}

// Name returns the FoundBy attribution tag.
func (s *Direct) Name() string { return "direct" }

// Search performs a global entity search for the query variant.
func (s *Direct) Search(ctx context.Context, query string, limit int) ([]driven.RawEntity, error) {
	entities, err := s.client.SearchEntities(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("direct search %q: %w", query, err)
	}
	return entities, nil
}
