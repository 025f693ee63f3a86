package strategies

import (
	"context"
	"fmt"

	"github.com/chanscout/chanscout-cli/internal/core/domain"
	"github.com/chanscout/chanscout-cli/internal/core/ports/driven"
)

// Ensure Content implements the interface.
var _ driven.SearchStrategy = (*Content)(nil)

// Content searches over message content and back-resolves each hit to
// the owning entity. Only entities that actually own a matching
// message are returned; incidental entities the surface includes are
// dropped.
type Content struct {
	client driven.EntityClient
}

// NewContent creates the content search strategy.
func NewContent(client driven.EntityClient) *Content {
	return &Content{client: client}
}

// Name returns the FoundBy attribution tag.
func (s *Content) Name() string { return "content" }

// Search runs a global content search and returns the owning entities.
func (s *Content) Search(ctx context.Context, query string, limit int) ([]driven.RawEntity, error) {
	result, err := s.client.SearchMessages(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("content search %q: %w", query, err)
	}

	owners := make(map[string]bool, len(result.Messages))
	for _, msg := range result.Messages {
		if msg.PeerID == "" {
			continue
		}
		owners[domain.NormalizeIdentity(msg.PeerID)] = true
	}

	entities := make([]driven.RawEntity, 0, len(result.Entities))
	for _, e := range result.Entities {
		if owners[domain.NormalizeIdentity(e.ID)] {
			entities = append(entities, e)
		}
	}
	return entities, nil
}
