package strategies

import (
	"context"
	"fmt"

	"github.com/chanscout/chanscout-cli/internal/core/ports/driven"
)

// Ensure Contacts implements the interface.
var _ driven.SearchStrategy = (*Contacts)(nil)

// Contacts searches the resolvable-peers surface: entities the account
// can see through its contact graph.
type Contacts struct {
	client driven.EntityClient
}

// NewContacts creates the contact-style search strategy.
func NewContacts(client driven.EntityClient) *Contacts {
	return &Contacts{client: client}
}

// Name returns the FoundBy attribution tag.
func (s *Contacts) Name() string { return "contacts" }

// Search performs a contact-scoped search for the query variant.
func (s *Contacts) Search(ctx context.Context, query string, limit int) ([]driven.RawEntity, error) {
	entities, err := s.client.SearchContacts(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("contacts search %q: %w", query, err)
	}
	return entities, nil
}
