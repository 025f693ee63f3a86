package strategies

import (
	"context"
	"errors"
	"strings"

	"github.com/chanscout/chanscout-cli/internal/core/domain"
	"github.com/chanscout/chanscout-cli/internal/core/ports/driven"
	"github.com/chanscout/chanscout-cli/internal/logger"
)

// Ensure Catalog implements the interface.
var _ driven.SearchStrategy = (*Catalog)(nil)

// Catalog scanning bounds.
const (
	catalogScanDepth  = 50
	maxResolvesPerCat = 10
)

// DefaultCatalogs are curated directory entities known to post channel
// collections. Overridable from configuration.
var DefaultCatalogs = []string{"tgcatalog", "channelsdaily"}

// Catalog looks up a small fixed set of curated directory entities,
// scans their recent posts for handle mentions, resolves each mention
// and keeps the ones relevant to the query. An unreachable catalog is
// skipped, not fatal.
type Catalog struct {
	client   driven.EntityClient
	catalogs []string
}

// NewCatalog creates the curated-catalog strategy. With an empty
// handle list the defaults are used.
func NewCatalog(client driven.EntityClient, catalogs []string) *Catalog {
	if len(catalogs) == 0 {
		catalogs = DefaultCatalogs
	}
	return &Catalog{client: client, catalogs: catalogs}
}

// Name returns the FoundBy attribution tag.
func (s *Catalog) Name() string { return "catalog" }

// Search scans every configured catalog and collects query-relevant
// mentioned entities.
func (s *Catalog) Search(ctx context.Context, query string, limit int) ([]driven.RawEntity, error) {
	var entities []driven.RawEntity
	for _, handle := range s.catalogs {
		found, err := s.scanCatalog(ctx, handle, query)
		if err != nil {
			logger.Debug("Catalog %s unavailable: %v", handle, err)
			continue
		}
		entities = append(entities, found...)
		if len(entities) >= limit {
			entities = entities[:limit]
			break
		}
	}
	return entities, nil
}

// scanCatalog resolves one directory entity and extracts relevant
// mentions from its recent posts.
func (s *Catalog) scanCatalog(ctx context.Context, catalog, query string) ([]driven.RawEntity, error) {
	directory, err := s.client.ResolveHandle(ctx, catalog)
	if err != nil {
		return nil, err
	}
	messages, err := s.client.RecentMessages(ctx, directory.ID, catalogScanDepth)
	if err != nil {
		return nil, err
	}

	var mentions []string
	for _, msg := range messages {
		mentions = append(mentions, extractMentions(msg.Text)...)
	}

	var entities []driven.RawEntity
	resolved := 0
	for _, mention := range mentions {
		if resolved >= maxResolvesPerCat {
			break
		}
		if mention == catalog {
			continue
		}
		entity, err := s.client.ResolveHandle(ctx, mention)
		resolved++
		if err != nil {
			if !errors.Is(err, domain.ErrEntityNotFound) {
				logger.Debug("Resolving mention @%s failed: %v", mention, err)
			}
			continue
		}
		if matchesQuery(entity, query) {
			entities = append(entities, entity)
		}
	}
	return entities, nil
}

// matchesQuery keeps only mentioned entities plausibly related to the
// query; catalogs mention plenty of unrelated communities.
func matchesQuery(e driven.RawEntity, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(e.Title), q) ||
		strings.Contains(strings.ToLower(e.Handle), q) ||
		strings.Contains(strings.ToLower(e.Description), q)
}
