package driven

import (
	"context"
	"time"

	"github.com/chanscout/chanscout-cli/internal/core/domain"
)

// SearchRecord is one persisted history row.
type SearchRecord struct {
	// ID is a unique record identifier.
	ID string

	// Query is the caller's original query.
	Query string

	// ResultCount is how many candidates the call returned.
	ResultCount int

	// At is when the search ran.
	At time.Time
}

// PopularQuery is an aggregated history entry.
type PopularQuery struct {
	Query string
	Count int
}

// ResultStore persists discovered candidates and search history.
// All operations are best-effort from the engine's point of view: a
// store failure is logged and never fails a discovery call. No
// transactional requirement beyond not losing an acknowledged write.
type ResultStore interface {
	// SaveCandidates upserts discovered candidates for a query.
	SaveCandidates(ctx context.Context, query string, candidates []domain.SearchCandidate) error

	// SaveSearch appends one history record.
	SaveSearch(ctx context.Context, rec SearchRecord) error

	// CandidatesByCategory returns previously discovered candidates in
	// a category, largest first. Backs the related-entity strategy's
	// local similarity lookup.
	CandidatesByCategory(ctx context.Context, category string, minParticipants, limit int) ([]domain.SearchCandidate, error)

	// CandidateByIdentity looks up one stored candidate.
	// Returns domain.ErrEntityNotFound when absent.
	CandidateByIdentity(ctx context.Context, identity string) (domain.SearchCandidate, error)

	// PopularQueries aggregates history over the given window.
	PopularQueries(ctx context.Context, since time.Time, limit int) ([]PopularQuery, error)

	// Close releases resources.
	Close() error
}
