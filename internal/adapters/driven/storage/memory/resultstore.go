// Package memory provides in-memory storage adapters, used for tests
// and for running without a data directory.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/chanscout/chanscout-cli/internal/core/domain"
	"github.com/chanscout/chanscout-cli/internal/core/ports/driven"
)

// Ensure ResultStore implements the interface.
var _ driven.ResultStore = (*ResultStore)(nil)

// ResultStore is an in-memory implementation of driven.ResultStore.
type ResultStore struct {
	mu         sync.RWMutex
	candidates map[string]domain.SearchCandidate
	history    []driven.SearchRecord
}

// NewResultStore creates a new in-memory result store.
func NewResultStore() *ResultStore {
	return &ResultStore{
		candidates: make(map[string]domain.SearchCandidate),
	}
}

// SaveCandidates upserts discovered candidates keyed by identity.
func (s *ResultStore) SaveCandidates(_ context.Context, _ string, candidates []domain.SearchCandidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range candidates {
		s.candidates[c.Identity] = c
	}
	return nil
}

// SaveSearch appends one history record.
func (s *ResultStore) SaveSearch(_ context.Context, rec driven.SearchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, rec)
	return nil
}

// CandidatesByCategory returns stored candidates in a category,
// largest first.
func (s *ResultStore) CandidatesByCategory(_ context.Context, category string, minParticipants, limit int) ([]domain.SearchCandidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.SearchCandidate
	for _, c := range s.candidates {
		if c.Category == category && c.ParticipantCount >= minParticipants {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].ParticipantCount != result[j].ParticipantCount {
			return result[i].ParticipantCount > result[j].ParticipantCount
		}
		return result[i].Identity < result[j].Identity
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// CandidateByIdentity looks up one stored candidate.
func (s *ResultStore) CandidateByIdentity(_ context.Context, identity string) (domain.SearchCandidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.candidates[domain.NormalizeIdentity(identity)]
	if !ok {
		return domain.SearchCandidate{}, domain.ErrEntityNotFound
	}
	return c, nil
}

// PopularQueries aggregates history since the given time.
func (s *ResultStore) PopularQueries(_ context.Context, since time.Time, limit int) ([]driven.PopularQuery, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, rec := range s.history {
		if !rec.At.Before(since) {
			counts[rec.Query]++
		}
	}

	popular := make([]driven.PopularQuery, 0, len(counts))
	for q, n := range counts {
		popular = append(popular, driven.PopularQuery{Query: q, Count: n})
	}
	sort.Slice(popular, func(i, j int) bool {
		if popular[i].Count != popular[j].Count {
			return popular[i].Count > popular[j].Count
		}
		return popular[i].Query < popular[j].Query
	})
	if len(popular) > limit {
		popular = popular[:limit]
	}
	return popular, nil
}

// Close is a no-op for the in-memory store.
func (s *ResultStore) Close() error {
	return nil
}
