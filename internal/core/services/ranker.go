package services

import (
	"math"
	"sort"
	"strings"

	"github.com/chanscout/chanscout-cli/internal/core/domain"
)

// Relevance score weights. Ranking is computable from the candidate
// alone so it can run before any enrichment cost is paid.
const (
	scoreHandleContains = 100
	scoreTitlePrefix    = 50
	scoreTitleContains  = 25
	scoreVerified       = 10
)

// RelevanceScore computes how well a candidate matches the original
// query. Deterministic; used only for ordering, never persisted.
func RelevanceScore(c domain.SearchCandidate, query string) float64 {
	q := strings.ToLower(query)
	score := 0.0

	if c.Handle != "" && strings.Contains(strings.ToLower(c.Handle), q) {
		score += scoreHandleContains
	}
	title := strings.ToLower(c.Title)
	if strings.HasPrefix(title, q) {
		score += scoreTitlePrefix
	}
	if strings.Contains(title, q) {
		score += scoreTitleContains
	}
	// Diminishing-returns popularity bonus.
	score += math.Log10(float64(c.ParticipantCount) + 1)
	if c.Verified {
		score += scoreVerified
	}
	return score
}

// Rank orders candidates by relevance to the query, highest score
// first, with a stable tie-break on ascending identity so repeated
// calls on identical input produce identical order. The input slice is
// not modified.
func Rank(candidates []domain.SearchCandidate, query string) []domain.SearchCandidate {
	ranked := make([]domain.SearchCandidate, len(candidates))
	copy(ranked, candidates)

	scores := make(map[string]float64, len(ranked))
	for _, c := range ranked {
		scores[c.Identity] = RelevanceScore(c, query)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := scores[ranked[i].Identity], scores[ranked[j].Identity]
		if si != sj {
			return si > sj
		}
		return ranked[i].Identity < ranked[j].Identity
	})
	return ranked
}
