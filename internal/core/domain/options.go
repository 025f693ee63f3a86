package domain

import (
	"fmt"
	"time"
)

// Default option values applied by Normalize.
const (
	DefaultLimit         = 50
	DefaultAnalysisLimit = 10
	DefaultTimeout       = 30 * time.Second
)

// KindFilter restricts discovery to one entity kind.
type KindFilter string

const (
	// FilterAll admits channels and groups.
	FilterAll KindFilter = "all"

	// FilterChannels admits broadcast channels only.
	FilterChannels KindFilter = "channels"

	// FilterGroups admits discussion groups only.
	FilterGroups KindFilter = "groups"
)

// DiscoverOptions configures one discovery call.
type DiscoverOptions struct {
	// Kind restricts results to channels, groups, or both.
	Kind KindFilter

	// MinParticipants drops candidates below this member count.
	MinParticipants int

	// MaxParticipants drops candidates above this member count.
	// Zero means unbounded.
	MaxParticipants int

	// VerifiedOnly drops candidates without the verification badge.
	VerifiedOnly bool

	// Category keeps only candidates classified into this category.
	// Empty means no category filter.
	Category string

	// Limit caps the number of returned candidates.
	Limit int

	// Enrich enables the metrics + AI assessment pass over the top
	// AnalysisLimit candidates.
	Enrich bool

	// AnalysisLimit caps how many ranked candidates are enriched.
	AnalysisLimit int

	// SortByQuality re-sorts enriched results by assessed quality
	// score. Ignored unless Enrich is set.
	SortByQuality bool

	// Timeout bounds the aggregator's strategy fan-out.
	Timeout time.Duration

	// UseCache consults and populates the result cache.
	UseCache bool
}

// Validate reports the only hard caller-visible failures: structurally
// invalid option values. Every other failure mode during discovery is
// absorbed and represented as data.
func (o DiscoverOptions) Validate() error {
	if o.Limit < 0 {
		return fmt.Errorf("%w: negative limit %d", ErrInvalidOptions, o.Limit)
	}
	if o.MinParticipants < 0 {
		return fmt.Errorf("%w: negative min participants %d", ErrInvalidOptions, o.MinParticipants)
	}
	if o.MaxParticipants < 0 {
		return fmt.Errorf("%w: negative max participants %d", ErrInvalidOptions, o.MaxParticipants)
	}
	if o.MaxParticipants > 0 && o.MaxParticipants < o.MinParticipants {
		return fmt.Errorf("%w: max participants %d below min %d",
			ErrInvalidOptions, o.MaxParticipants, o.MinParticipants)
	}
	if o.AnalysisLimit < 0 {
		return fmt.Errorf("%w: negative analysis limit %d", ErrInvalidOptions, o.AnalysisLimit)
	}
	if o.Timeout < 0 {
		return fmt.Errorf("%w: negative timeout %s", ErrInvalidOptions, o.Timeout)
	}
	switch o.Kind {
	case "", FilterAll, FilterChannels, FilterGroups:
	default:
		return fmt.Errorf("%w: unknown kind filter %q", ErrInvalidOptions, o.Kind)
	}
	return nil
}

// Normalize fills in defaults so that equivalent option sets compare
// and cache identically.
func (o DiscoverOptions) Normalize() DiscoverOptions {
	if o.Kind == "" {
		o.Kind = FilterAll
	}
	if o.Limit == 0 {
		o.Limit = DefaultLimit
	}
	if o.AnalysisLimit == 0 {
		o.AnalysisLimit = DefaultAnalysisLimit
	}
	if o.Timeout == 0 {
		o.Timeout = DefaultTimeout
	}
	return o
}

// CacheKey returns a deterministic serialization of the query and the
// normalized option fields that influence the cached result. Fields
// appear in canonical order so equivalent option sets hash identically.
// Enrichment options are excluded: the cache stores the ranked,
// unenriched list.
func (o DiscoverOptions) CacheKey(query string) string {
	n := o.Normalize()
	return fmt.Sprintf("q=%s|kind=%s|min=%d|max=%d|ver=%t|cat=%s|limit=%d",
		query, n.Kind, n.MinParticipants, n.MaxParticipants, n.VerifiedOnly, n.Category, n.Limit)
}
