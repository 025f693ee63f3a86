package domain

import "time"

// EntityKind distinguishes broadcast channels from discussion groups.
type EntityKind string

const (
	// KindChannel is a broadcast channel (one-to-many).
	KindChannel EntityKind = "channel"

	// KindGroup is a discussion group (many-to-many).
	KindGroup EntityKind = "group"
)

// VariantOrigin tags how a query variant was derived.
type VariantOrigin string

const (
	// OriginOriginal is the query exactly as the caller supplied it.
	OriginOriginal VariantOrigin = "original"

	// OriginSynonym is a variant produced by synonym substitution.
	OriginSynonym VariantOrigin = "synonym"

	// OriginTranslation is a variant produced by cross-language substitution.
	OriginTranslation VariantOrigin = "translation"
)

// QueryVariant is one expansion of the caller's query.
// Variants are created per discovery call and discarded afterwards.
type QueryVariant struct {
	// Text is the variant query string.
	Text string

	// Origin records how the variant was derived.
	Origin VariantOrigin
}

// SearchCandidate represents one public community surfaced by a
// retrieval strategy. After aggregation there is at most one candidate
// per Identity; duplicates across strategies are merged, never listed
// twice. Instances are immutable after aggregation except for the
// FoundBy union, which happens only inside the aggregator's merge loop.
type SearchCandidate struct {
	// Identity is the stable platform-assigned key, already passed
	// through NormalizeIdentity.
	Identity string

	// Title is the display name.
	Title string

	// Handle is the public username, without the "@" prefix.
	// Empty for communities reachable only by identity.
	Handle string

	// Kind is channel or group.
	Kind EntityKind

	// ParticipantCount is the subscriber/member count reported by the
	// surface that returned the candidate.
	ParticipantCount int

	// Description is the community's about text, if any.
	Description string

	// Verified reports the platform verification badge.
	Verified bool

	// Category is the heuristic topic classification (see Classify).
	Category string

	// Link is the public join link, empty when Handle is empty.
	Link string

	// FoundBy accumulates every strategy/variant tag that surfaced
	// this candidate.
	FoundBy []string
}

// FoundByContains reports whether the candidate already carries the tag.
func (c *SearchCandidate) FoundByContains(tag string) bool {
	for _, t := range c.FoundBy {
		if t == tag {
			return true
		}
	}
	return false
}

// MergeFoundBy unions the given tags into FoundBy, preserving order of
// first appearance. Must only be called from the aggregator merge loop.
func (c *SearchCandidate) MergeFoundBy(tags ...string) {
	for _, tag := range tags {
		if !c.FoundByContains(tag) {
			c.FoundBy = append(c.FoundBy, tag)
		}
	}
}

// ContentSample is one post excerpt used for metrics and AI assessment.
type ContentSample struct {
	// Text is the post text, possibly truncated by the collector.
	Text string

	// PostedAt is when the item was published.
	PostedAt time.Time

	// Views is the view counter, zero when the surface reports none.
	Views int

	// Reactions is the summed reaction counter, zero when absent.
	Reactions int

	// HasMedia reports an attached photo/video/document.
	HasMedia bool

	// IsForward reports the item was forwarded from elsewhere.
	IsForward bool
}
