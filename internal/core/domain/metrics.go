package domain

import "time"

// ActivityMetrics holds activity statistics computed from a bounded
// sample of a candidate's most recent posts.
//
// PostsSampled == 0 is a valid "insufficient data" state with all
// derived fields zero; it is not an error. A fetch failure is reported
// separately as ErrMetricsUnavailable.
type ActivityMetrics struct {
	// SubscriberCount is the member count at collection time.
	SubscriberCount int `json:"subscriberCount"`

	// PostsSampled is how many items contributed to the averages.
	PostsSampled int `json:"postsSampled"`

	// AvgPostsPerDay is PostsSampled over the sample span in days.
	AvgPostsPerDay float64 `json:"avgPostsPerDay"`

	// AvgViewsPerPost is the integer mean of view counters. Items
	// without a counter count as zero, they are not excluded.
	AvgViewsPerPost int `json:"avgViewsPerPost"`

	// AvgReactionsPerPost is the integer mean of reaction counters.
	AvgReactionsPerPost int `json:"avgReactionsPerPost"`

	// AvgPostLength is the integer mean text length in characters.
	AvgPostLength int `json:"avgPostLength"`

	// MediaRatio is the percentage of sampled items carrying media.
	MediaRatio int `json:"mediaRatio"`

	// ForwardRatio is the percentage of sampled items that are forwards.
	ForwardRatio int `json:"forwardRatio"`

	// LastPostAt is the newest sampled item's timestamp, zero when no
	// items were sampled.
	LastPostAt time.Time `json:"lastPostAt,omitzero"`
}
