package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidOptions indicates a structurally invalid option value.
	// This is the only hard caller-visible failure: every other error
	// during discovery degrades result quality, not availability.
	ErrInvalidOptions = errors.New("invalid options")

	// ErrStrategyUnavailable indicates one retrieval strategy failed or
	// timed out. Recovered inside the aggregator; other strategies are
	// unaffected.
	ErrStrategyUnavailable = errors.New("strategy unavailable")

	// ErrMetricsUnavailable indicates a candidate's content sample
	// could not be fetched at all. Distinct from a successful fetch of
	// zero items, which is valid insufficient-data state.
	ErrMetricsUnavailable = errors.New("metrics unavailable")

	// ErrAssessmentFailed indicates the inference call failed or
	// returned unparsable output. Recovered as the fallback
	// QualityAssessment, never propagated as a batch failure.
	ErrAssessmentFailed = errors.New("assessment failed")

	// ErrLLMUnavailable indicates the inference service is not
	// configured. Enrichment degrades to metrics-only.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEntityNotFound indicates a handle or identity could not be
	// resolved on the platform surface.
	ErrEntityNotFound = errors.New("entity not found")
)
