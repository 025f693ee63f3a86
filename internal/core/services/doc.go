// Package services implements the core discovery pipeline.
//
// The pipeline runs: query expansion, concurrent strategy fan-out with
// merge and deduplication, relevance ranking, TTL caching, and the
// optional throttled enrichment pass (activity metrics + AI quality
// assessment).
//
// Services receive their dependencies through constructors. Optional
// dependencies (LLM, result store) may be nil; the pipeline degrades
// gracefully instead of failing.
package services
