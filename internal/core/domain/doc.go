// Package domain defines the core business entities for chanscout.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SearchCandidate: A discovered community (channel or group)
//   - ActivityMetrics: Activity statistics sampled from recent posts
//   - QualityAssessment: An AI-generated quality verdict
//   - EnrichedCandidate: A candidate with metrics and assessment attached
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
