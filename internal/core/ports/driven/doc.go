// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the engine to function:
//
//   - EntityClient: Entity search and content retrieval on the
//     messaging platform. The engine consumes this as an abstract
//     capability; the wire protocol lives entirely in the adapter.
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the engine degrades gracefully:
//
//   - LLMService: Text inference for quality assessment. Without it,
//     enrichment is metrics-only and assessments carry the fallback.
//   - ResultStore: Best-effort persistence of discovered candidates
//     and search history. A store failure never fails a discovery call.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or strategy package
package driven
