// Package strategies implements the independent retrieval surfaces
// behind driven.SearchStrategy.
//
// Each strategy locates candidate communities for one query variant on
// a distinct surface:
//
//   - Direct: global title/handle search
//   - Contacts: resolvable-peers search
//   - Content: message search, back-resolved to the owning entity
//   - Catalog: curated directory entities scanned for handle mentions
//   - Related: expansion from top direct hits via category similarity
//
// Strategies skip per-item malformed records and continue; a whole
// strategy may fail, which the aggregator absorbs.
package strategies
