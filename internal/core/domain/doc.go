// Package domain defines the core business entities for Sift.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Fingerprint: A content digest addressing a resume document
//   - ScoringKey: A composite key addressing one document+job evaluation
//   - ExtractionRecord: A cached structured-extraction result
//   - ScoringRecord: A cached screening result
//   - CacheStatus: Which expensive operations were skipped
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
