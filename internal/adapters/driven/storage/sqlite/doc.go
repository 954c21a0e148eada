// Package sqlite provides a SQLite-based implementation of the cache
// store driven ports.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements both cache namespaces
// through a single database connection:
//
//   - ExtractionStore: Extraction results keyed by content fingerprint
//   - ScoringStore: Screening results keyed by derived scoring key
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory as .up.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.sift/data/cache.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode; upserts are single statements, so readers never
// observe a partially written record.
package sqlite
