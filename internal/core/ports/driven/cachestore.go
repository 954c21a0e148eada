package driven

import (
	"context"

	"github.com/talentsift/sift-cli/internal/core/domain"
)

// ExtractionStore persists cached extraction results, keyed by content
// fingerprint. It is one of the two independent cache namespaces.
//
// Get returns domain.ErrNotFound when the key is simply absent; any
// infrastructure failure is wrapped in domain.ErrStoreUnavailable.
// Put is an atomic per-key upsert: an existing record has its payload
// replaced and UpdatedAt refreshed, a new record gets both timestamps
// set. Implementations must be safe for concurrent use; a reader
// observes either the old or the new record in full, never a partial
// write.
type ExtractionStore interface {
	// Get retrieves the extraction record for a fingerprint.
	Get(ctx context.Context, fp domain.Fingerprint) (*domain.ExtractionRecord, error)

	// Put inserts or updates the extraction record for a fingerprint.
	Put(ctx context.Context, fp domain.Fingerprint, payload domain.RawPayload) error
}

// ScoringStore persists cached scoring results, keyed by the derived
// scoring key. Same lookup, upsert and error semantics as
// ExtractionStore. The two namespaces are separate because their key
// shapes and payload schemas differ and extraction lifetime is managed
// independently of any one scoring relationship.
type ScoringStore interface {
	// Get retrieves the scoring record for a key.
	Get(ctx context.Context, key domain.ScoringKey) (*domain.ScoringRecord, error)

	// Put inserts or updates a scoring record under record.Key.
	Put(ctx context.Context, record domain.ScoringRecord) error
}

// CacheStats reports record counts per namespace.
type CacheStats struct {
	// Extractions is the number of cached extraction records.
	Extractions int64

	// Scorings is the number of cached scoring records.
	Scorings int64
}

// CacheStatsReader is an optional interface a store pair may implement
// to expose namespace sizes for observability.
type CacheStatsReader interface {
	// Stats returns record counts for both namespaces.
	Stats(ctx context.Context) (CacheStats, error)
}
