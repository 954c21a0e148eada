package driving

import (
	"context"

	"github.com/talentsift/sift-cli/internal/core/domain"
)

// ScreeningService provides cached resume processing to external actors.
type ScreeningService interface {
	// Process extracts and scores a resume against a job posting,
	// serving whatever it can from the two cache levels. A failure
	// aborts the call with no result; completed cache writes are kept.
	Process(ctx context.Context, documentBytes []byte, jobTitle, jobDescription string) (*ProcessResult, error)

	// Parse extracts a resume without scoring it, serving repeat
	// submissions from the extraction cache.
	Parse(ctx context.Context, documentBytes []byte) (*ParseResult, error)

	// Lookup reports cache presence for a document without invoking
	// any expensive operation.
	Lookup(ctx context.Context, documentBytes []byte, jobTitle, jobDescription string) (*LookupResult, error)
}

// ProcessResult is the caller-facing outcome of a Process call.
type ProcessResult struct {
	// Fingerprint identifies the submitted document content.
	Fingerprint domain.Fingerprint

	// Extraction is the opaque structured-extraction result. Empty
	// only when the scoring result was cached and the corresponding
	// extraction record was evicted externally.
	Extraction domain.RawPayload

	// Scoring is the opaque job-match result.
	Scoring domain.RawPayload

	// Status reports which expensive operations were skipped.
	Status domain.CacheStatus
}

// ParseResult is the caller-facing outcome of a Parse call.
type ParseResult struct {
	// Fingerprint identifies the submitted document content.
	Fingerprint domain.Fingerprint

	// Extraction is the opaque structured-extraction result.
	Extraction domain.RawPayload

	// Cached is true when the result was served from the cache.
	Cached bool
}

// LookupResult reports cache presence without side effects.
type LookupResult struct {
	// Fingerprint identifies the submitted document content.
	Fingerprint domain.Fingerprint

	// ScoringKey is the derived key for the document+job pair. Empty
	// when no job fields were supplied.
	ScoringKey domain.ScoringKey

	// ExtractionPresent is true when the extraction namespace holds a
	// record for the fingerprint.
	ExtractionPresent bool

	// ScoringPresent is true when the scoring namespace holds a record
	// for the derived key.
	ScoringPresent bool
}
