package driven

import (
	"context"

	"github.com/talentsift/sift-cli/internal/core/domain"
)

// ResumeExtractor is the expensive structured-extraction operation.
// The cache core treats it as a black box that is a pure function of
// its input: the same document bytes always describe the same result,
// which is what makes the result cacheable by fingerprint.
//
// Implementations must wrap failures in domain.ErrExtractionFailed and
// must not retry internally; retry policy belongs to the adapter's
// caller, not the cache core.
type ResumeExtractor interface {
	// Extract derives an opaque structured result from raw document
	// bytes. It honours ctx cancellation and deadlines.
	Extract(ctx context.Context, documentBytes []byte) (domain.RawPayload, error)
}

// ResumeScorer is the expensive job-match scoring operation. Failures
// are wrapped in domain.ErrScoringFailed; no internal retry.
type ResumeScorer interface {
	// Score evaluates an extraction result against a job posting and
	// returns an opaque scoring result.
	Score(ctx context.Context, extraction domain.RawPayload, jobTitle, jobDescription string) (domain.RawPayload, error)
}

// ScreenerService bundles the two expensive operations with lifecycle
// hooks, mirroring how a single inference backend typically implements
// both.
type ScreenerService interface {
	ResumeExtractor
	ResumeScorer

	// ModelName returns the model identifier in use.
	ModelName() string

	// Ping validates the backend is reachable with a lightweight
	// request. Used at startup before committing to a run.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
