package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested record does not exist.
	// A cache lookup miss is reported with this sentinel, never as a
	// store failure.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStoreUnavailable indicates the backing persistence could not
	// complete a get or put. It is never silently degraded to a cache
	// miss: doing so would trigger avoidable duplicate inference calls,
	// and degrading it to a hit would serve wrong results.
	ErrStoreUnavailable = errors.New("cache store unavailable")

	// ErrExtractionFailed indicates the extraction operation rejected
	// its input or its backend failed. Not retried by the core.
	ErrExtractionFailed = errors.New("resume extraction failed")

	// ErrScoringFailed indicates the scoring operation rejected its
	// input or the inference backend was unreachable. Not retried by
	// the core.
	ErrScoringFailed = errors.New("resume scoring failed")

	// ErrLLMUnavailable indicates the inference service is not
	// configured or unreachable at startup.
	ErrLLMUnavailable = errors.New("LLM service unavailable")
)
