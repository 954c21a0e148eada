package domain

import (
	"encoding/json"
	"time"
)

// RawPayload is an opaque serialised result at the storage boundary.
// The cache core never inspects it; schema validation, if any, is
// layered above the core.
type RawPayload = json.RawMessage

// ExtractionRecord is a cached structured-extraction result, keyed by
// the content fingerprint alone. One record exists per distinct
// document content regardless of how many times, or under how many
// names, the document is submitted.
//
// Records are created on first miss and updated in place if re-derived.
// The core never deletes them; eviction is an external policy.
type ExtractionRecord struct {
	// Fingerprint is the content digest this record was derived from.
	Fingerprint Fingerprint

	// Payload is the opaque extraction result.
	Payload RawPayload

	// CreatedAt is when the record was first written.
	CreatedAt time.Time

	// UpdatedAt is refreshed on every upsert.
	UpdatedAt time.Time
}

// ScoringRecord is a cached screening result, keyed by the derived
// scoring key. It carries the fingerprint and the job fields it was
// derived from for reverse lookup and audit.
//
// A ScoringRecord logically depends on the ExtractionRecord with the
// same fingerprint, but the two are independently cacheable: a scoring
// record alone is sufficient to answer a repeat query even if the
// extraction record was evicted externally.
type ScoringRecord struct {
	// Key is the derived scoring cache key.
	Key ScoringKey

	// Fingerprint is the content digest of the scored document.
	Fingerprint Fingerprint

	// JobTitle is the job title used for this evaluation, as submitted.
	JobTitle string

	// JobDescription is the job description used, as submitted.
	JobDescription string

	// Payload is the opaque scoring result.
	Payload RawPayload

	// CreatedAt is when the record was first written.
	CreatedAt time.Time

	// UpdatedAt is refreshed on every upsert.
	UpdatedAt time.Time
}

// CacheStatus reports which expensive operations a Process call was
// able to skip. It is a stable observability surface: callers can
// distinguish the zero-, one- and two-call cost scenarios from it.
type CacheStatus struct {
	// ExtractionCached is true when the extraction result was served
	// from the cache.
	ExtractionCached bool `json:"extraction_cached"`

	// ScoringCached is true when the scoring result was served from
	// the cache.
	ScoringCached bool `json:"scoring_cached"`
}
