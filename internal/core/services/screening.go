package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/talentsift/sift-cli/internal/core/domain"
	"github.com/talentsift/sift-cli/internal/core/ports/driven"
	"github.com/talentsift/sift-cli/internal/core/ports/driving"
	"github.com/talentsift/sift-cli/internal/logger"
)

// Ensure ScreeningService implements the interface.
var _ driving.ScreeningService = (*ScreeningService)(nil)

// ScreeningService is the two-level cache orchestrator. It sits
// between callers and the two expensive inference operations and
// decides, per request, which of them can be skipped.
//
// Concurrent calls for different inputs proceed independently.
// Concurrent calls for the same key are not serialised: both may miss
// and both may invoke the expensive operations. The duplicate cost is
// an accepted tradeoff; the store's per-key upserts keep the final
// state consistent either way (last write wins).
type ScreeningService struct {
	extractions driven.ExtractionStore
	scorings    driven.ScoringStore
	extractor   driven.ResumeExtractor
	scorer      driven.ResumeScorer
}

// NewScreeningService creates a new screening service. All four
// dependencies are required; the stores are constructed once at
// process start and injected, never reached through a global.
func NewScreeningService(
	extractions driven.ExtractionStore,
	scorings driven.ScoringStore,
	extractor driven.ResumeExtractor,
	scorer driven.ResumeScorer,
) *ScreeningService {
	return &ScreeningService{
		extractions: extractions,
		scorings:    scorings,
		extractor:   extractor,
		scorer:      scorer,
	}
}

// Process extracts and scores a resume against a job posting.
//
// The lookup order is fixed: the scoring namespace is consulted first
// because a hit there is the zero-inference-call path; only on a miss
// is the extraction namespace consulted, and only on a miss there is
// the extraction operation invoked. Store failures abort the call
// (fail-closed); they are never treated as a miss or a hit.
func (s *ScreeningService) Process(
	ctx context.Context,
	documentBytes []byte,
	jobTitle, jobDescription string,
) (*driving.ProcessResult, error) {
	fp := domain.FingerprintBytes(documentBytes)
	key := domain.DeriveScoringKey(fp, jobTitle, jobDescription)

	logger.Section("Screening")
	logger.Debug("Fingerprint: %s..., scoring key: %s...", fp.Short(), key.Short())

	// Level 1: scoring namespace.
	scoring, err := s.scorings.Get(ctx, key)
	switch {
	case err == nil:
		logger.Info("Cache HIT for scoring: %s...", key.Short())
		return s.completeFromCache(ctx, fp, scoring)
	case errors.Is(err, domain.ErrNotFound):
		logger.Info("Cache MISS for scoring: %s...", key.Short())
	default:
		return nil, fmt.Errorf("scoring lookup: %w", err)
	}

	// Level 2: extraction namespace.
	extraction, extractionCached, err := s.extraction(ctx, fp, documentBytes)
	if err != nil {
		return nil, err
	}

	scored, err := s.scorer.Score(ctx, extraction, jobTitle, jobDescription)
	if err != nil {
		// The extraction write (if any) is kept: extraction cached
		// with scoring absent is a valid, resumable state.
		return nil, fmt.Errorf("score: %w", err)
	}

	record := domain.ScoringRecord{
		Key:            key,
		Fingerprint:    fp,
		JobTitle:       jobTitle,
		JobDescription: jobDescription,
		Payload:        scored,
	}
	if err := s.scorings.Put(ctx, record); err != nil {
		return nil, fmt.Errorf("store scoring: %w", err)
	}
	logger.Info("Stored scoring result: %s...", key.Short())

	return &driving.ProcessResult{
		Fingerprint: fp,
		Extraction:  extraction,
		Scoring:     scored,
		Status: domain.CacheStatus{
			ExtractionCached: extractionCached,
			ScoringCached:    false,
		},
	}, nil
}

// completeFromCache assembles the response for a scoring hit. The
// extraction payload still has to be obtained, but never by a fresh
// extraction call: it comes from a Level 2 lookup. When the extraction
// record was evicted by an external policy the cached scoring record
// alone answers the request, with an empty extraction payload.
func (s *ScreeningService) completeFromCache(
	ctx context.Context,
	fp domain.Fingerprint,
	scoring *domain.ScoringRecord,
) (*driving.ProcessResult, error) {
	result := &driving.ProcessResult{
		Fingerprint: fp,
		Scoring:     scoring.Payload,
		Status: domain.CacheStatus{
			ScoringCached: true,
		},
	}

	extraction, err := s.extractions.Get(ctx, fp)
	switch {
	case err == nil:
		result.Extraction = extraction.Payload
		result.Status.ExtractionCached = true
	case errors.Is(err, domain.ErrNotFound):
		logger.Warn("Extraction record evicted for %s..., serving scoring result alone", fp.Short())
	default:
		return nil, fmt.Errorf("extraction lookup: %w", err)
	}

	return result, nil
}

// extraction returns the extraction payload for a document, from the
// cache when possible. On a miss it invokes the expensive extract
// operation and writes the result back before returning; an extraction
// failure aborts with no partial cache state.
func (s *ScreeningService) extraction(
	ctx context.Context,
	fp domain.Fingerprint,
	documentBytes []byte,
) (domain.RawPayload, bool, error) {
	cached, err := s.extractions.Get(ctx, fp)
	switch {
	case err == nil:
		logger.Info("Cache HIT for extraction: %s...", fp.Short())
		return cached.Payload, true, nil
	case errors.Is(err, domain.ErrNotFound):
		logger.Info("Cache MISS for extraction: %s...", fp.Short())
	default:
		return nil, false, fmt.Errorf("extraction lookup: %w", err)
	}

	payload, err := s.extractor.Extract(ctx, documentBytes)
	if err != nil {
		return nil, false, fmt.Errorf("extract: %w", err)
	}

	if err := s.extractions.Put(ctx, fp, payload); err != nil {
		return nil, false, fmt.Errorf("store extraction: %w", err)
	}
	logger.Info("Stored extraction result: %s...", fp.Short())

	return payload, false, nil
}

// Parse extracts a resume without scoring it.
func (s *ScreeningService) Parse(ctx context.Context, documentBytes []byte) (*driving.ParseResult, error) {
	fp := domain.FingerprintBytes(documentBytes)

	logger.Section("Extraction")
	logger.Debug("Fingerprint: %s...", fp.Short())

	payload, cached, err := s.extraction(ctx, fp, documentBytes)
	if err != nil {
		return nil, err
	}

	return &driving.ParseResult{
		Fingerprint: fp,
		Extraction:  payload,
		Cached:      cached,
	}, nil
}

// Lookup reports cache presence for a document+job pair without
// invoking any expensive operation or writing any record.
func (s *ScreeningService) Lookup(
	ctx context.Context,
	documentBytes []byte,
	jobTitle, jobDescription string,
) (*driving.LookupResult, error) {
	fp := domain.FingerprintBytes(documentBytes)

	result := &driving.LookupResult{Fingerprint: fp}

	if _, err := s.extractions.Get(ctx, fp); err == nil {
		result.ExtractionPresent = true
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("extraction lookup: %w", err)
	}

	if jobTitle == "" && jobDescription == "" {
		return result, nil
	}

	result.ScoringKey = domain.DeriveScoringKey(fp, jobTitle, jobDescription)
	if _, err := s.scorings.Get(ctx, result.ScoringKey); err == nil {
		result.ScoringPresent = true
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("scoring lookup: %w", err)
	}

	return result, nil
}
