package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentsift/sift-cli/internal/adapters/driven/storage/memory"
	"github.com/talentsift/sift-cli/internal/core/domain"
)

// --- Mock implementations ---

// mockExtractor implements driven.ResumeExtractor with call counting.
// The counter is atomic so concurrency tests stay race-clean.
type mockExtractor struct {
	count   atomic.Int64
	payload domain.RawPayload
	err     error
}

func (m *mockExtractor) Extract(_ context.Context, _ []byte) (domain.RawPayload, error) {
	m.count.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	return m.payload, nil
}

func (m *mockExtractor) calls() int {
	return int(m.count.Load())
}

// mockScorer implements driven.ResumeScorer with call counting.
type mockScorer struct {
	count   atomic.Int64
	payload domain.RawPayload
	err     error
}

func (m *mockScorer) Score(_ context.Context, _ domain.RawPayload, _, _ string) (domain.RawPayload, error) {
	m.count.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	return m.payload, nil
}

func (m *mockScorer) calls() int {
	return int(m.count.Load())
}

// failingExtractionStore wraps a real store and fails every call.
type failingExtractionStore struct{}

func (failingExtractionStore) Get(_ context.Context, _ domain.Fingerprint) (*domain.ExtractionRecord, error) {
	return nil, domain.ErrStoreUnavailable
}

func (failingExtractionStore) Put(_ context.Context, _ domain.Fingerprint, _ domain.RawPayload) error {
	return domain.ErrStoreUnavailable
}

// --- Fixtures ---

type fixture struct {
	store     *memory.CacheStore
	extractor *mockExtractor
	scorer    *mockScorer
	service   *ScreeningService
}

func newFixture() *fixture {
	store := memory.NewCacheStore()
	extractor := &mockExtractor{payload: domain.RawPayload(`{"full_name":"Jane Doe","skills":["Go","Python"]}`)}
	scorer := &mockScorer{payload: domain.RawPayload(`{"overall_score":7.5,"recommendation":"interview"}`)}

	return &fixture{
		store:     store,
		extractor: extractor,
		scorer:    scorer,
		service: NewScreeningService(
			store.ExtractionStore(),
			store.ScoringStore(),
			extractor,
			scorer,
		),
	}
}

var (
	resumeB1 = []byte("Jane Doe\nSoftware Engineer\n5 years Python")

	jobTitle1 = "Software Engineer"
	jobDesc1  = "Python developer with cloud experience"
	jobTitle2 = "Data Scientist"
	jobDesc2  = "ML expert with production model experience"
)

// --- Tests ---

// TestProcess_ColdPath tests the two-call path on never-seen input
func TestProcess_ColdPath(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	result, err := f.service.Process(ctx, resumeB1, jobTitle1, jobDesc1)
	require.NoError(t, err)

	assert.False(t, result.Status.ExtractionCached)
	assert.False(t, result.Status.ScoringCached)
	assert.Equal(t, 1, f.extractor.calls())
	assert.Equal(t, 1, f.scorer.calls())
	assert.JSONEq(t, string(f.extractor.payload), string(result.Extraction))
	assert.JSONEq(t, string(f.scorer.payload), string(result.Scoring))
	assert.Equal(t, domain.FingerprintBytes(resumeB1), result.Fingerprint)

	// Both namespaces gained exactly one record.
	stats, err := f.store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Extractions)
	assert.Equal(t, int64(1), stats.Scorings)
}

// TestProcess_ZeroCallIdempotence tests that an identical second call
// performs zero expensive operations
func TestProcess_ZeroCallIdempotence(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.service.Process(ctx, resumeB1, jobTitle1, jobDesc1)
	require.NoError(t, err)

	result, err := f.service.Process(ctx, resumeB1, jobTitle1, jobDesc1)
	require.NoError(t, err)

	assert.True(t, result.Status.ExtractionCached)
	assert.True(t, result.Status.ScoringCached)
	assert.Equal(t, 1, f.extractor.calls())
	assert.Equal(t, 1, f.scorer.calls())
	assert.JSONEq(t, string(f.scorer.payload), string(result.Scoring))
	assert.JSONEq(t, string(f.extractor.payload), string(result.Extraction))
}

// TestProcess_PartialReuse tests same document, different job: one
// score call, zero extract calls
func TestProcess_PartialReuse(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.service.Process(ctx, resumeB1, jobTitle1, jobDesc1)
	require.NoError(t, err)

	result, err := f.service.Process(ctx, resumeB1, jobTitle2, jobDesc2)
	require.NoError(t, err)

	assert.True(t, result.Status.ExtractionCached)
	assert.False(t, result.Status.ScoringCached)
	assert.Equal(t, 1, f.extractor.calls())
	assert.Equal(t, 2, f.scorer.calls())
}

// TestProcess_ThreeCallScenario walks the concrete end-to-end scenario:
// cold, repeat, same document with a different job
func TestProcess_ThreeCallScenario(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.service.Process(ctx, resumeB1, jobTitle1, jobDesc1)
	require.NoError(t, err)
	assert.Equal(t, domain.CacheStatus{ExtractionCached: false, ScoringCached: false}, first.Status)
	assert.Equal(t, 1, f.extractor.calls())
	assert.Equal(t, 1, f.scorer.calls())

	second, err := f.service.Process(ctx, resumeB1, jobTitle1, jobDesc1)
	require.NoError(t, err)
	assert.Equal(t, domain.CacheStatus{ExtractionCached: true, ScoringCached: true}, second.Status)
	assert.Equal(t, 1, f.extractor.calls())
	assert.Equal(t, 1, f.scorer.calls())

	third, err := f.service.Process(ctx, resumeB1, jobTitle2, jobDesc2)
	require.NoError(t, err)
	assert.Equal(t, domain.CacheStatus{ExtractionCached: true, ScoringCached: false}, third.Status)
	assert.Equal(t, 1, f.extractor.calls())
	assert.Equal(t, 2, f.scorer.calls())
}

// TestProcess_ContentSensitivity tests that a one-byte difference is a
// different document and never served from the other's entries
func TestProcess_ContentSensitivity(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	mutated := make([]byte, len(resumeB1))
	copy(mutated, resumeB1)
	mutated[0] ^= 0x01

	first, err := f.service.Process(ctx, resumeB1, jobTitle1, jobDesc1)
	require.NoError(t, err)

	second, err := f.service.Process(ctx, mutated, jobTitle1, jobDesc1)
	require.NoError(t, err)

	assert.NotEqual(t, first.Fingerprint, second.Fingerprint)
	assert.False(t, second.Status.ExtractionCached)
	assert.False(t, second.Status.ScoringCached)
	assert.Equal(t, 2, f.extractor.calls())
	assert.Equal(t, 2, f.scorer.calls())
}

// TestProcess_ScoringFailureKeepsExtraction tests the resumable
// partial-progress state after a scoring failure
func TestProcess_ScoringFailureKeepsExtraction(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.scorer.err = domain.ErrScoringFailed

	_, err := f.service.Process(ctx, resumeB1, jobTitle1, jobDesc1)
	require.ErrorIs(t, err, domain.ErrScoringFailed)

	// Extraction record survives, scoring namespace stays empty.
	stats, err := f.store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Extractions)
	assert.Equal(t, int64(0), stats.Scorings)

	// The retry re-attempts scoring only, not extraction.
	f.scorer.err = nil
	result, err := f.service.Process(ctx, resumeB1, jobTitle1, jobDesc1)
	require.NoError(t, err)
	assert.True(t, result.Status.ExtractionCached)
	assert.False(t, result.Status.ScoringCached)
	assert.Equal(t, 1, f.extractor.calls())
	assert.Equal(t, 2, f.scorer.calls())
}

// TestProcess_ExtractionFailureWritesNothing tests that an extraction
// failure aborts before any cache write
func TestProcess_ExtractionFailureWritesNothing(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.extractor.err = domain.ErrExtractionFailed

	_, err := f.service.Process(ctx, resumeB1, jobTitle1, jobDesc1)
	require.ErrorIs(t, err, domain.ErrExtractionFailed)
	assert.Equal(t, 0, f.scorer.calls())

	stats, err := f.store.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Extractions)
	assert.Zero(t, stats.Scorings)
}

// TestProcess_StoreFailureIsFailClosed tests that a store error aborts
// the call instead of being treated as a miss
func TestProcess_StoreFailureIsFailClosed(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	service := NewScreeningService(
		failingExtractionStore{},
		f.store.ScoringStore(),
		f.extractor,
		f.scorer,
	)

	_, err := service.Process(ctx, resumeB1, jobTitle1, jobDesc1)
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)

	// Never degraded to a miss: no expensive call was made.
	assert.Equal(t, 0, f.extractor.calls())
	assert.Equal(t, 0, f.scorer.calls())
}

// TestProcess_ScoringHitWithEvictedExtraction tests that a cached
// scoring record alone answers a repeat query without a fresh extract
func TestProcess_ScoringHitWithEvictedExtraction(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.service.Process(ctx, resumeB1, jobTitle1, jobDesc1)
	require.NoError(t, err)

	// Simulate an external eviction policy by rebuilding the service
	// with an empty extraction namespace and the surviving scorings.
	evicted := memory.NewExtractionStore()
	service := NewScreeningService(evicted, f.store.ScoringStore(), f.extractor, f.scorer)

	result, err := service.Process(ctx, resumeB1, jobTitle1, jobDesc1)
	require.NoError(t, err)

	assert.True(t, result.Status.ScoringCached)
	assert.False(t, result.Status.ExtractionCached)
	assert.Empty(t, result.Extraction)
	assert.JSONEq(t, string(f.scorer.payload), string(result.Scoring))
	assert.Equal(t, 1, f.extractor.calls())
	assert.Equal(t, 1, f.scorer.calls())
}

// TestProcess_EmptyDocument tests that empty input is not special-cased
func TestProcess_EmptyDocument(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	result, err := f.service.Process(ctx, nil, jobTitle1, jobDesc1)
	require.NoError(t, err)
	assert.True(t, result.Fingerprint.IsValid())
	assert.Equal(t, 1, f.extractor.calls())

	// Empty bytes and nil are the same content.
	repeat, err := f.service.Process(ctx, []byte{}, jobTitle1, jobDesc1)
	require.NoError(t, err)
	assert.Equal(t, result.Fingerprint, repeat.Fingerprint)
	assert.True(t, repeat.Status.ScoringCached)
	assert.Equal(t, 1, f.extractor.calls())
}

// TestProcess_JobFieldNormalisation tests that normalised-equal job
// fields hit the same scoring record
func TestProcess_JobFieldNormalisation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.service.Process(ctx, resumeB1, "Software Engineer", "Python developer")
	require.NoError(t, err)

	result, err := f.service.Process(ctx, resumeB1, "  software ENGINEER ", "Python\tdeveloper\n")
	require.NoError(t, err)
	assert.True(t, result.Status.ScoringCached)
	assert.Equal(t, 1, f.scorer.calls())
}

func TestParse_ColdThenCached(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.service.Parse(ctx, resumeB1)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, 1, f.extractor.calls())

	second, err := f.service.Parse(ctx, resumeB1)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, 1, f.extractor.calls())
	assert.JSONEq(t, string(first.Extraction), string(second.Extraction))
}

func TestParse_SeedsProcess(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.service.Parse(ctx, resumeB1)
	require.NoError(t, err)

	result, err := f.service.Process(ctx, resumeB1, jobTitle1, jobDesc1)
	require.NoError(t, err)
	assert.True(t, result.Status.ExtractionCached)
	assert.False(t, result.Status.ScoringCached)
	assert.Equal(t, 1, f.extractor.calls())
	assert.Equal(t, 1, f.scorer.calls())
}

func TestLookup_ReportsPresenceWithoutSideEffects(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	cold, err := f.service.Lookup(ctx, resumeB1, jobTitle1, jobDesc1)
	require.NoError(t, err)
	assert.False(t, cold.ExtractionPresent)
	assert.False(t, cold.ScoringPresent)
	assert.Equal(t, 0, f.extractor.calls())
	assert.Equal(t, 0, f.scorer.calls())

	_, err = f.service.Process(ctx, resumeB1, jobTitle1, jobDesc1)
	require.NoError(t, err)

	warm, err := f.service.Lookup(ctx, resumeB1, jobTitle1, jobDesc1)
	require.NoError(t, err)
	assert.True(t, warm.ExtractionPresent)
	assert.True(t, warm.ScoringPresent)

	otherJob, err := f.service.Lookup(ctx, resumeB1, jobTitle2, jobDesc2)
	require.NoError(t, err)
	assert.True(t, otherJob.ExtractionPresent)
	assert.False(t, otherJob.ScoringPresent)
}

func TestLookup_WithoutJobFields(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	result, err := f.service.Lookup(ctx, resumeB1, "", "")
	require.NoError(t, err)
	assert.Empty(t, result.ScoringKey)
	assert.False(t, result.ScoringPresent)
}

// TestProcess_ConcurrentColdKey tests that racing cold-key requests
// both complete and leave a consistent store (at-most-duplicate calls
// are acceptable; the final record may be from either racer).
func TestProcess_ConcurrentColdKey(t *testing.T) {
	store := memory.NewCacheStore()
	extractor := &mockExtractor{payload: domain.RawPayload(`{"full_name":"Jane Doe"}`)}
	scorer := &mockScorer{payload: domain.RawPayload(`{"overall_score":7.5}`)}
	service := NewScreeningService(store.ExtractionStore(), store.ScoringStore(), extractor, scorer)
	ctx := context.Background()

	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := service.Process(ctx, resumeB1, jobTitle1, jobDesc1)
			errs <- err
		}()
	}
	require.NoError(t, <-errs)
	require.NoError(t, <-errs)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Extractions)
	assert.Equal(t, int64(1), stats.Scorings)

	result, err := service.Process(ctx, resumeB1, jobTitle1, jobDesc1)
	require.NoError(t, err)
	assert.True(t, result.Status.ScoringCached)
}

// TestProcess_WrappedPortErrors tests that adapter-wrapped failures
// still match the sentinels after service wrapping
func TestProcess_WrappedPortErrors(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.extractor.err = errors.Join(domain.ErrExtractionFailed, errors.New("upstream 422"))

	_, err := f.service.Process(ctx, resumeB1, jobTitle1, jobDesc1)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}
