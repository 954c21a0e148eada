package sqlite

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentsift/sift-cli/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	// Create a temporary directory for the test database
	tempDir, err := os.MkdirTemp("", "sift-test-*")
	require.NoError(t, err)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

// ==================== Store Creation and Migration Tests ====================

func TestNewStore_CreatesDatabase(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestNewStore_MigrationsAreIdempotent(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "sift-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	store, err := NewStore(tempDir)
	require.NoError(t, err)

	ctx := context.Background()
	fp := domain.FingerprintBytes([]byte("resume"))
	require.NoError(t, store.ExtractionStore().Put(ctx, fp, domain.RawPayload(`{"v":1}`)))
	require.NoError(t, store.Close())

	// Reopening runs migrate again; existing data must survive.
	store, err = NewStore(tempDir)
	require.NoError(t, err)
	defer store.Close()

	record, err := store.ExtractionStore().Get(ctx, fp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":1}`, string(record.Payload))
}

// ==================== Extraction Namespace Tests ====================

func TestExtractionStore_GetMissing(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.ExtractionStore().Get(context.Background(), domain.FingerprintBytes([]byte("nope")))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExtractionStore_PutGetRoundTrip(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	fp := domain.FingerprintBytes([]byte("resume"))
	payload := domain.RawPayload(`{"full_name":"Jane Doe","skills":["Go"]}`)
	require.NoError(t, store.ExtractionStore().Put(ctx, fp, payload))

	record, err := store.ExtractionStore().Get(ctx, fp)
	require.NoError(t, err)
	assert.Equal(t, fp, record.Fingerprint)
	assert.JSONEq(t, string(payload), string(record.Payload))
	assert.False(t, record.CreatedAt.IsZero())
	assert.False(t, record.UpdatedAt.IsZero())
}

func TestExtractionStore_PutUpsertsInPlace(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	fp := domain.FingerprintBytes([]byte("resume"))
	require.NoError(t, store.ExtractionStore().Put(ctx, fp, domain.RawPayload(`{"v":1}`)))
	first, err := store.ExtractionStore().Get(ctx, fp)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, store.ExtractionStore().Put(ctx, fp, domain.RawPayload(`{"v":2}`)))

	second, err := store.ExtractionStore().Get(ctx, fp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(second.Payload))
	assert.Equal(t, first.CreatedAt, second.CreatedAt, "created_at must not move on update")
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt), "updated_at must refresh on update")

	// Updated, not duplicated.
	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Extractions)
}

// ==================== Scoring Namespace Tests ====================

func TestScoringStore_PutGetRoundTrip(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	fp := domain.FingerprintBytes([]byte("resume"))
	key := domain.DeriveScoringKey(fp, "Software Engineer", "Python developer")
	record := domain.ScoringRecord{
		Key:            key,
		Fingerprint:    fp,
		JobTitle:       "Software Engineer",
		JobDescription: "Python developer",
		Payload:        domain.RawPayload(`{"overall_score":7.5}`),
	}
	require.NoError(t, store.ScoringStore().Put(ctx, record))

	got, err := store.ScoringStore().Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, key, got.Key)
	assert.Equal(t, fp, got.Fingerprint)
	assert.Equal(t, "Software Engineer", got.JobTitle)
	assert.Equal(t, "Python developer", got.JobDescription)
	assert.JSONEq(t, `{"overall_score":7.5}`, string(got.Payload))
}

func TestScoringStore_GetMissing(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.ScoringStore().Get(context.Background(), domain.ScoringKey("absent"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestScoringStore_IndependentNamespaces(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	fp := domain.FingerprintBytes([]byte("resume"))
	require.NoError(t, store.ExtractionStore().Put(ctx, fp, domain.RawPayload(`{}`)))

	// The extraction key is not visible through the scoring namespace.
	_, err := store.ScoringStore().Get(ctx, domain.ScoringKey(fp))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestScoringStore_SameDocumentDifferentJobs(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	fp := domain.FingerprintBytes([]byte("resume"))
	for _, job := range []struct{ title, desc string }{
		{"Software Engineer", "Python developer"},
		{"Data Scientist", "ML expert"},
	} {
		record := domain.ScoringRecord{
			Key:            domain.DeriveScoringKey(fp, job.title, job.desc),
			Fingerprint:    fp,
			JobTitle:       job.title,
			JobDescription: job.desc,
			Payload:        domain.RawPayload(`{"overall_score":5}`),
		}
		require.NoError(t, store.ScoringStore().Put(ctx, record))
	}

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Scorings)
}

// ==================== Failure Semantics ====================

func TestStore_ClosedStoreSurfacesStoreUnavailable(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()
	fp := domain.FingerprintBytes([]byte("resume"))

	require.NoError(t, store.Close())

	_, err := store.ExtractionStore().Get(ctx, fp)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)

	err = store.ExtractionStore().Put(ctx, fp, domain.RawPayload(`{}`))
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)

	err = store.ScoringStore().Put(ctx, domain.ScoringRecord{Key: "k", Fingerprint: fp})
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestStore_ContextCancellation(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.ExtractionStore().Get(ctx, domain.FingerprintBytes([]byte("resume")))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}
