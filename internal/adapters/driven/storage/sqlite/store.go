package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/talentsift/sift-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/talentsift/sift-cli/internal/core/domain"
	"github.com/talentsift/sift-cli/internal/core/ports/driven"
)

// Store is a SQLite-based cache store that provides access to both
// cache namespaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.sift/data/cache.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".sift", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "cache.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ExtractionStore returns an ExtractionStore interface backed by this store.
func (s *Store) ExtractionStore() driven.ExtractionStore {
	return &extractionStore{store: s}
}

// ScoringStore returns a ScoringStore interface backed by this store.
func (s *Store) ScoringStore() driven.ScoringStore {
	return &scoringStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// Stats returns record counts for both namespaces.
func (s *Store) Stats(ctx context.Context) (driven.CacheStats, error) {
	var stats driven.CacheStats

	row := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM extractions")
	if err := row.Scan(&stats.Extractions); err != nil {
		return stats, storeErr("counting extractions", err)
	}

	row = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM scorings")
	if err := row.Scan(&stats.Scorings); err != nil {
		return stats, storeErr("counting scorings", err)
	}

	return stats, nil
}

// Ensure Store implements the optional stats interface.
var _ driven.CacheStatsReader = (*Store)(nil)

// ==================== Extraction Store ====================

// extractionStore implements driven.ExtractionStore.
type extractionStore struct {
	store *Store
}

var _ driven.ExtractionStore = (*extractionStore)(nil)

// Get retrieves the extraction record for a fingerprint.
func (s *extractionStore) Get(ctx context.Context, fp domain.Fingerprint) (*domain.ExtractionRecord, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT fingerprint, payload, created_at, updated_at
		FROM extractions WHERE fingerprint = ?
	`, string(fp))

	var record domain.ExtractionRecord
	var fingerprint, payload string
	if err := row.Scan(&fingerprint, &payload, &record.CreatedAt, &record.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, storeErr("scanning extraction", err)
	}

	record.Fingerprint = domain.Fingerprint(fingerprint)
	record.Payload = domain.RawPayload(payload)
	return &record, nil
}

// Put inserts or updates the extraction record for a fingerprint.
// The upsert is a single statement, so a concurrent reader sees either
// the old or the new row in full.
func (s *extractionStore) Put(ctx context.Context, fp domain.Fingerprint, payload domain.RawPayload) error {
	now := time.Now().UTC()

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO extractions (fingerprint, payload, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(fingerprint) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`, string(fp), string(payload), now, now)

	if err != nil {
		return storeErr("saving extraction", err)
	}
	return nil
}

// ==================== Scoring Store ====================

// scoringStore implements driven.ScoringStore.
type scoringStore struct {
	store *Store
}

var _ driven.ScoringStore = (*scoringStore)(nil)

// Get retrieves the scoring record for a key.
func (s *scoringStore) Get(ctx context.Context, key domain.ScoringKey) (*domain.ScoringRecord, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT scoring_key, fingerprint, job_title, job_description, payload, created_at, updated_at
		FROM scorings WHERE scoring_key = ?
	`, string(key))

	var record domain.ScoringRecord
	var scoringKey, fingerprint, payload string
	if err := row.Scan(&scoringKey, &fingerprint, &record.JobTitle, &record.JobDescription,
		&payload, &record.CreatedAt, &record.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, storeErr("scanning scoring", err)
	}

	record.Key = domain.ScoringKey(scoringKey)
	record.Fingerprint = domain.Fingerprint(fingerprint)
	record.Payload = domain.RawPayload(payload)
	return &record, nil
}

// Put inserts or updates a scoring record under record.Key.
func (s *scoringStore) Put(ctx context.Context, record domain.ScoringRecord) error {
	now := time.Now().UTC()

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO scorings (scoring_key, fingerprint, job_title, job_description, payload, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(scoring_key) DO UPDATE SET
			fingerprint = excluded.fingerprint,
			job_title = excluded.job_title,
			job_description = excluded.job_description,
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`, string(record.Key), string(record.Fingerprint), record.JobTitle, record.JobDescription,
		string(record.Payload), now, now)

	if err != nil {
		return storeErr("saving scoring", err)
	}
	return nil
}

// storeErr wraps an infrastructure failure so callers can match it
// with errors.Is(err, domain.ErrStoreUnavailable).
func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
}
