// Package memory provides in-memory cache store implementations.
// Used for tests and for the "memory" store mode where persistence
// across runs is not wanted.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/talentsift/sift-cli/internal/core/domain"
	"github.com/talentsift/sift-cli/internal/core/ports/driven"
)

// Ensure the stores implement their interfaces.
var (
	_ driven.ExtractionStore  = (*ExtractionStore)(nil)
	_ driven.ScoringStore     = (*ScoringStore)(nil)
	_ driven.CacheStatsReader = (*CacheStore)(nil)
)

// CacheStore bundles the two in-memory namespaces behind one handle,
// mirroring the sqlite store's accessor shape.
type CacheStore struct {
	extractions *ExtractionStore
	scorings    *ScoringStore
}

// NewCacheStore creates both namespaces.
func NewCacheStore() *CacheStore {
	return &CacheStore{
		extractions: NewExtractionStore(),
		scorings:    NewScoringStore(),
	}
}

// ExtractionStore returns the extraction namespace.
func (s *CacheStore) ExtractionStore() driven.ExtractionStore {
	return s.extractions
}

// ScoringStore returns the scoring namespace.
func (s *CacheStore) ScoringStore() driven.ScoringStore {
	return s.scorings
}

// Stats returns record counts for both namespaces.
func (s *CacheStore) Stats(_ context.Context) (driven.CacheStats, error) {
	s.extractions.mu.RLock()
	extractions := int64(len(s.extractions.records))
	s.extractions.mu.RUnlock()

	s.scorings.mu.RLock()
	scorings := int64(len(s.scorings.records))
	s.scorings.mu.RUnlock()

	return driven.CacheStats{Extractions: extractions, Scorings: scorings}, nil
}

// Close releases nothing; present for symmetry with the sqlite store.
func (s *CacheStore) Close() error {
	return nil
}

// ExtractionStore is an in-memory implementation of driven.ExtractionStore.
type ExtractionStore struct {
	mu      sync.RWMutex
	records map[domain.Fingerprint]domain.ExtractionRecord
}

// NewExtractionStore creates a new in-memory extraction store.
func NewExtractionStore() *ExtractionStore {
	return &ExtractionStore{
		records: make(map[domain.Fingerprint]domain.ExtractionRecord),
	}
}

// Get retrieves the extraction record for a fingerprint.
func (s *ExtractionStore) Get(_ context.Context, fp domain.Fingerprint) (*domain.ExtractionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[fp]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &record, nil
}

// Put inserts or updates the extraction record for a fingerprint.
func (s *ExtractionStore) Put(_ context.Context, fp domain.Fingerprint, payload domain.RawPayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	record, ok := s.records[fp]
	if !ok {
		record = domain.ExtractionRecord{Fingerprint: fp, CreatedAt: now}
	}
	record.Payload = append(domain.RawPayload(nil), payload...)
	record.UpdatedAt = now
	s.records[fp] = record
	return nil
}

// ScoringStore is an in-memory implementation of driven.ScoringStore.
type ScoringStore struct {
	mu      sync.RWMutex
	records map[domain.ScoringKey]domain.ScoringRecord
}

// NewScoringStore creates a new in-memory scoring store.
func NewScoringStore() *ScoringStore {
	return &ScoringStore{
		records: make(map[domain.ScoringKey]domain.ScoringRecord),
	}
}

// Get retrieves the scoring record for a key.
func (s *ScoringStore) Get(_ context.Context, key domain.ScoringKey) (*domain.ScoringRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &record, nil
}

// Put inserts or updates a scoring record under record.Key.
func (s *ScoringStore) Put(_ context.Context, record domain.ScoringRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if existing, ok := s.records[record.Key]; ok {
		record.CreatedAt = existing.CreatedAt
	} else {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	record.Payload = append(domain.RawPayload(nil), record.Payload...)
	s.records[record.Key] = record
	return nil
}
