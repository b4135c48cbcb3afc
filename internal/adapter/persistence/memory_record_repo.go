package persistence

import (
	"context"
	"sync"

	"github.com/ireporter/ireporter/internal/domain"
)

// InMemoryRecordRepository is a mutex-guarded RecordRepository used by tests
// and local development. It enforces the same version check as the postgres
// implementation so concurrency semantics match.
type InMemoryRecordRepository struct {
	mu      sync.RWMutex
	records map[string]*domain.Record
}

// NewInMemoryRecordRepository creates an empty in-memory record repository
func NewInMemoryRecordRepository() *InMemoryRecordRepository {
	return &InMemoryRecordRepository{records: make(map[string]*domain.Record)}
}

// Create saves a new record
func (s *InMemoryRecordRepository) Create(_ context.Context, record *domain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.ID] = clone(record)
	return nil
}

// FindByID retrieves a record, or domain.ErrNotFound
func (s *InMemoryRecordRepository) FindByID(_ context.Context, id string) (*domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return clone(record), nil
}

// FindAll retrieves all records, restricted to one owner when ownerID is set
func (s *InMemoryRecordRepository) FindAll(_ context.Context, ownerID string) ([]*domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]*domain.Record, 0, len(s.records))
	for _, record := range s.records {
		if ownerID != "" && record.OwnerID != ownerID {
			continue
		}
		records = append(records, clone(record))
	}
	return records, nil
}

// Update persists the record if the stored version still equals expectedVersion
func (s *InMemoryRecordRepository) Update(_ context.Context, record *domain.Record, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.records[record.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if stored.Version != expectedVersion {
		return domain.ErrConflict
	}
	next := clone(record)
	next.Version = expectedVersion + 1
	s.records[record.ID] = next
	record.Version = next.Version
	return nil
}

// Delete removes a record, or domain.ErrNotFound
func (s *InMemoryRecordRepository) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.records, id)
	return nil
}

func clone(r *domain.Record) *domain.Record {
	copied := *r
	copied.StatusHistory = append([]domain.StatusChange(nil), r.StatusHistory...)
	return &copied
}
