package store

import (
	"errors"
	"sync"

	"github.com/i474232898/weather-records/internal/weather"
)

var (
	// ErrNotFound is returned when no record exists for a given identifier.
	ErrNotFound = errors.New("weather record not found")
)

// MemoryStore is a concurrency-safe in-memory record store.
// Records live for the lifetime of the process; there is no eviction.
type MemoryStore struct {
	mu sync.RWMutex

	// key: record id
	data map[string]weather.Record
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]weather.Record),
	}
}

// Save inserts a record, replacing any record with the same id.
func (s *MemoryStore) Save(rec weather.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[rec.ID] = rec
}

// Get returns the record stored under id.
func (s *MemoryStore) Get(id string) (weather.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.data[id]
	if !ok {
		return weather.Record{}, ErrNotFound
	}
	return rec, nil
}

// Len reports how many records are held.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.data)
}
