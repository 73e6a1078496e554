package store

import (
	"errors"
	"slices"
	"sync"

	"github.com/i474232898/road-conditions/internal/sensors"
)

var (
	// ErrNotFound is returned before the first successful refresh.
	ErrNotFound = errors.New("no sensor data cached")
)

// MemoryStore is a concurrency-safe single-slot store for the sensor cache.
// Each Save replaces the previous entry.
type MemoryStore struct {
	mu    sync.RWMutex
	entry *sensors.Entry
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save replaces the stored entry. The readings slice is copied so later
// changes by the caller do not leak into the cache.
func (s *MemoryStore) Save(entry sensors.Entry) {
	entry.Readings = slices.Clone(entry.Readings)
	if entry.Readings == nil {
		entry.Readings = []sensors.ProcessedReading{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entry = &entry
}

// Latest returns the stored entry.
func (s *MemoryStore) Latest() (sensors.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.entry == nil {
		return sensors.Entry{}, ErrNotFound
	}
	return *s.entry, nil
}
