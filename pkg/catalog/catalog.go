package catalog

import (
	"fmt"
	"sync"

	"github.com/bucketlist/server/pkg/domain/activity"
)

// Store is the process-wide, read-only view of the catalog. Each remote
// snapshot replaces the previous contents wholesale.
type Store struct {
	mu      sync.RWMutex
	records []*activity.Record
	byID    map[string]*activity.Record
	loaded  bool
}

func NewStore() *Store {
	return &Store{byID: make(map[string]*activity.Record)}
}

// New builds a loaded store from a fixed dataset. Every record must validate
// and ids must be unique across categories.
func New(records []*activity.Record) (*Store, error) {
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate activity id %q", activity.ErrMalformedInput, r.ID)
		}
		seen[r.ID] = struct{}{}
	}
	s := NewStore()
	s.Replace(records)
	return s, nil
}

// Replace swaps in a full snapshot. Distances are recomputed from coordinates,
// whatever the snapshot carried.
func (s *Store) Replace(records []*activity.Record) {
	next := make([]*activity.Record, 0, len(records))
	byID := make(map[string]*activity.Record, len(records))
	for _, r := range records {
		if r == nil {
			continue
		}
		rec := r.WithDistance()
		next = append(next, rec)
		byID[rec.ID] = rec
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = next
	s.byID = byID
	s.loaded = true
}

// Records returns the current snapshot. Callers must not mutate the records.
func (s *Store) Records() []*activity.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*activity.Record, len(s.records))
	copy(out, s.records)
	return out
}

func (s *Store) Get(id string) (*activity.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.byID[id]
	return r, ok
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Loaded reports whether at least one snapshot has been applied.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}
