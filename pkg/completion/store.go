package completion

import "sync"

// Snapshot is the full completion state of one user: activity id -> completed.
// The canonical stored form only ever holds true entries.
type Snapshot map[string]bool

// Clone returns an independent copy.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// IsCompleted is true only for an entry that is present and true. Stale ids
// that no longer exist in the catalog are harmless.
func (s Snapshot) IsCompleted(id string) bool {
	return s[id]
}

// Store keeps the latest pushed snapshot. It is never mutated locally; a
// toggle only takes effect when the next snapshot arrives.
type Store struct {
	mu     sync.RWMutex
	state  Snapshot
	loaded bool
}

func NewStore() *Store {
	return &Store{state: Snapshot{}}
}

// Replace swaps in a full snapshot (last snapshot wins).
func (s *Store) Replace(snap map[string]bool) {
	next := Snapshot(snap).Clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = next
	s.loaded = true
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

func (s *Store) IsCompleted(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsCompleted(id)
}

func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}
