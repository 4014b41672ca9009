package database

import (
	"context"
	"fmt"
	"sync"

	shared "github.com/bucketlist/server/pkg"
	"github.com/bucketlist/server/pkg/domain/activity"
)

// MemoryAdapter is an in-process Database with the same snapshot semantics as
// Firestore: every watcher receives the full state on subscribe and after each
// change. It backs local serving and tests.
type MemoryAdapter struct {
	mu          sync.Mutex
	activities  map[string]activity.Record
	completions map[string]map[string]bool

	nextWatcher     int
	catalogWatch    map[int]chan struct{}
	completionWatch map[string]map[int]chan struct{}
}

var _ shared.Database = (*MemoryAdapter)(nil)

func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{
		activities:      make(map[string]activity.Record),
		completions:     make(map[string]map[string]bool),
		catalogWatch:    make(map[int]chan struct{}),
		completionWatch: make(map[string]map[int]chan struct{}),
	}
}

// --- Catalog ---

func (m *MemoryAdapter) ListActivities(ctx context.Context) ([]*activity.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.catalogLocked(), nil
}

func (m *MemoryAdapter) catalogLocked() []*activity.Record {
	out := make([]*activity.Record, 0, len(m.activities))
	for _, r := range m.activities {
		rec := r
		out = append(out, &rec)
	}
	return out
}

func (m *MemoryAdapter) GetActivity(ctx context.Context, id string) (*activity.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.activities[id]
	if !ok {
		return nil, fmt.Errorf("%w: activity %s", shared.ErrNotFound, id)
	}
	return &r, nil
}

func (m *MemoryAdapter) CreateActivity(ctx context.Context, record *activity.Record) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.activities[record.ID]; exists {
		return false, nil
	}
	m.activities[record.ID] = *record
	signal(m.catalogWatch)
	return true, nil
}

func (m *MemoryAdapter) WatchActivities(ctx context.Context, fn func([]*activity.Record) error) error {
	m.mu.Lock()
	id, ch := m.register(m.catalogWatch)
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		delete(m.catalogWatch, id)
		m.mu.Unlock()
	}()

	return watchLoop(ctx, ch, func() error {
		m.mu.Lock()
		snap := m.catalogLocked()
		m.mu.Unlock()
		return fn(snap)
	})
}

// --- Completions ---

func (m *MemoryAdapter) GetCompletions(ctx context.Context, userID string) (map[string]bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.completionsLocked(userID), nil
}

func (m *MemoryAdapter) completionsLocked(userID string) map[string]bool {
	out := make(map[string]bool, len(m.completions[userID]))
	for k, v := range m.completions[userID] {
		out[k] = v
	}
	return out
}

func (m *MemoryAdapter) WatchCompletions(ctx context.Context, userID string, fn func(map[string]bool) error) error {
	m.mu.Lock()
	watchers, ok := m.completionWatch[userID]
	if !ok {
		watchers = make(map[int]chan struct{})
		m.completionWatch[userID] = watchers
	}
	id, ch := m.register(watchers)
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		delete(watchers, id)
		m.mu.Unlock()
	}()

	return watchLoop(ctx, ch, func() error {
		m.mu.Lock()
		snap := m.completionsLocked(userID)
		m.mu.Unlock()
		return fn(snap)
	})
}

func (m *MemoryAdapter) SetCompleted(ctx context.Context, userID, activityID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.completions[userID] == nil {
		m.completions[userID] = make(map[string]bool)
	}
	m.completions[userID][activityID] = true
	signal(m.completionWatch[userID])
	return nil
}

func (m *MemoryAdapter) RemoveCompleted(ctx context.Context, userID, activityID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.completions[userID], activityID)
	signal(m.completionWatch[userID])
	return nil
}

// register adds a watcher primed to deliver the initial snapshot.
func (m *MemoryAdapter) register(watchers map[int]chan struct{}) (int, chan struct{}) {
	m.nextWatcher++
	ch := make(chan struct{}, 1)
	ch <- struct{}{}
	watchers[m.nextWatcher] = ch
	return m.nextWatcher, ch
}

// signal wakes every watcher. Pending wake-ups coalesce since each delivery
// reads the latest state.
func signal(watchers map[int]chan struct{}) {
	for _, ch := range watchers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func watchLoop(ctx context.Context, wake <-chan struct{}, deliver func() error) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-wake:
			if err := deliver(); err != nil {
				return err
			}
		}
	}
}
