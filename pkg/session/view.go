package session

import (
	"context"
	"fmt"

	shared "github.com/bucketlist/server/pkg"
	"github.com/bucketlist/server/pkg/completion"
	"github.com/bucketlist/server/pkg/domain/activity"
	"github.com/bucketlist/server/pkg/filter"
	"github.com/bucketlist/server/pkg/infrastructure/metrics"
)

// Item is a visible record with the user's completion flag.
type Item struct {
	*activity.Record
	Completed bool `json:"completed"`
}

func (s *Session) UserID() string { return s.userID }

// Visible evaluates the current view against the latest snapshots.
func (s *Session) Visible() []Item {
	s.mu.RLock()
	q := s.view.Query()
	s.mu.RUnlock()
	return s.Evaluate(q)
}

// Evaluate runs q against the latest snapshots without touching the view.
func (s *Session) Evaluate(q filter.Query) []Item {
	done := s.completions.Snapshot()
	records := filter.Apply(s.catalog.Records(), q, done)
	metrics.VisibleActivities.Observe(float64(len(records)))
	return Items(records, done)
}

// Items pairs records with their completion flags.
func Items(records []*activity.Record, done completion.Snapshot) []Item {
	items := make([]Item, len(records))
	for i, r := range records {
		items[i] = Item{Record: r, Completed: done.IsCompleted(r.ID)}
	}
	return items
}

// Get returns one record with its completion flag.
func (s *Session) Get(id string) (Item, error) {
	r, ok := s.catalog.Get(id)
	if !ok {
		return Item{}, fmt.Errorf("%w: activity %s", shared.ErrNotFound, id)
	}
	return Item{Record: r, Completed: s.completions.IsCompleted(id)}, nil
}

// Toggle issues exactly one completion write. Local state only changes when
// the next completion snapshot arrives. Only marking requires the id to be in
// the catalog; removals of stale entries always go through.
func (s *Session) Toggle(ctx context.Context, id string, completed bool) error {
	if _, ok := s.catalog.Get(id); completed && !ok {
		return fmt.Errorf("%w: activity %s", shared.ErrNotFound, id)
	}
	return s.toggler.Toggle(ctx, s.userID, id, completed)
}

// Query returns the current view as an engine query.
func (s *Session) Query() filter.Query {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view.Query()
}

// Mode returns whether the view is showing the list or the map.
func (s *Session) Mode() filter.Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view.Mode()
}

func (s *Session) SelectCategory(c activity.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view.SelectCategory(c)
}

func (s *Session) ToggleFilter(d filter.Dimension, label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view.ToggleFilter(d, label)
}

func (s *Session) SetSearch(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.SetSearch(term)
}

func (s *Session) SetCompletedOnly(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.SetCompletedOnly(on)
}

func (s *Session) ShowMap(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.ShowMap(on)
}
