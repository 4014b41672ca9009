package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	shared "github.com/bucketlist/server/pkg"
	"github.com/bucketlist/server/pkg/domain/activity"
	"github.com/bucketlist/server/pkg/filter"
	"github.com/bucketlist/server/pkg/infrastructure/database"
	"github.com/bucketlist/server/pkg/testing/mocks"
)

var testSeed = []*activity.Record{
	{ID: "zirkel", Category: activity.CategoryHikes, Name: "Zirkel Circle Trail", Location: "Steamboat Springs", Length: "10.8 miles (loop)", Latitude: 40.8, Longitude: -106.7},
	{ID: "arthurs", Category: activity.CategoryHikes, Name: "Arthur's Rock Trail", Location: "Fort Collins", Length: "3.2 miles (round trip)", Latitude: 40.5576, Longitude: -105.1601},
	{ID: "vail", Category: activity.CategorySkiResorts, Name: "Vail", Location: "Vail", Latitude: 39.6403, Longitude: -106.3742},
}

func start(t *testing.T, db shared.Database) (*Session, <-chan error) {
	t.Helper()
	s := New(Options{UserID: "u1", Database: db, Seed: testSeed})
	errc := make(chan error, 1)
	go func() { errc <- s.Run(context.Background()) }()
	t.Cleanup(s.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.WaitReady(ctx))
	return s, errc
}

// eventually polls cond; snapshots land asynchronously.
func eventually(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	assert.Eventually(t, cond, 2*time.Second, 5*time.Millisecond, msg)
}

func visibleIDs(s *Session) []string {
	var out []string
	for _, it := range s.Visible() {
		out = append(out, it.ID)
	}
	return out
}

func TestSession_SeedsEmptyCatalogAndFilters(t *testing.T) {
	db := database.NewMemoryAdapter()
	s, _ := start(t, db)

	eventually(t, func() bool { return len(visibleIDs(s)) == 2 }, "seeded hikes visible")
	assert.Equal(t, []string{"arthurs", "zirkel"}, visibleIDs(s))

	require.NoError(t, s.ToggleFilter(filter.DimensionLength, "Short (< 5 miles)"))
	assert.Equal(t, []string{"arthurs"}, visibleIDs(s))

	require.NoError(t, s.SelectCategory(activity.CategorySkiResorts))
	assert.Equal(t, []string{"vail"}, visibleIDs(s))
	assert.True(t, s.Query().Filters.Empty())
}

func TestSession_ToggleRoundTrip(t *testing.T) {
	db := database.NewMemoryAdapter()
	s, _ := start(t, db)
	eventually(t, func() bool { return len(visibleIDs(s)) == 2 }, "catalog loaded")

	s.SetCompletedOnly(true)
	assert.Empty(t, s.Visible())

	require.NoError(t, s.Toggle(context.Background(), "arthurs", true))
	eventually(t, func() bool { return len(s.Visible()) == 1 }, "completion snapshot applied")
	item, err := s.Get("arthurs")
	require.NoError(t, err)
	assert.True(t, item.Completed)

	require.NoError(t, s.Toggle(context.Background(), "arthurs", false))
	eventually(t, func() bool { return len(s.Visible()) == 0 }, "removal snapshot applied")

	stored, _ := db.GetCompletions(context.Background(), "u1")
	_, present := stored["arthurs"]
	assert.False(t, present, "uncompleting deletes the entry")
}

func TestSession_ToggleUnknownActivity(t *testing.T) {
	s, _ := start(t, database.NewMemoryAdapter())
	err := s.Toggle(context.Background(), "nope", true)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestSession_RemoveStaleCompletion(t *testing.T) {
	db := database.NewMemoryAdapter()
	require.NoError(t, db.SetCompleted(context.Background(), "u1", "retired-trail"))
	s, _ := start(t, db)

	require.NoError(t, s.Toggle(context.Background(), "retired-trail", false))

	stored, err := db.GetCompletions(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotContains(t, stored, "retired-trail")
}

func TestSession_WriteFailureDoesNotChangeState(t *testing.T) {
	mem := database.NewMemoryAdapter()
	db := &mocks.MockDatabase{
		ListActivitiesFunc:   mem.ListActivities,
		CreateActivityFunc:   mem.CreateActivity,
		WatchActivitiesFunc:  mem.WatchActivities,
		WatchCompletionsFunc: mem.WatchCompletions,
		SetCompletedFunc: func(ctx context.Context, userID, activityID string) error {
			return errors.New("permission denied")
		},
	}
	s, _ := start(t, db)
	eventually(t, func() bool { return len(visibleIDs(s)) == 2 }, "catalog loaded")

	err := s.Toggle(context.Background(), "arthurs", true)
	assert.True(t, errors.Is(err, shared.ErrWriteFailure))

	item, err := s.Get("arthurs")
	require.NoError(t, err)
	assert.False(t, item.Completed)
}

func TestSession_CloseStopsRun(t *testing.T) {
	s, errc := start(t, database.NewMemoryAdapter())
	s.Close()

	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Close")
	}

	// Updates is closed once Run returns.
	for range s.Updates() {
	}
}

func TestSession_StreamFailureIsInitializationError(t *testing.T) {
	db := &mocks.MockDatabase{
		WatchActivitiesFunc: func(ctx context.Context, fn func([]*activity.Record) error) error {
			return errors.New("firestore unavailable")
		},
	}
	s := New(Options{UserID: "u1", Database: db})
	err := s.Run(context.Background())
	assert.True(t, errors.Is(err, shared.ErrInitialization))
}

func TestSession_WaitReadyHonoursContext(t *testing.T) {
	s := New(Options{UserID: "u1", Database: &mocks.MockDatabase{}})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, s.WaitReady(ctx), context.DeadlineExceeded)
}

func TestSession_WaitReadyFailsWhenRunStops(t *testing.T) {
	db := &mocks.MockDatabase{
		WatchActivitiesFunc: func(ctx context.Context, fn func([]*activity.Record) error) error {
			return errors.New("firestore unavailable")
		},
	}
	s := New(Options{UserID: "u1", Database: db})
	go s.Run(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.True(t, errors.Is(s.WaitReady(ctx), shared.ErrInitialization))
}
