package database

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	shared "github.com/bucketlist/server/pkg"
	"github.com/bucketlist/server/pkg/domain/activity"
	storage "github.com/bucketlist/server/pkg/storage/firestore"
)

// FirestoreAdapter provides database operations using Firestore
// It wraps our typed storage client
type FirestoreAdapter struct {
	storage *storage.Client
	appID   string
}

var _ shared.Database = (*FirestoreAdapter)(nil)

func NewFirestoreAdapter(client *firestore.Client, appID string) *FirestoreAdapter {
	return &FirestoreAdapter{
		storage: storage.NewClient(client),
		appID:   appID,
	}
}

func (a *FirestoreAdapter) Close() error {
	return a.storage.Close()
}

// --- Catalog ---

func (a *FirestoreAdapter) ListActivities(ctx context.Context) ([]*activity.Record, error) {
	return a.storage.Activities(a.appID).GetAll(ctx)
}

func (a *FirestoreAdapter) GetActivity(ctx context.Context, id string) (*activity.Record, error) {
	rec, err := a.storage.Activities(a.appID).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, fmt.Errorf("%w: activity %s", shared.ErrNotFound, id)
	}
	return rec, err
}

func (a *FirestoreAdapter) CreateActivity(ctx context.Context, record *activity.Record) (bool, error) {
	return a.storage.Activities(a.appID).Doc(record.ID).Create(ctx, record)
}

func (a *FirestoreAdapter) WatchActivities(ctx context.Context, fn func([]*activity.Record) error) error {
	return a.storage.Activities(a.appID).Snapshots(ctx, fn)
}

// --- Completions ---

func (a *FirestoreAdapter) GetCompletions(ctx context.Context, userID string) (map[string]bool, error) {
	docs, err := a.storage.CompletedActivities(a.appID, userID).GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return storage.CompletionMap(docs), nil
}

func (a *FirestoreAdapter) WatchCompletions(ctx context.Context, userID string, fn func(map[string]bool) error) error {
	return a.storage.CompletedActivities(a.appID, userID).Snapshots(ctx, func(docs []*storage.Completion) error {
		return fn(storage.CompletionMap(docs))
	})
}

func (a *FirestoreAdapter) SetCompleted(ctx context.Context, userID, activityID string) error {
	return a.storage.CompletedActivities(a.appID, userID).Doc(activityID).Set(ctx, &storage.Completion{ActivityID: activityID, Completed: true})
}

func (a *FirestoreAdapter) RemoveCompleted(ctx context.Context, userID, activityID string) error {
	return a.storage.CompletedActivities(a.appID, userID).Doc(activityID).Delete(ctx)
}
