package shared

import (
	"context"

	"github.com/cloudevents/sdk-go/v2/event"

	"github.com/bucketlist/server/pkg/domain/activity"
)

// --- Persistence Interfaces ---

// CatalogSource reads and seeds the shared activity catalog.
type CatalogSource interface {
	ListActivities(ctx context.Context) ([]*activity.Record, error)
	GetActivity(ctx context.Context, id string) (*activity.Record, error)
	// CreateActivity writes the record only if no document with its id exists.
	// created is false when an existing document was left untouched.
	CreateActivity(ctx context.Context, record *activity.Record) (created bool, err error)
	// WatchActivities pushes a full catalog snapshot to fn on every change until
	// ctx is done. A nil return means the watch was cancelled.
	WatchActivities(ctx context.Context, fn func([]*activity.Record) error) error
}

// CompletionSink is the per-user completion keyspace.
type CompletionSink interface {
	GetCompletions(ctx context.Context, userID string) (map[string]bool, error)
	WatchCompletions(ctx context.Context, userID string, fn func(map[string]bool) error) error
	SetCompleted(ctx context.Context, userID, activityID string) error
	RemoveCompleted(ctx context.Context, userID, activityID string) error
}

type Database interface {
	CatalogSource
	CompletionSink
}

// --- Messaging Interfaces ---

type Publisher interface {
	PublishCloudEvent(ctx context.Context, topic string, e event.Event) (string, error)
}

// --- Storage Interfaces ---

// BlobStore reads activity images. A missing object is reported as ErrNotFound.
type BlobStore interface {
	Read(ctx context.Context, bucket, object string) ([]byte, error)
}

// --- Identity Interfaces ---

// IdentityVerifier turns a bearer token into a stable user id.
type IdentityVerifier interface {
	VerifyIDToken(ctx context.Context, token string) (string, error)
}
