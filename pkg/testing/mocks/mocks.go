package mocks

import (
	"context"
	"fmt"

	"github.com/cloudevents/sdk-go/v2/event"

	"github.com/bucketlist/server/pkg/domain/activity"
)

// --- Mock Database ---
type MockDatabase struct {
	ListActivitiesFunc   func(ctx context.Context) ([]*activity.Record, error)
	GetActivityFunc      func(ctx context.Context, id string) (*activity.Record, error)
	CreateActivityFunc   func(ctx context.Context, record *activity.Record) (bool, error)
	WatchActivitiesFunc  func(ctx context.Context, fn func([]*activity.Record) error) error
	GetCompletionsFunc   func(ctx context.Context, userID string) (map[string]bool, error)
	WatchCompletionsFunc func(ctx context.Context, userID string, fn func(map[string]bool) error) error
	SetCompletedFunc     func(ctx context.Context, userID, activityID string) error
	RemoveCompletedFunc  func(ctx context.Context, userID, activityID string) error
}

func (m *MockDatabase) ListActivities(ctx context.Context) ([]*activity.Record, error) {
	if m.ListActivitiesFunc != nil {
		return m.ListActivitiesFunc(ctx)
	}
	return nil, nil
}
func (m *MockDatabase) GetActivity(ctx context.Context, id string) (*activity.Record, error) {
	if m.GetActivityFunc != nil {
		return m.GetActivityFunc(ctx, id)
	}
	return nil, fmt.Errorf("activity not found")
}
func (m *MockDatabase) CreateActivity(ctx context.Context, record *activity.Record) (bool, error) {
	if m.CreateActivityFunc != nil {
		return m.CreateActivityFunc(ctx, record)
	}
	return true, nil
}
func (m *MockDatabase) WatchActivities(ctx context.Context, fn func([]*activity.Record) error) error {
	if m.WatchActivitiesFunc != nil {
		return m.WatchActivitiesFunc(ctx, fn)
	}
	<-ctx.Done()
	return nil
}
func (m *MockDatabase) GetCompletions(ctx context.Context, userID string) (map[string]bool, error) {
	if m.GetCompletionsFunc != nil {
		return m.GetCompletionsFunc(ctx, userID)
	}
	return map[string]bool{}, nil
}
func (m *MockDatabase) WatchCompletions(ctx context.Context, userID string, fn func(map[string]bool) error) error {
	if m.WatchCompletionsFunc != nil {
		return m.WatchCompletionsFunc(ctx, userID, fn)
	}
	<-ctx.Done()
	return nil
}
func (m *MockDatabase) SetCompleted(ctx context.Context, userID, activityID string) error {
	if m.SetCompletedFunc != nil {
		return m.SetCompletedFunc(ctx, userID, activityID)
	}
	return nil
}
func (m *MockDatabase) RemoveCompleted(ctx context.Context, userID, activityID string) error {
	if m.RemoveCompletedFunc != nil {
		return m.RemoveCompletedFunc(ctx, userID, activityID)
	}
	return nil
}

// --- Mock Publisher ---
type MockPublisher struct {
	PublishCloudEventFunc func(ctx context.Context, topic string, e event.Event) (string, error)
}

func (m *MockPublisher) PublishCloudEvent(ctx context.Context, topic string, e event.Event) (string, error) {
	if m.PublishCloudEventFunc != nil {
		return m.PublishCloudEventFunc(ctx, topic, e)
	}
	return "msg-id", nil
}

// --- Mock Storage ---
type MockBlobStore struct {
	ReadFunc func(ctx context.Context, bucket, object string) ([]byte, error)
}

func (m *MockBlobStore) Read(ctx context.Context, bucket, object string) ([]byte, error) {
	if m.ReadFunc != nil {
		return m.ReadFunc(ctx, bucket, object)
	}
	return []byte("mock-data"), nil
}

// --- Mock Identity ---
type MockIdentityVerifier struct {
	VerifyIDTokenFunc func(ctx context.Context, token string) (string, error)
}

func (m *MockIdentityVerifier) VerifyIDToken(ctx context.Context, token string) (string, error) {
	if m.VerifyIDTokenFunc != nil {
		return m.VerifyIDTokenFunc(ctx, token)
	}
	return "mock-user", nil
}
