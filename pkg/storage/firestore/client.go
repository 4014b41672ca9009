package firestore

import (
	"cloud.google.com/go/firestore"

	shared "github.com/bucketlist/server/pkg"
	"github.com/bucketlist/server/pkg/domain/activity"
)

type Client struct {
	fs *firestore.Client
}

func NewClient(client *firestore.Client) *Client {
	return &Client{fs: client}
}

func (c *Client) Close() error {
	return c.fs.Close()
}

func (c *Client) app(appID string) *firestore.DocumentRef {
	return c.fs.Collection(shared.CollectionArtifacts).Doc(appID)
}

// Activities is the shared catalog: artifacts/{appId}/public/data/bucketListActivities/{id}
func (c *Client) Activities(appID string) *Collection[activity.Record] {
	return &Collection[activity.Record]{
		Ref:           c.app(appID).Collection("public").Doc("data").Collection(shared.CollectionActivities),
		ToFirestore:   ActivityToFirestore,
		FromFirestore: FirestoreToActivity,
	}
}

// CompletedActivities are per-user: artifacts/{appId}/users/{uid}/completedActivities/{activityId}
// A document exists only while the activity is completed.
func (c *Client) CompletedActivities(appID, userID string) *Collection[Completion] {
	return &Collection[Completion]{
		Ref:           c.app(appID).Collection("users").Doc(userID).Collection(shared.CollectionCompletedActivities),
		ToFirestore:   CompletionToFirestore,
		FromFirestore: FirestoreToCompletion,
	}
}
