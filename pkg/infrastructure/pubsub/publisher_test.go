package pubsub

import (
	"context"
	"encoding/json"
	"testing"

	shared "github.com/bucketlist/server/pkg"
	"github.com/bucketlist/server/pkg/types"
)

func TestNewCloudEvent(t *testing.T) {
	payload := types.CompletionChangedEvent{UserID: "u1", ActivityID: "emerald-lake-trail", Completed: true}
	e, err := NewCloudEvent(SourceBucketListAPI, shared.EventTypeCompletionChanged, "emerald-lake-trail", payload)
	if err != nil {
		t.Fatalf("NewCloudEvent() error = %v", err)
	}

	if e.ID() == "" {
		t.Error("Expected a generated event id")
	}
	if e.Type() != shared.EventTypeCompletionChanged {
		t.Errorf("Type() = %q, want %q", e.Type(), shared.EventTypeCompletionChanged)
	}
	if e.Subject() != "emerald-lake-trail" {
		t.Errorf("Subject() = %q, want emerald-lake-trail", e.Subject())
	}
	if e.Time().IsZero() {
		t.Error("Expected the event time to be set")
	}
	if err := e.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	var got types.CompletionChangedEvent
	if err := json.Unmarshal(e.Data(), &got); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	if got != payload {
		t.Errorf("Data = %+v, want %+v", got, payload)
	}
}

func TestTopicFor(t *testing.T) {
	if got := TopicFor(shared.EventTypeCompletionChanged); got != shared.TopicCompletionChanged {
		t.Errorf("TopicFor() = %q, want %q", got, shared.TopicCompletionChanged)
	}
	if got := TopicFor(shared.EventTypeCatalogSeedRequested); got != shared.TopicCatalogSeed {
		t.Errorf("TopicFor(seed) = %q, want %q", got, shared.TopicCatalogSeed)
	}
	if got := TopicFor("unknown"); got != "" {
		t.Errorf("TopicFor(unknown) = %q, want empty", got)
	}
}

func TestLogPublisher(t *testing.T) {
	e, _ := NewCloudEvent(SourceBucketListAPI, shared.EventTypeCompletionChanged, "", map[string]string{"k": "v"})
	id, err := (&LogPublisher{}).PublishCloudEvent(context.Background(), shared.TopicCompletionChanged, e)
	if err != nil || id != "mock-msg-id" {
		t.Errorf("PublishCloudEvent() = %q, %v", id, err)
	}
}
