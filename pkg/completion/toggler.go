package completion

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	shared "github.com/bucketlist/server/pkg"
	"github.com/bucketlist/server/pkg/infrastructure/metrics"
	infrapubsub "github.com/bucketlist/server/pkg/infrastructure/pubsub"
	"github.com/bucketlist/server/pkg/infrastructure/sentry"
	"github.com/bucketlist/server/pkg/types"
)

// Toggler turns a completion intent into exactly one store write. It never
// touches local state; callers render from the next pushed snapshot.
type Toggler struct {
	sink   shared.CompletionSink
	pub    shared.Publisher
	logger *slog.Logger
}

// NewToggler wires the sink. pub may be nil to skip change events.
func NewToggler(sink shared.CompletionSink, pub shared.Publisher, logger *slog.Logger) *Toggler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Toggler{sink: sink, pub: pub, logger: logger.With("component", "completion")}
}

// Toggle marks activityID completed (upsert) or uncompleted (delete).
// A rejected write is logged and returned wrapped in shared.ErrWriteFailure.
func (t *Toggler) Toggle(ctx context.Context, userID, activityID string, completed bool) error {
	if userID == "" {
		t.logger.Error("User not authenticated.")
		return fmt.Errorf("%w: no user identity", shared.ErrWriteFailure)
	}

	action := "remove"
	var err error
	if completed {
		action = "set"
		err = t.sink.SetCompleted(ctx, userID, activityID)
	} else {
		err = t.sink.RemoveCompleted(ctx, userID, activityID)
	}

	if err != nil {
		metrics.TogglesTotal.WithLabelValues(action, "error").Inc()
		t.logger.Error("Error toggling completed status", "user_id", userID, "activity_id", activityID, "completed", completed, "error", err)
		sentry.CaptureException(err, map[string]string{
			"activity_id": activityID,
			"action":      action,
		})
		return fmt.Errorf("%w: %s %s: %v", shared.ErrWriteFailure, action, activityID, err)
	}

	metrics.TogglesTotal.WithLabelValues(action, "ok").Inc()
	if completed {
		t.logger.Info("Activity marked as completed", "user_id", userID, "activity_id", activityID)
	} else {
		t.logger.Info("Activity marked as uncompleted", "user_id", userID, "activity_id", activityID)
	}

	t.publish(ctx, userID, activityID, completed)
	return nil
}

func (t *Toggler) publish(ctx context.Context, userID, activityID string, completed bool) {
	if t.pub == nil {
		return
	}
	e, err := infrapubsub.NewCloudEvent(infrapubsub.SourceBucketListAPI, shared.EventTypeCompletionChanged, activityID, types.CompletionChangedEvent{
		UserID:     userID,
		ActivityID: activityID,
		Completed:  completed,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		t.logger.Warn("Failed to build completion event", "error", err)
		return
	}
	if _, err := t.pub.PublishCloudEvent(ctx, infrapubsub.TopicFor(e.Type()), e); err != nil {
		// The write already succeeded; a lost event does not change what the user sees.
		t.logger.Warn("Failed to publish completion event", "activity_id", activityID, "error", err)
	}
}
