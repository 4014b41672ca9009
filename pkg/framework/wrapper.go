package framework

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/cloudevents/sdk-go/v2/event"

	"github.com/bucketlist/server/pkg/bootstrap"
	"github.com/bucketlist/server/pkg/infrastructure/sentry"
	"github.com/bucketlist/server/pkg/types"
)

// FrameworkContext contains dependencies injected by the framework
type FrameworkContext struct {
	Service *bootstrap.Service
	Logger  *slog.Logger
	// Requester is whoever the triggering message names, if anyone.
	Requester string
}

// HandlerFunc is the signature for a cloud function handler
type HandlerFunc func(ctx context.Context, e event.Event, fwCtx *FrameworkContext) (interface{}, error)

// WrapCloudEvent wraps a handler with structured start/finish logging and
// Sentry reporting. Handles both HTTP and Pub/Sub triggers.
func WrapCloudEvent(serviceName string, svc *bootstrap.Service, handler HandlerFunc) func(context.Context, event.Event) error {
	return func(ctx context.Context, e event.Event) error {
		requester := extractRequester(e)

		triggerType := "pubsub"
		if e.Type() == "google.cloud.functions.http" {
			triggerType = "http"
		}

		logger := bootstrap.NewLogger(serviceName).With("event_id", e.ID(), "trigger", triggerType)
		if requester != "" {
			logger = logger.With("requester", requester)
		}
		logger.Info("Function started")
		defer sentry.RecoverAndCapture(logger)

		fwCtx := &FrameworkContext{
			Service:   svc,
			Logger:    logger,
			Requester: requester,
		}

		start := time.Now()
		outputs, err := handler(ctx, e, fwCtx)
		if err != nil {
			logger.Error("Function failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
			sentry.CaptureException(err, map[string]string{
				"service":  serviceName,
				"event_id": e.ID(),
			})
			sentry.Flush(2 * time.Second)
			return err
		}

		logger.Info("Function completed successfully", "outputs", outputs, "duration_ms", time.Since(start).Milliseconds())
		return nil
	}
}

// messagePayload returns the Pub/Sub message body of e. Messages published
// with PublishCloudEvent carry a structured CloudEvent, marked by the ce-type
// attribute; its data is returned instead of the envelope.
func messagePayload(e event.Event) ([]byte, map[string]string, error) {
	var msg types.PubSubMessage
	if err := e.DataAs(&msg); err != nil {
		return nil, nil, err
	}
	if msg.Message.Attributes["ce-type"] == "" || len(msg.Message.Data) == 0 {
		return msg.Message.Data, msg.Message.Attributes, nil
	}

	var inner event.Event
	if err := json.Unmarshal(msg.Message.Data, &inner); err != nil {
		return nil, nil, fmt.Errorf("decode structured cloudevent: %w", err)
	}
	return inner.Data(), msg.Message.Attributes, nil
}

// extractRequester reads "requester" from a Pub/Sub payload, falling back to
// the message attributes.
func extractRequester(e event.Event) string {
	data, attrs, err := messagePayload(e)
	if err != nil {
		return ""
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(data, &payload); err == nil {
		if r, ok := payload["requester"].(string); ok {
			return r
		}
	}
	return attrs["requester"]
}

// DecodeMessage unmarshals the Pub/Sub payload of e into v. An empty payload
// leaves v untouched.
func DecodeMessage(e event.Event, v interface{}) error {
	data, _, err := messagePayload(e)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}
