package framework

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cloudevents/sdk-go/v2/event"

	shared "github.com/bucketlist/server/pkg"
	"github.com/bucketlist/server/pkg/bootstrap"
	"github.com/bucketlist/server/pkg/infrastructure/identity"
	infrapubsub "github.com/bucketlist/server/pkg/infrastructure/pubsub"
	"github.com/bucketlist/server/pkg/testing/mocks"
	"github.com/bucketlist/server/pkg/types"
)

func pubsubEvent(t *testing.T, payload interface{}, attrs map[string]string) event.Event {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}
	var msg types.PubSubMessage
	msg.Message.Data = data
	msg.Message.Attributes = attrs

	e := event.New()
	e.SetID("evt-1")
	e.SetType("google.cloud.pubsub.topic.v1.messagePublished")
	e.SetSource("//pubsub.googleapis.com/test")
	if err := e.SetData("application/json", msg); err != nil {
		t.Fatal(err)
	}
	return e
}

func TestWrapCloudEvent(t *testing.T) {
	svc := &bootstrap.Service{}
	e := pubsubEvent(t, types.CatalogSeedRequest{Requester: "ops"}, nil)

	var gotRequester string
	var gotService *bootstrap.Service
	fn := WrapCloudEvent("test", svc, func(ctx context.Context, e event.Event, fwCtx *FrameworkContext) (interface{}, error) {
		gotRequester = fwCtx.Requester
		gotService = fwCtx.Service
		return map[string]interface{}{"status": "ok"}, nil
	})

	if err := fn(context.Background(), e); err != nil {
		t.Fatalf("wrapped handler error = %v", err)
	}
	if gotRequester != "ops" {
		t.Errorf("Requester = %q, want ops", gotRequester)
	}
	if gotService != svc {
		t.Error("Service not passed through")
	}
}

func TestWrapCloudEvent_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	fn := WrapCloudEvent("test", &bootstrap.Service{}, func(ctx context.Context, e event.Event, fwCtx *FrameworkContext) (interface{}, error) {
		return nil, boom
	})
	if err := fn(context.Background(), pubsubEvent(t, map[string]string{}, nil)); !errors.Is(err, boom) {
		t.Errorf("error = %v, want %v", err, boom)
	}
}

func TestExtractRequester(t *testing.T) {
	tests := []struct {
		name    string
		payload interface{}
		attrs   map[string]string
		want    string
	}{
		{"payload", map[string]string{"requester": "cli"}, nil, "cli"},
		{"attribute fallback", map[string]string{}, map[string]string{"requester": "scheduler"}, "scheduler"},
		{"none", map[string]string{}, nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractRequester(pubsubEvent(t, tt.payload, tt.attrs)); got != tt.want {
				t.Errorf("extractRequester() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeMessage(t *testing.T) {
	var req types.CatalogSeedRequest
	if err := DecodeMessage(pubsubEvent(t, types.CatalogSeedRequest{Requester: "x"}, nil), &req); err != nil {
		t.Fatalf("DecodeMessage() error = %v", err)
	}
	if req.Requester != "x" {
		t.Errorf("Requester = %q, want x", req.Requester)
	}
}

func TestDecodeMessage_StructuredCloudEvent(t *testing.T) {
	inner, err := infrapubsub.NewCloudEvent(infrapubsub.SourceCLI, shared.EventTypeCatalogSeedRequested, "", types.CatalogSeedRequest{Requester: "cli"})
	if err != nil {
		t.Fatal(err)
	}
	e := pubsubEvent(t, inner, map[string]string{"ce-type": inner.Type()})

	var req types.CatalogSeedRequest
	if err := DecodeMessage(e, &req); err != nil {
		t.Fatalf("DecodeMessage() error = %v", err)
	}
	if req.Requester != "cli" {
		t.Errorf("Requester = %q, want cli", req.Requester)
	}
	if got := extractRequester(e); got != "cli" {
		t.Errorf("extractRequester() = %q, want cli", got)
	}
}

func TestWithIdentity(t *testing.T) {
	resolver := &identity.Resolver{Verifier: &mocks.MockIdentityVerifier{
		VerifyIDTokenFunc: func(ctx context.Context, token string) (string, error) {
			if token == "good" {
				return "uid-1", nil
			}
			return "", errors.New("bad")
		},
	}}

	var seen identity.Identity
	h := WithIdentity(resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = IdentityFrom(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name       string
		auth       string
		wantCode   int
		wantUser   string
		wantHeader bool
	}{
		{name: "token", auth: "Bearer good", wantCode: http.StatusNoContent, wantUser: "uid-1"},
		{name: "bad token", auth: "Bearer nope", wantCode: http.StatusUnauthorized},
		{name: "anonymous", wantCode: http.StatusNoContent, wantHeader: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = identity.Identity{}
			req := httptest.NewRequest(http.MethodGet, "/activities", nil)
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("code = %d, want %d", rec.Code, tt.wantCode)
			}
			if tt.wantUser != "" && seen.UserID != tt.wantUser {
				t.Errorf("UserID = %q, want %q", seen.UserID, tt.wantUser)
			}
			if got := rec.Header().Get(AnonymousIDHeader); (got != "") != tt.wantHeader {
				t.Errorf("%s header = %q, wantHeader %v", AnonymousIDHeader, got, tt.wantHeader)
			}
			if tt.wantHeader && rec.Header().Get(AnonymousIDHeader) != seen.UserID {
				t.Error("echoed anonymous id differs from resolved user")
			}
		})
	}
}
