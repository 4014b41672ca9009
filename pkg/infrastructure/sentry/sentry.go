package sentry

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
)

type Config struct {
	DSN              string
	Environment      string
	Release          string
	ServerName       string
	TracesSampleRate float64
}

// scrubbedHeaders never leave the process. The anonymous id is a user identifier.
var scrubbedHeaders = []string{"Authorization", "Cookie", "X-Anonymous-Id"}

// Init configures the global Sentry hub. An empty DSN disables error tracking
// and is not an error.
func Init(cfg Config, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.DSN == "" {
		logger.Warn("Sentry DSN not configured - error tracking disabled")
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		Release:          cfg.Release,
		ServerName:       cfg.ServerName,
		TracesSampleRate: cfg.TracesSampleRate,
		BeforeSend:       scrub,
	})
	if err != nil {
		return fmt.Errorf("sentry init: %w", err)
	}

	logger.Info("Sentry initialized", "environment", cfg.Environment, "release", cfg.Release)
	return nil
}

func scrub(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
	if event.Request == nil || event.Request.Headers == nil {
		return event
	}
	for _, h := range scrubbedHeaders {
		delete(event.Request.Headers, h)
		delete(event.Request.Headers, http.CanonicalHeaderKey(h))
	}
	return event
}

// CaptureException reports err with tags attached to this event only.
func CaptureException(err error, tags map[string]string) {
	if err == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		sentry.CaptureException(err)
	})
}

// Flush waits up to timeout for buffered events. Call before a function returns.
func Flush(timeout time.Duration) bool {
	return sentry.Flush(timeout)
}

// RecoverAndCapture reports a panic and re-panics. Use with defer.
func RecoverAndCapture(logger *slog.Logger) {
	r := recover()
	if r == nil {
		return
	}
	err, ok := r.(error)
	if !ok {
		err = fmt.Errorf("panic: %v", r)
	}
	if logger != nil {
		logger.Error("Recovered panic", "error", err)
	}
	CaptureException(err, map[string]string{"panic": "true"})
	Flush(2 * time.Second)
	panic(r)
}
