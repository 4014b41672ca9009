// Package httputil provides HTTP error handling utilities.
package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	shared "github.com/bucketlist/server/pkg"
)

// MaxErrorBodySize is the maximum size of error message returned to clients
const MaxErrorBodySize = 500

// HTTPError is an error that carries the status it should be answered with
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s (status %d): %s", e.Status, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s (status %d)", e.Status, e.StatusCode)
}

// NewError builds an HTTPError with the standard status text.
func NewError(code int, format string, args ...interface{}) *HTTPError {
	return &HTTPError{
		StatusCode: code,
		Status:     http.StatusText(code),
		Body:       truncate(fmt.Sprintf(format, args...), MaxErrorBodySize),
	}
}

// truncate truncates a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// StatusFor maps an error onto the status code a client should see.
func StatusFor(err error) int {
	var httpErr *HTTPError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &httpErr):
		return httpErr.StatusCode
	case errors.Is(err, shared.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrMalformedInput):
		return http.StatusBadRequest
	case errors.Is(err, shared.ErrWriteFailure):
		return http.StatusBadGateway
	case errors.Is(err, shared.ErrInitialization):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("Failed to encode response", "error", err)
	}
}

// WriteError answers with {"error": ...}. Internal errors get a generic
// message so collaborator details do not leak.
func WriteError(w http.ResponseWriter, err error) {
	code := StatusFor(err)
	msg := http.StatusText(code)

	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr.Body != "" {
		msg = httpErr.Body
	} else if code < http.StatusInternalServerError {
		msg = truncate(err.Error(), MaxErrorBodySize)
	}

	WriteJSON(w, code, map[string]string{"error": msg})
}
