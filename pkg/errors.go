package shared

import (
	"errors"

	"github.com/bucketlist/server/pkg/domain/activity"
)

// Failure classes shared by every layer. Wrap with fmt.Errorf("...: %w", ErrX)
// and inspect with errors.Is.
var (
	// ErrInitialization means authentication or the document store could not be set up.
	ErrInitialization = errors.New("initialization failure")

	// ErrWriteFailure means the store rejected a completion write.
	ErrWriteFailure = errors.New("write failure")

	// ErrMalformedInput marks record data that cannot be used as-is.
	ErrMalformedInput = activity.ErrMalformedInput

	// ErrNotFound is returned when an activity id is not in the catalog.
	ErrNotFound = errors.New("not found")
)
