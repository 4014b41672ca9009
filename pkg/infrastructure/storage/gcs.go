package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"

	shared "github.com/bucketlist/server/pkg"
)

// MaxImageBytes caps a single activity image read.
const MaxImageBytes = 10 << 20

var ErrTooLarge = errors.New("object too large")

// StorageAdapter reads activity images from Google Cloud Storage.
type StorageAdapter struct {
	Client *storage.Client
}

// Read returns the whole object. Missing objects or buckets map to
// shared.ErrNotFound and anything over MaxImageBytes to ErrTooLarge.
func (a *StorageAdapter) Read(ctx context.Context, bucketName, objectName string) ([]byte, error) {
	rc, err := a.Client.Bucket(bucketName).Object(objectName).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
		return nil, fmt.Errorf("%w: gs://%s/%s", shared.ErrNotFound, bucketName, objectName)
	}
	if err != nil {
		return nil, fmt.Errorf("open gs://%s/%s: %w", bucketName, objectName, err)
	}
	defer rc.Close()

	if rc.Attrs.Size > MaxImageBytes {
		return nil, fmt.Errorf("%w: gs://%s/%s is %d bytes", ErrTooLarge, bucketName, objectName, rc.Attrs.Size)
	}
	return readLimited(rc, MaxImageBytes)
}

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, ErrTooLarge
	}
	return data, nil
}
