package firestore

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type ToFirestoreFunc[T any] func(*T) map[string]interface{}

// FromFirestoreFunc builds T from a document id and its data.
type FromFirestoreFunc[T any] func(id string, data map[string]interface{}) *T

type Collection[T any] struct {
	Ref           *firestore.CollectionRef
	ToFirestore   ToFirestoreFunc[T]
	FromFirestore FromFirestoreFunc[T]
}

func (c *Collection[T]) Doc(id string) *DocumentRef[T] {
	return &DocumentRef[T]{
		Ref:           c.Ref.Doc(id),
		ToFirestore:   c.ToFirestore,
		FromFirestore: c.FromFirestore,
	}
}

// GetAll reads every document in the collection.
func (c *Collection[T]) GetAll(ctx context.Context) ([]*T, error) {
	iter := c.Ref.Documents(ctx)
	defer iter.Stop()

	var out []*T
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, c.FromFirestore(snap.Ref.ID, snap.Data()))
	}
	return out, nil
}

// Snapshots calls fn with the full collection on every change until ctx is
// done. Cancellation returns nil; any other stream error is returned.
func (c *Collection[T]) Snapshots(ctx context.Context, fn func([]*T) error) error {
	iter := c.Ref.Snapshots(ctx)
	defer iter.Stop()

	for {
		qs, err := iter.Next()
		if err != nil {
			if ctx.Err() != nil || status.Code(err) == codes.Canceled || errors.Is(err, iterator.Done) {
				return nil
			}
			return err
		}
		docs, err := qs.Documents.GetAll()
		if err != nil {
			return err
		}
		items := make([]*T, 0, len(docs))
		for _, d := range docs {
			items = append(items, c.FromFirestore(d.Ref.ID, d.Data()))
		}
		if err := fn(items); err != nil {
			return err
		}
	}
}

type DocumentRef[T any] struct {
	Ref           *firestore.DocumentRef
	ToFirestore   ToFirestoreFunc[T]
	FromFirestore FromFirestoreFunc[T]
}

func (d *DocumentRef[T]) ID() string {
	return d.Ref.ID
}

func (d *DocumentRef[T]) Get(ctx context.Context) (*T, error) {
	snap, err := d.Ref.Get(ctx)
	if err != nil {
		return nil, err
	}
	return d.FromFirestore(snap.Ref.ID, snap.Data()), nil
}

func (d *DocumentRef[T]) Set(ctx context.Context, data *T) error {
	m := d.ToFirestore(data)
	_, err := d.Ref.Set(ctx, m, firestore.MergeAll)
	return err
}

// Create writes data only if the document does not exist yet. created is
// false, with a nil error, when an existing document was left untouched.
func (d *DocumentRef[T]) Create(ctx context.Context, data *T) (created bool, err error) {
	_, err = d.Ref.Create(ctx, d.ToFirestore(data))
	if status.Code(err) == codes.AlreadyExists {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes the document. Deleting a missing document succeeds.
func (d *DocumentRef[T]) Delete(ctx context.Context) error {
	_, err := d.Ref.Delete(ctx)
	if status.Code(err) == codes.NotFound {
		return nil
	}
	return err
}
