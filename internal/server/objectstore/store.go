// Package objectstore provides access to the remote S3-compatible object
// storage backend that holds uploaded file content. The database only ever
// records the durable URL returned by Put.
package objectstore

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// Store is the upload interface of the remote object storage.
type Store interface {
	// Put streams body into the store under key and returns the durable
	// URL of the stored object.
	Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error)

	// Remove deletes the object under key. The upload pipeline itself
	// never calls it: it exists as the compensation hook for a cleanup or
	// reconciliation sweep over records that failed to persist.
	Remove(ctx context.Context, key string) error
}

// RandomStorageKey produces a date-partitioned random object key so that
// concurrent uploads can never collide.
func RandomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("uploads/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}
