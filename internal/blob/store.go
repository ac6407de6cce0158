// Package blob abstracts the key-addressed content store holding raw file
// bytes, distinct from the metadata store holding structured records about
// those files.
package blob

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Store is the boundary to the content store. Keys are opaque strings unique
// within the store; once Put returns, the object is assumed durable.
type Store interface {
	// Put uploads the bytes and returns the generated object key
	Put(ctx context.Context, data []byte, contentType string) (string, error)

	// Get downloads the object bytes for a key
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes the object. Failures are expected to be handled
	// per-key by callers; a failed delete never aborts a broader
	// operation.
	Delete(ctx context.Context, key string) error
}

// NewObjectKey generates a date-bucketed random object key, e.g.
// "users/2026/8/29/9f1c...". Date bucketing keeps listings manageable when
// inspecting the bucket by hand.
func NewObjectKey() string {
	d := time.Now()
	return fmt.Sprintf("users/%d/%d/%d/%v", d.Year(), int(d.Month()), d.Day(), uuid.New())
}
