package storage

import (
	"context"
	"fmt"
	"testing"
)

func TestDeleteBlobs(t *testing.T) {
	store := newFakeBlobStore()
	ctx := context.Background()

	var keys []string
	for i := 0; i < 50; i++ {
		key, err := store.Put(ctx, []byte("x"), "application/octet-stream")
		if err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		keys = append(keys, key)
	}

	failed := deleteBlobs(ctx, store, testLogger(), keys)
	if failed != 0 {
		t.Errorf("failed = %d, want 0", failed)
	}
	if got := store.deletedCount(); got != len(keys) {
		t.Errorf("%d blobs deleted, want %d", got, len(keys))
	}
}

func TestDeleteBlobsCountsFailures(t *testing.T) {
	store := newFakeBlobStore()
	ctx := context.Background()

	var keys []string
	for i := 0; i < 20; i++ {
		key, err := store.Put(ctx, []byte("x"), "application/octet-stream")
		if err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		keys = append(keys, key)
	}
	for _, key := range keys[:5] {
		store.failDeletes[key] = true
	}

	failed := deleteBlobs(ctx, store, testLogger(), keys)
	if failed != 5 {
		t.Errorf("failed = %d, want 5", failed)
	}
	// The failing keys must not stop the rest from being deleted
	if got := store.deletedCount(); got != 15 {
		t.Errorf("%d blobs deleted, want 15", got)
	}
	for _, key := range keys[:5] {
		if !store.has(key) {
			t.Errorf("failed key %s was removed anyway", key)
		}
	}
}

func TestDeleteBlobsEmpty(t *testing.T) {
	store := newFakeBlobStore()
	if failed := deleteBlobs(context.Background(), store, testLogger(), nil); failed != 0 {
		t.Errorf("failed = %d, want 0 for empty key list", failed)
	}
}

func TestDeleteBlobsMoreKeysThanWorkers(t *testing.T) {
	store := newFakeBlobStore()
	ctx := context.Background()

	keys := make([]string, 0, blobDeleteWorkers*10)
	for i := 0; i < blobDeleteWorkers*10; i++ {
		key, err := store.Put(ctx, []byte(fmt.Sprintf("payload-%d", i)), "text/plain")
		if err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		keys = append(keys, key)
	}

	if failed := deleteBlobs(ctx, store, testLogger(), keys); failed != 0 {
		t.Errorf("failed = %d, want 0", failed)
	}
	if got := store.deletedCount(); got != len(keys) {
		t.Errorf("%d blobs deleted, want %d", got, len(keys))
	}
}
