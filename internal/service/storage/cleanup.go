package storage

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"aeromaint/internal/blob"
)

const (
	// blobDeleteWorkers bounds the delete fan-out so a huge subtree cannot
	// overwhelm the content store.
	blobDeleteWorkers = 8

	// blobDeleteTimeout caps each delete call. Blob failures are swallowed
	// anyway, so a slow delete is simply treated as a failed one.
	blobDeleteTimeout = 10 * time.Second
)

// deleteBlobs removes the given blob keys concurrently, best-effort. Every
// per-key failure is logged and counted but never propagated: blob cleanup
// must not block metadata deletion. Returns the number of failed deletes.
func deleteBlobs(ctx context.Context, store blob.Store, logger *slog.Logger, keys []string) int64 {
	if len(keys) == 0 {
		return 0
	}

	workers := blobDeleteWorkers
	if len(keys) < workers {
		workers = len(keys)
	}

	jobs := make(chan string)
	var failed atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for key := range jobs {
				opCtx, cancel := context.WithTimeout(ctx, blobDeleteTimeout)
				if err := store.Delete(opCtx, key); err != nil {
					failed.Add(1)
					logger.Warn("blob delete failed", "key", key, "error", err)
				}
				cancel()
			}
		}()
	}

	for _, key := range keys {
		jobs <- key
	}
	close(jobs)
	wg.Wait()

	return failed.Load()
}
