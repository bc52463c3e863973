package channel_utils

import (
	"context"
	"sync"

	"github.com/orion99879-crypto/orion99/application/ports/outbound"
)

// ForEach runs fn for every item on the worker pool and waits for all of
// them. The first error cancels the shared context so in-flight work can
// stop early, and that error is returned. Completion order is unordered;
// callers that care about order must key results by the item itself.
//
// workerPool must not be the pool the caller itself runs on: ForEach blocks
// until every item completes, and waiting on subtasks in the caller's own
// pool deadlocks once that pool is saturated with callers.
func ForEach[T any](ctx context.Context, workerPool outbound.TaskDispatcher, items []T, fn func(context.Context, T) error) error {
	if len(items) == 0 {
		return nil
	}

	newCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, len(items))
	var wg sync.WaitGroup

	for _, item := range items {
		item := item
		wg.Add(1)
		err := workerPool.Submit(func() {
			defer wg.Done()
			select {
			case <-newCtx.Done():
				return
			default:
			}
			if err := fn(newCtx, item); err != nil {
				errCh <- err
				cancel()
			}
		})
		if err != nil {
			wg.Done()
			errCh <- err
			cancel()
		}
	}

	wg.Wait()
	close(errCh)

	for err := range errCh {
		if err != nil {
			return err
		}
	}

	return nil
}
