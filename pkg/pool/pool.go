package pool

import (
	"context"
	"sync"
)

// WorkerFunc processes one item. A non-nil return is collected and reported
// by Run; it does not stop the other workers.
type WorkerFunc[T any] func(ctx context.Context, item T) error

// Run fans items out to numWorkers goroutines and blocks until every
// dispatched item has been handled or ctx is cancelled. Cancellation stops
// the dispatch; items already picked up still finish. The returned slice
// holds one error per failed item, in completion order.
func Run[T any](ctx context.Context, items []T, numWorkers int, workerFunc WorkerFunc[T]) []error {
	if numWorkers < 1 {
		numWorkers = 1
	}

	work := make(chan T)
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range work {
				if ctx.Err() != nil {
					return
				}
				if err := workerFunc(ctx, item); err != nil {
					mu.Lock()
					errs = append(errs, err)
					mu.Unlock()
				}
			}
		}()
	}

dispatch:
	for _, item := range items {
		select {
		case work <- item:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(work)
	wg.Wait()

	return errs
}
