package smoke

import (
	"context"
	"sync"
	"sync/atomic"
)

// forEach runs fn for indices [0, n) on a fixed pool of workers. It returns
// the number of failed calls and the first error seen.
func forEach(ctx context.Context, workers, n int, fn func(context.Context, int) error) (int, error) {
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	var (
		failed   int64
		once     sync.Once
		firstErr error
		wg       sync.WaitGroup
	)

	jobs := make(chan int, workers*2)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := fn(ctx, i); err != nil {
					atomic.AddInt64(&failed, 1)
					once.Do(func() { firstErr = err })
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := 0; i < n; i++ {
			select {
			case <-ctx.Done():
				return
			case jobs <- i:
			}
		}
	}()

	wg.Wait()

	if firstErr == nil && ctx.Err() != nil {
		return int(failed), ctx.Err()
	}
	return int(failed), firstErr
}
