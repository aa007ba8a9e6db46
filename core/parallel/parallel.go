// Package parallel provides the worker pools used to fit and apply
// transformers over many columns or rows.
package parallel

import (
	"context"
	"runtime"
	"sync"

	"github.com/YuminosukeSato/scifeat/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// ResolveJobs converts an n_jobs value into a worker count.
// 1 runs sequentially, -1 uses every CPU and values above 1 are used as is.
// Any other value is rejected.
func ResolveJobs(nJobs int) (int, error) {
	switch {
	case nJobs == -1:
		return runtime.NumCPU(), nil
	case nJobs >= 1:
		return nJobs, nil
	default:
		return 0, errors.NewValidationError("n_jobs", "must be -1 or a positive integer", nJobs)
	}
}

// ForEach calls fn for every index in [0, n) using at most workers goroutines.
// The first error cancels ctx for the remaining calls and is returned.
// A panic inside fn is converted into an error.
func ForEach(ctx context.Context, n, workers int, fn func(ctx context.Context, i int) error) error {
	if n == 0 {
		return nil
	}
	if workers <= 1 || n == 1 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := call(ctx, i, fn); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return call(gctx, i, fn)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func call(ctx context.Context, i int, fn func(ctx context.Context, i int) error) error {
	return errors.SafeExecute("parallel.ForEach", func() error {
		return fn(ctx, i)
	})
}

// Parallelize divides the specified total number (items) across workers goroutines,
// and executes the specified function (fn) in parallel for each range (start, end).
// workers <= 0 uses the number of CPU cores.
func Parallelize(items, workers int, fn func(start, end int)) {
	if items == 0 {
		return
	}

	numWorkers := workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > items {
		numWorkers = items // No need for more workers than items
	}

	// Calculate the number of items each worker handles (ceiling division)
	chunkSize := (items + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup

	for i := 0; i < numWorkers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > items {
			end = items
		}

		// Skip if there's no range to handle
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	// Wait for all workers to finish processing
	wg.Wait()
}

// ParallelizeWithThreshold performs parallelization only when the number of items exceeds the threshold
// and more than one worker is requested. Otherwise normal sequential processing is performed.
func ParallelizeWithThreshold(items, threshold, workers int, fn func(start, end int)) {
	if items <= threshold || workers == 1 {
		fn(0, items)
		return
	}
	Parallelize(items, workers, fn)
}
