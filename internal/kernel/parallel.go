package kernel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ParallelFor runs fn over [0, n) split into contiguous chunks of at least
// minChunk items. workers <= 0 means GOMAXPROCS. The first error returned by
// any chunk is reported.
func ParallelFor(n, minChunk, workers int, fn func(start, end int) error) error {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if minChunk < 1 {
		minChunk = 1
	}
	if n <= minChunk || workers <= 1 {
		return fn(0, n)
	}

	workers = max(min(workers, n/minChunk), 1)
	chunkSize := (n + workers - 1) / workers

	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < n; start += chunkSize {
		s, e := start, min(start+chunkSize, n)
		g.Go(func() error { return fn(s, e) })
	}
	return g.Wait()
}
