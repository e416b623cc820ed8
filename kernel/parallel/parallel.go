// Package parallel provides the bounded work-stealing map primitive shared
// by the Brent-Kung adder, the CSD partial-product reduction, Trivium's
// batched stepping, and the SHA3 lane operations (SPEC_FULL.md §5, §9): a
// single composable fan-out helper built on golang.org/x/sync/errgroup
// rather than ad-hoc goroutine-and-channel plumbing per call site.
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// For runs fn(i) for i in [0,n) across a bounded pool sized to GOMAXPROCS,
// returning the first error encountered (if any) after all launched work
// completes. Each index is independent; callers must not share mutable
// state across indices except through disjoint slice slots.
func For(n int, fn func(i int) error) error {
	if n <= 0 {
		return nil
	}
	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(max(1, runtime.GOMAXPROCS(0)))
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error { return fn(i) })
	}
	return g.Wait()
}

// Map runs fn(i) for i in [0,n) and collects results in order. fn must not
// itself fail; use For if an error needs to propagate.
func Map[T any](n int, fn func(i int) T) []T {
	out := make([]T, n)
	_ = For(n, func(i int) error {
		out[i] = fn(i)
		return nil
	})
	return out
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
