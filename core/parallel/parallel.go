// Package parallel provides small helpers for splitting row-wise work
// across CPU cores.
package parallel

import (
	"runtime"
	"sync"
)

// For splits [0, items) into contiguous chunks, one per worker, and runs
// fn(start, end) for each chunk on its own goroutine. It returns after
// all chunks complete. fn must not assume any particular chunk ordering.
func For(items int, fn func(start, end int)) {
	if items == 0 {
		return
	}

	workers := runtime.NumCPU()
	if workers > items {
		workers = items
	}

	// Ceiling division so the last chunk absorbs the remainder.
	chunk := (items + workers - 1) / workers

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		start := i * chunk
		end := start + chunk
		if end > items {
			end = items
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ForThreshold runs fn sequentially when items is at or below threshold,
// and falls back to For above it. Goroutine overhead dominates for the
// small matrices typical of GP training sets.
func ForThreshold(items, threshold int, fn func(start, end int)) {
	if items <= threshold {
		fn(0, items)
		return
	}
	For(items, fn)
}
