package curve

import (
	"runtime"
	"sync"
)

// parallelFor splits [0, n) into contiguous chunks of at least minChunk and
// runs fn on each chunk concurrently.
func parallelFor(n, minChunk int, fn func(start, end int)) {
	workers := runtime.GOMAXPROCS(0)
	if minChunk < 1 {
		minChunk = 1
	}
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers <= 1 {
		fn(0, n)
		return
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// MeasureAll measures every registered family with n samples each,
// concurrently. Results are ordered by id.
func MeasureAll(n int) []Stats {
	fams := Families()
	out := make([]Stats, len(fams))
	parallelFor(len(fams), 1, func(start, end int) {
		for i := start; i < end; i++ {
			out[i] = Measure(fams[i], n)
		}
	})
	return out
}
