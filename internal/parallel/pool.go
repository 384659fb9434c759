// Package parallel runs batches of independent work on a bounded number of
// goroutines.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool bounds how many goroutines a batch may use.
//
// Workers are started per batch and exit when the batch is done, so an idle
// pool holds no goroutines and needs no Close. Each worker claims the next
// unclaimed item from a shared counter, which balances load when some items
// are slower than others.
//
// Thread safety: WorkerPool is safe for concurrent use. Concurrent batches
// each get their own workers.
type WorkerPool struct {
	workers int
}

// NewWorkerPool creates a pool that runs at most workers items at once.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &WorkerPool{workers: workers}
}

// Workers returns the maximum number of goroutines per batch.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// Map calls fn for every input on the pool and returns the results in input
// order, independent of scheduling.
func Map[In, Out any](p *WorkerPool, inputs []In, fn func(In) Out) []Out {
	out := make([]Out, len(inputs))
	p.run(len(inputs), func(i int) {
		out[i] = fn(inputs[i])
	})
	return out
}

// run calls item(i) for i in [0, n).
func (p *WorkerPool) run(n int, item func(i int)) {
	if n == 0 {
		return
	}

	workers := min(p.workers, n)
	if workers == 1 {
		for i := range n {
			item(i)
		}
		return
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for {
				i := int(next.Add(1) - 1)
				if i >= n {
					return
				}
				item(i)
			}
		}()
	}
	wg.Wait()
}
