// Package parallel splits independent per-sample work across goroutines.
//
// It is used for building forward graphs of many samples at once. Graph
// construction only reads node values and allocates new nodes, so samples
// never contend; gradient propagation is never run through this package.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
//
// The zero value runs everything sequentially on the calling goroutine.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use (default: runtime.NumCPU()).
	MinChunkSize int  // Minimum samples per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 16, // A forward graph per sample is far heavier than one float op.
	}
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too small.
// f must only write to state owned by index i.
func For(n int, f func(i int), cfg Config) {
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = runtime.NumCPU()
	}
	if cfg.MinChunkSize <= 0 {
		cfg.MinChunkSize = 1
	}

	if !cfg.Enabled || cfg.NumWorkers == 1 || n < cfg.MinChunkSize {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var wg sync.WaitGroup
	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize)

	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}
