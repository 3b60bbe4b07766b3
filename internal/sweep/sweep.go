package sweep

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"mutadjacency/internal/model"
)

// Estimator is the contract shared by the Monte Carlo estimators: a pure
// function of the parameters and the supplied random stream.
type Estimator func(rng *rand.Rand, n, k, trials int) (float64, error)

// Source labels tag result rows so simulation and heuristic tables can be
// concatenated without merging.
const (
	SourceNext      = "next"
	SourceAny       = "any"
	SourceHeuristic = "heuristic"
)

// Point is one sweep result row. A failed point carries Err instead of a
// probability; sibling points are unaffected.
type Point struct {
	K           int
	Probability float64
	Source      string
	Err         error
}

// Config controls parallel sweep execution.
type Config struct {
	WorkerCount  int           // number of concurrent workers
	BaseSeed     int64         // root of the per-point seed derivation
	PointTimeout time.Duration // per-point deadline, 0 disables
}

// DefaultConfig returns one worker per CPU and no per-point timeout.
func DefaultConfig(baseSeed int64) Config {
	return Config{
		WorkerCount: runtime.NumCPU(),
		BaseSeed:    baseSeed,
	}
}

// Run sweeps the estimator across ks sequentially, returning one Point per
// input value in input order. Each point consumes an independent stream
// derived from baseSeed and the point's index, so Run and RunParallel
// produce identical tables for identical inputs.
func Run(fn Estimator, source string, n int, ks []int, trials int, baseSeed int64) []Point {
	points := make([]Point, len(ks))
	for i, k := range ks {
		rng := model.NewStream(model.DeriveSeed(baseSeed, uint64(i)))
		p, err := fn(rng, n, k, trials)
		points[i] = Point{K: k, Probability: p, Source: source, Err: err}
	}
	return points
}

// RunBound evaluates the deterministic heuristic bound across ks. Points
// where the bound is undefined (n == k) carry the error inline, matching
// estimator sweep behavior.
func RunBound(n int, ks []int) []Point {
	points := make([]Point, len(ks))
	for i, k := range ks {
		b, err := model.HeuristicBound(n, k)
		points[i] = Point{K: k, Probability: b, Source: SourceHeuristic, Err: err}
	}
	return points
}

// RunParallel distributes sweep points across a worker pool. Every point
// is an independent unit of work with its own derived random stream, so
// there is no shared mutable state between tasks; results are written into
// an index-addressed slice, restoring input order regardless of completion
// order. A per-point failure or timeout marks that row and the sweep
// continues.
func RunParallel(ctx context.Context, cfg Config, fn Estimator, source string, n int, ks []int, trials int) []Point {
	workers := cfg.WorkerCount
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	type job struct {
		index int
		k     int
	}

	jobs := make(chan job, len(ks))
	for i, k := range ks {
		jobs <- job{index: i, k: k}
	}
	close(jobs)

	points := make([]Point, len(ks))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				if err := ctx.Err(); err != nil {
					points[j.index] = Point{K: j.k, Source: source, Err: fmt.Errorf("sweep point k=%d canceled: %w", j.k, err)}
					continue
				}
				seed := model.DeriveSeed(cfg.BaseSeed, uint64(j.index))
				p, err := runPoint(ctx, cfg.PointTimeout, fn, seed, n, j.k, trials)
				points[j.index] = Point{K: j.k, Probability: p, Source: source, Err: err}
			}
		}()
	}
	wg.Wait()

	return points
}

// runPoint evaluates one sweep point, optionally bounded by a deadline.
// The estimator itself is a fixed-length CPU loop that cannot be
// interrupted, so a timed-out point is abandoned to finish in the
// background while its row reports the failure.
func runPoint(ctx context.Context, timeout time.Duration, fn Estimator, seed int64, n, k, trials int) (float64, error) {
	if timeout <= 0 {
		return fn(model.NewStream(seed), n, k, trials)
	}

	type outcome struct {
		p   float64
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		p, err := fn(model.NewStream(seed), n, k, trials)
		done <- outcome{p: p, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case out := <-done:
		return out.p, out.err
	case <-timer.C:
		return 0, fmt.Errorf("sweep point k=%d timed out after %v", k, timeout)
	case <-ctx.Done():
		return 0, fmt.Errorf("sweep point k=%d canceled: %w", k, ctx.Err())
	}
}
