package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"mutadjacency/internal/analysis"
	"mutadjacency/internal/model"
	"mutadjacency/internal/sweep"
)

func main() {
	var (
		mode          = flag.String("mode", "next", "Estimator to sweep: next or any")
		n             = flag.Int("n", 105, "Sequence length (number of positions)")
		kMin          = flag.Int("k-min", 0, "First mutation count in the sweep")
		kMax          = flag.Int("k-max", 50, "Last mutation count in the sweep")
		trials        = flag.Int("trials", 100000, "Monte Carlo trials per sweep point")
		parallel      = flag.Bool("parallel", false, "Distribute sweep points across a worker pool")
		workers       = flag.Int("workers", 0, "Worker count for --parallel (0 = one per CPU)")
		seed          = flag.Int64("seed", 0, "Base random seed (0 uses a fixed default)")
		withHeuristic = flag.Bool("with-heuristic", false, "Append heuristic bound rows to the table")
		pointTimeout  = flag.Duration("point-timeout", 0, "Per-point deadline for --parallel (0 disables)")
		outFile       = flag.String("out", "", "Optional CSV output path")
	)
	flag.Parse()

	estimator, source, err := selectEstimator(*mode)
	if err != nil {
		log.Fatalf("sweep failed: %v", err)
	}
	if *kMin < 0 || *kMax < *kMin {
		log.Fatalf("sweep failed: invalid k range [%d, %d]", *kMin, *kMax)
	}

	ks := make([]int, 0, *kMax-*kMin+1)
	for k := *kMin; k <= *kMax; k++ {
		ks = append(ks, k)
	}

	start := time.Now()
	var points []sweep.Point
	if *parallel {
		cfg := sweep.DefaultConfig(*seed)
		if *workers > 0 {
			cfg.WorkerCount = *workers
		}
		cfg.PointTimeout = *pointTimeout
		points = sweep.RunParallel(context.Background(), cfg, estimator, source, *n, ks, *trials)
	} else {
		points = sweep.Run(estimator, source, *n, ks, *trials, *seed)
	}
	elapsed := time.Since(start)

	var table analysis.Table
	if *withHeuristic {
		table = analysis.Concat(points, sweep.RunBound(*n, ks))
	} else {
		table = analysis.Concat(points)
	}

	table.Fprint(os.Stdout)

	if failed := table.Failed(); failed > 0 {
		fmt.Printf("\n%d of %d rows failed\n", failed, len(table.Rows))
	}

	summary := analysis.Summarize(points)
	fmt.Printf("\nProbability column: count=%d mean=%.5g median=%.5g stddev=%.5g min=%.5g max=%.5g\n",
		summary.Count, summary.Mean, summary.Median, summary.StdDev, summary.Min, summary.Max)

	if *withHeuristic && source == sweep.SourceNext {
		// Monte Carlo slack of a few standard errors at the sweep's
		// trial count.
		tolerance := 4 * analysis.StdError(0.5, *trials)
		for _, c := range analysis.CompareBound(points, *n, tolerance) {
			if c.Violated {
				fmt.Printf("WARNING: k=%d estimate %.5g exceeds bound %.5g\n", c.K, c.Estimate, c.Bound)
			}
		}
	}

	fmt.Printf("%d points, %d trials each, elapsed %v\n", len(ks), *trials, elapsed.Round(time.Millisecond))

	if *outFile != "" {
		if err := writeCSV(table, *outFile); err != nil {
			log.Fatalf("sweep failed: %v", err)
		}
		fmt.Printf("wrote %s\n", *outFile)
	}
}

func selectEstimator(mode string) (sweep.Estimator, string, error) {
	switch mode {
	case "next":
		return model.NextAdjacency, sweep.SourceNext, nil
	case "any":
		return model.AnyAdjacency, sweep.SourceAny, nil
	default:
		return nil, "", fmt.Errorf("unknown mode %q (want next or any)", mode)
	}
}

func writeCSV(table analysis.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := table.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
