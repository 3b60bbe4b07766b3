package analysis

import (
	"math"
	"sort"

	"mutadjacency/internal/model"
	"mutadjacency/internal/sweep"
)

// Summary contains a statistical summary of a sweep's probability column.
// Failed rows are excluded.
type Summary struct {
	Count  int
	Mean   float64
	Median float64
	StdDev float64
	Min    float64
	Max    float64
	P25    float64
	P75    float64
	P95    float64
}

// Summarize computes summary statistics over the successful rows of a
// sweep.
func Summarize(points []sweep.Point) Summary {
	values := make([]float64, 0, len(points))
	for _, p := range points {
		if p.Err == nil {
			values = append(values, p.Probability)
		}
	}
	if len(values) == 0 {
		return Summary{}
	}

	sort.Float64s(values)

	summary := Summary{
		Count:  len(values),
		Min:    values[0],
		Max:    values[len(values)-1],
		Median: percentile(values, 50),
		P25:    percentile(values, 25),
		P75:    percentile(values, 75),
		P95:    percentile(values, 95),
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	summary.Mean = sum / float64(len(values))

	var variance float64
	for _, v := range values {
		diff := v - summary.Mean
		variance += diff * diff
	}
	summary.StdDev = math.Sqrt(variance / float64(len(values)))

	return summary
}

// StdError returns the binomial standard error of a Monte Carlo estimate p
// over the given number of trials: sqrt(p(1-p)/trials). Zero when trials
// is not positive.
func StdError(p float64, trials int) float64 {
	if trials < 1 {
		return 0
	}
	return math.Sqrt(p * (1 - p) / float64(trials))
}

// BoundComparison relates a simulated estimate to the closed-form bound at
// the same k. Gap is bound minus estimate; it should stay non-negative up
// to Monte Carlo noise.
type BoundComparison struct {
	K        int
	Bound    float64
	Estimate float64
	Gap      float64
	Violated bool
}

// CompareBound evaluates the heuristic bound against each successful
// simulation row. A row is flagged as violated when the estimate exceeds
// the bound by more than tolerance, i.e. beyond plausible Monte Carlo
// slack. Rows with a per-point error, and rows where the bound is
// undefined (k >= n), are skipped.
func CompareBound(simPoints []sweep.Point, n int, tolerance float64) []BoundComparison {
	comparisons := make([]BoundComparison, 0, len(simPoints))
	for _, p := range simPoints {
		if p.Err != nil {
			continue
		}
		bound, err := model.HeuristicBound(n, p.K)
		if err != nil {
			continue
		}
		gap := bound - p.Probability
		comparisons = append(comparisons, BoundComparison{
			K:        p.K,
			Bound:    bound,
			Estimate: p.Probability,
			Gap:      gap,
			Violated: gap < -tolerance,
		})
	}
	return comparisons
}

// percentile linearly interpolates the p-th percentile of sorted data.
func percentile(sortedData []float64, p float64) float64 {
	if len(sortedData) == 0 {
		return 0
	}
	index := (p / 100.0) * float64(len(sortedData)-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))

	if lower == upper {
		return sortedData[lower]
	}

	weight := index - float64(lower)
	return sortedData[lower]*(1-weight) + sortedData[upper]*weight
}
