package model

import "fmt"

// HeuristicBound computes a closed-form upper bound on the probability
// that the next mutation lands adjacent to one of k existing mutations:
//
//	bound = min(2k / (n - k), 1)
//
// Each of the k mutations contributes at most 2 neighboring open slots out
// of the n-k open positions. Boundary positions and mutually adjacent
// mutations only reduce the true count of adjacent open slots, so the
// formula over-estimates the true probability for every valid n, k.
//
// Fails with ErrInvalidParameter when n-k <= 0 (no open position remains;
// the ratio is undefined). Deterministic, no randomness.
func HeuristicBound(n, k int) (float64, error) {
	if n < 1 {
		return 0, fmt.Errorf("%w: sequence length n must be at least 1, got %d", ErrInvalidParameter, n)
	}
	if k < 0 {
		return 0, fmt.Errorf("%w: mutation count k must be non-negative, got %d", ErrInvalidParameter, k)
	}
	if n-k <= 0 {
		return 0, fmt.Errorf("%w: no open positions with n=%d, k=%d", ErrInvalidParameter, n, k)
	}

	bound := float64(2*k) / float64(n-k)
	if bound > 1 {
		bound = 1
	}
	return bound, nil
}
