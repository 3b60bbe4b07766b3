package model

import (
	"fmt"
	"math/rand"
	"sort"
)

// NextAdjacency estimates, by Monte Carlo simulation, the probability that
// a new mutation placed uniformly at random on a sequence of n positions
// lands adjacent to one of k existing mutations. Adjacency is linear: two
// positions are adjacent when their indices differ by exactly 1, with no
// wraparound, so positions 1 and n each have a single neighbor.
//
// Each of the trials draws k+1 distinct positions uniformly without
// replacement and designates the last as the new mutation. Because every
// ordering of a simple random sample is equally likely, this is equivalent
// to placing k prior mutations first and then the new one uniformly over
// the n-k open positions. The estimate is the fraction of trials in which
// the designated position neighbors a prior one: an unbiased empirical
// mean of i.i.d. Bernoulli draws, with standard error proportional to
// 1/sqrt(trials).
//
// The estimator is pure apart from consuming the supplied random stream.
func NextAdjacency(rng *rand.Rand, n, k, trials int) (float64, error) {
	if err := validateCommon(n, k, trials); err != nil {
		return 0, err
	}
	if k+1 > n {
		return 0, fmt.Errorf("%w: need k+1=%d distinct positions from n=%d", ErrSamplingImpossible, k+1, n)
	}

	sampler := newPositionSampler(rng, n)
	mutated := make([]bool, n+2) // 1-based, padded so pos±1 never indexes out

	successes := 0
	for trial := 0; trial < trials; trial++ {
		positions := sampler.draw(k + 1)
		priors := positions[:k]
		next := positions[k]

		for _, p := range priors {
			mutated[p] = true
		}
		if mutated[next-1] || mutated[next+1] {
			successes++
		}
		for _, p := range priors {
			mutated[p] = false
		}
	}

	return float64(successes) / float64(trials), nil
}

// AnyAdjacency estimates, by Monte Carlo simulation, the probability that
// a set of k mutations placed uniformly at random on a sequence of n
// positions contains at least one adjacent pair. Each trial draws k
// distinct positions, sorts them, and succeeds when any consecutive sorted
// difference equals 1.
//
// k of 0 or 1 admits no pair, so the probability is exactly 0; the trials
// loop is skipped rather than rejected.
func AnyAdjacency(rng *rand.Rand, n, k, trials int) (float64, error) {
	if err := validateCommon(n, k, trials); err != nil {
		return 0, err
	}
	if k > n {
		return 0, fmt.Errorf("%w: need k=%d distinct positions from n=%d", ErrSamplingImpossible, k, n)
	}
	if k <= 1 {
		return 0, nil
	}

	sampler := newPositionSampler(rng, n)
	sorted := make([]int, k)

	successes := 0
	for trial := 0; trial < trials; trial++ {
		copy(sorted, sampler.draw(k))
		sort.Ints(sorted)

		for i := 1; i < k; i++ {
			if sorted[i]-sorted[i-1] == 1 {
				successes++
				break
			}
		}
	}

	return float64(successes) / float64(trials), nil
}

// validateCommon checks the parameters shared by both estimators.
func validateCommon(n, k, trials int) error {
	if n < 1 {
		return fmt.Errorf("%w: sequence length n must be at least 1, got %d", ErrInvalidParameter, n)
	}
	if k < 0 {
		return fmt.Errorf("%w: mutation count k must be non-negative, got %d", ErrInvalidParameter, k)
	}
	if trials < 1 {
		return fmt.Errorf("%w: trial count must be at least 1, got %d", ErrInvalidParameter, trials)
	}
	return nil
}
