package model

import (
	"errors"
	"math"
	"testing"
)

// TestHeuristicBound_ExactValue verifies the closed form against an exact
// rational: bound(105, 11) = 22/94.
func TestHeuristicBound_ExactValue(t *testing.T) {
	bound, err := HeuristicBound(105, 11)
	if err != nil {
		t.Fatalf("HeuristicBound failed: %v", err)
	}

	expected := 22.0 / 94.0
	if bound != expected {
		t.Errorf("expected bound %v, got %v", expected, bound)
	}
	if math.Abs(bound-0.2340) > 0.0001 {
		t.Errorf("expected bound near 0.2340, got %v", bound)
	}
}

// TestHeuristicBound_Saturates verifies the bound caps at 1 once 2k
// exceeds the open position count.
func TestHeuristicBound_Saturates(t *testing.T) {
	bound, err := HeuristicBound(10, 8)
	if err != nil {
		t.Fatalf("HeuristicBound failed: %v", err)
	}
	if bound != 1.0 {
		t.Errorf("expected saturated bound 1.0, got %v", bound)
	}
}

// TestHeuristicBound_ZeroMutations verifies k=0 gives a bound of 0.
func TestHeuristicBound_ZeroMutations(t *testing.T) {
	bound, err := HeuristicBound(10, 0)
	if err != nil {
		t.Fatalf("HeuristicBound failed: %v", err)
	}
	if bound != 0.0 {
		t.Errorf("expected bound 0.0 for k=0, got %v", bound)
	}
}

// TestHeuristicBound_InvalidParameters verifies rejection of n < 1,
// negative k, and the undefined n == k case.
func TestHeuristicBound_InvalidParameters(t *testing.T) {
	cases := []struct {
		name string
		n, k int
	}{
		{"zero n", 0, 0},
		{"negative k", 10, -1},
		{"no open positions", 10, 10},
		{"k beyond n", 10, 12},
	}

	for _, c := range cases {
		_, err := HeuristicBound(c.n, c.k)
		if !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("%s: expected ErrInvalidParameter, got %v", c.name, err)
		}
	}
}

// TestHeuristicBound_UpperBoundsSimulation verifies the bound dominates
// the simulated next-adjacency probability for sparse mutation loads
// (k < n/3), allowing small Monte Carlo slack.
func TestHeuristicBound_UpperBoundsSimulation(t *testing.T) {
	const (
		trials    = 100000
		tolerance = 0.02
	)

	cases := []struct{ n, k int }{
		{105, 5},
		{105, 11},
		{105, 20},
		{105, 30},
		{50, 10},
		{200, 40},
	}

	for _, c := range cases {
		bound, err := HeuristicBound(c.n, c.k)
		if err != nil {
			t.Fatalf("HeuristicBound(n=%d, k=%d) failed: %v", c.n, c.k, err)
		}

		estimate, err := NextAdjacency(NewStream(17), c.n, c.k, trials)
		if err != nil {
			t.Fatalf("NextAdjacency(n=%d, k=%d) failed: %v", c.n, c.k, err)
		}

		if estimate > bound+tolerance {
			t.Errorf("n=%d, k=%d: estimate %f exceeds bound %f", c.n, c.k, estimate, bound)
		}
	}
}
