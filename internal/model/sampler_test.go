package model

import "testing"

// TestPositionSampler_DistinctInRange verifies every draw yields distinct
// positions inside {1..n}.
func TestPositionSampler_DistinctInRange(t *testing.T) {
	const (
		n     = 20
		count = 8
		draws = 1000
	)

	s := newPositionSampler(NewStream(13), n)
	for d := 0; d < draws; d++ {
		positions := s.draw(count)
		if len(positions) != count {
			t.Fatalf("expected %d positions, got %d", count, len(positions))
		}

		seen := make(map[int]bool, count)
		for _, p := range positions {
			if p < 1 || p > n {
				t.Fatalf("position %d outside [1, %d]", p, n)
			}
			if seen[p] {
				t.Fatalf("duplicate position %d in draw", p)
			}
			seen[p] = true
		}
	}
}

// TestPositionSampler_FullDraw verifies drawing all n positions yields a
// permutation of {1..n}.
func TestPositionSampler_FullDraw(t *testing.T) {
	const n = 15

	s := newPositionSampler(NewStream(13), n)
	positions := s.draw(n)

	seen := make(map[int]bool, n)
	for _, p := range positions {
		seen[p] = true
	}
	for p := 1; p <= n; p++ {
		if !seen[p] {
			t.Errorf("position %d missing from full draw", p)
		}
	}
}

// TestPositionSampler_Uniform verifies single-position draws hit each
// position at roughly equal frequency.
func TestPositionSampler_Uniform(t *testing.T) {
	const (
		n     = 10
		draws = 20000
	)

	s := newPositionSampler(NewStream(29), n)
	counts := make([]int, n+1)
	for d := 0; d < draws; d++ {
		counts[s.draw(1)[0]]++
	}

	// Expected 2000 per position; 300 is over 6 standard deviations.
	for p := 1; p <= n; p++ {
		if counts[p] < draws/n-300 || counts[p] > draws/n+300 {
			t.Errorf("position %d drawn %d times, expected near %d", p, counts[p], draws/n)
		}
	}
}
