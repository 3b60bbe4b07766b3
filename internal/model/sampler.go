package model

import "math/rand"

// positionSampler draws fixed-size sets of distinct positions from the
// sequence {1..n} uniformly without replacement. The backing slice is
// reset and reused across draws so a million-trial estimate does one
// allocation, not a million.
type positionSampler struct {
	rng *rand.Rand
	seq []int
}

// newPositionSampler prepares a sampler over positions 1..n.
func newPositionSampler(rng *rand.Rand, n int) *positionSampler {
	seq := make([]int, n)
	for i := range seq {
		seq[i] = i + 1
	}
	return &positionSampler{rng: rng, seq: seq}
}

// draw returns count distinct positions chosen uniformly at random. The
// returned slice aliases internal storage and is only valid until the next
// draw. A partial Fisher-Yates shuffle over the first count slots gives
// every count-subset, in every order, equal probability, so the caller may
// designate any fixed index (e.g. the last) as "the newest mutation" and
// the marginal distribution is still uniform over the remaining positions.
func (s *positionSampler) draw(count int) []int {
	n := len(s.seq)
	for i := 0; i < count; i++ {
		j := i + s.rng.Intn(n-i)
		s.seq[i], s.seq[j] = s.seq[j], s.seq[i]
	}
	return s.seq[:count]
}
