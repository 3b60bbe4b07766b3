package model

import "math/rand"

// defaultStreamSeed is the fixed seed substituted when callers pass seed 0,
// so the zero value is still fully deterministic. The value is arbitrary
// but stable.
const defaultStreamSeed int64 = 1

// NewStream returns a deterministic random stream for the given seed.
// Seed 0 maps to defaultStreamSeed. The returned *rand.Rand is not
// goroutine-safe; parallel callers must derive one stream per task
// (see DeriveSeed) rather than share a stream.
func NewStream(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultStreamSeed
	}
	return rand.New(rand.NewSource(seed))
}

// DeriveSeed mixes a parent seed and a stream index into a new seed for an
// independent substream. Sweeps use one substream per k value so that
// sequential and parallel runs with the same base seed produce identical
// tables regardless of worker count or completion order.
//
// SplitMix64 finalizer; the constants give strong bit diffusion so nearby
// stream indices yield uncorrelated streams.
func DeriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x = x ^ (x >> 31)
	seed := int64(x)
	if seed == 0 {
		seed = defaultStreamSeed
	}
	return seed
}
