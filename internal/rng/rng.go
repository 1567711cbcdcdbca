// Package rng provides the random capability used for tile spawning and
// shuffling. Games never call math/rand directly so tests can substitute a
// deterministic sequence.
package rng

import (
	"math/rand/v2"
	"time"
)

// Source is the subset of *rand.Rand the game needs.
type Source interface {
	// IntN returns a uniform integer in [0, n). n must be > 0.
	IntN(n int) int
	// Float64 returns a uniform float in [0.0, 1.0).
	Float64() float64
}

// New returns a seeded PCG source. A zero seed is replaced with the current time.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

// Bernoulli reports true with probability p.
func Bernoulli(src Source, p float64) bool {
	return src.Float64() < p
}

// Permute shuffles vals in place (Fisher-Yates).
func Permute(src Source, vals []int) {
	for i := len(vals) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		vals[i], vals[j] = vals[j], vals[i]
	}
}
