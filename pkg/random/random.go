// The random package provides the random draws used by the estimators: uniform
// floats and integers, geometric and binomial draws, and an alias sampler for
// non-uniform discrete distributions.
//
// A Generator is an explicit object owned by the caller. It is NOT safe for
// concurrent use: parallel work needs one Generator per goroutine.
package random

import (
	"math"
	"time"

	"golang.org/x/exp/rand"
)

const twoToMinus32 float64 = 0x1p-32

// Generator wraps a seeded PCG source and exposes the draws used in this project.
// It fulfills the models.Rand interface.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator() returns a Generator seeded with seed. Two generators with the
// same seed produce the same stream of draws.
func NewGenerator(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// NewTimeSeeded() returns a Generator seeded with the current time.
func NewTimeSeeded() *Generator {
	return NewGenerator(uint64(time.Now().UnixNano()))
}

// Uint32() returns a uniform 32-bit draw.
func (g *Generator) Uint32() uint32 {
	return g.rng.Uint32()
}

// Float() returns a uniform float64 in [0, 1), obtained by scaling a 32-bit draw.
func (g *Generator) Float() float64 {
	return twoToMinus32 * float64(g.rng.Uint32())
}

/*
Uniform() returns a uniform uint32 in [0, n). n must be positive.

It uses the multiply-and-shift of a 32-bit draw by n, rejecting the draws that
fall in the biased low region of the 64-bit product, which avoids the modulo bias.

# REFERENCES

[1] D. Lemire; "Fast Random Integer Generation in an Interval"
URL: https://arxiv.org/abs/1805.10941
*/
func (g *Generator) Uniform(n uint32) uint32 {
	m := uint64(g.rng.Uint32()) * uint64(n)
	if uint32(m) < n {
		threshold := -n % n
		for uint32(m) < threshold {
			m = uint64(g.rng.Uint32()) * uint64(n)
		}
	}
	return uint32(m >> 32)
}

// Geometric() returns the number of Bernoulli(p) trials up to and including the
// first success, so P(X = k) = (1-p)^(k-1) * p for k >= 1.
// If p >= 1 it returns 1; if p <= 0 the success never comes and it returns MaxUint32.
func (g *Generator) Geometric(p float64) uint32 {
	if p >= 1 {
		return 1
	}
	if p <= 0 || math.IsNaN(p) {
		return math.MaxUint32
	}

	x := g.rng.Uint32()
	for x == 0 {
		x = g.rng.Uint32()
	}

	u := twoToMinus32 * float64(x)
	k := math.Ceil(math.Log(u) / math.Log1p(-p))
	switch {
	case k < 1:
		return 1
	case k >= math.MaxUint32:
		return math.MaxUint32
	default:
		return uint32(k)
	}
}

// Binomial() returns the number of successes in n Bernoulli(p) trials, by
// summing geometric inter-arrival times until their cumulative count exceeds n.
// The expected cost is O(n*p).
func (g *Generator) Binomial(n uint32, p float64) uint32 {
	if p <= 0 || math.IsNaN(p) {
		return 0
	}
	if p >= 1 {
		return n
	}

	var k uint32
	for i := uint64(0); i <= uint64(n); k++ {
		i += uint64(g.Geometric(p))
	}
	return k - 1
}
