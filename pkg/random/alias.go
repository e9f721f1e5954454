package random

import (
	"fmt"
	"math"

	"github.com/vertex-lab/ssppr/pkg/models"
)

/*
AliasSampler draws indices in [0, n) with probability proportional to the
weights it was built from, in O(1) per draw.

The tables are built once from a snapshot of the weights and are never modified
afterwards: if the weights change, build a new AliasSampler.

# REFERENCES

[1] M. D. Vose; "A Linear Algorithm For Generating Random Numbers With a Given Distribution"
URL: https://doi.org/10.1109/32.92917
*/
type AliasSampler struct {
	prob  []float64
	alias []uint32
	n     uint32
}

// NewAliasSampler() builds the alias tables in O(n). It returns an error wrapping
// models.ErrInvalidArgument if the weights are empty, contain a negative or
// non-finite value, or sum to zero.
func NewAliasSampler(weights []float64) (*AliasSampler, error) {
	n := len(weights)
	if n == 0 {
		return nil, fmt.Errorf("%w: empty weights", models.ErrInvalidArgument)
	}
	if uint64(n) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: too many weights (%d)", models.ErrInvalidArgument, n)
	}

	sum := 0.0
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("%w: weight %d is %v", models.ErrInvalidArgument, i, w)
		}
		sum += w
	}

	if sum == 0 || math.IsInf(sum, 0) {
		return nil, fmt.Errorf("%w: weights sum to %v", models.ErrInvalidArgument, sum)
	}

	// normalize the weights to mean 1
	probabilities := make([]float64, n)
	for i, w := range weights {
		probabilities[i] = w * float64(n) / sum
	}

	light := make([]uint32, 0, n)
	heavy := make([]uint32, 0, n)
	for i, p := range probabilities {
		if p < 1.0 {
			light = append(light, uint32(i))
		} else {
			heavy = append(heavy, uint32(i))
		}
	}

	sampler := &AliasSampler{
		prob:  make([]float64, n),
		alias: make([]uint32, n),
		n:     uint32(n),
	}

	// pair a light index with a heavy one, moving the excess of the heavy to fill the light
	for len(light) > 0 && len(heavy) > 0 {
		l := light[len(light)-1]
		light = light[:len(light)-1]
		h := heavy[len(heavy)-1]
		heavy = heavy[:len(heavy)-1]

		sampler.prob[l] = probabilities[l]
		sampler.alias[l] = h

		probabilities[h] = probabilities[h] + probabilities[l] - 1.0
		if probabilities[h] < 1.0 {
			light = append(light, h)
		} else {
			heavy = append(heavy, h)
		}
	}

	// what remains is (up to rounding) exactly 1
	for _, h := range heavy {
		sampler.prob[h] = 1.0
		sampler.alias[h] = h
	}
	for _, l := range light {
		sampler.prob[l] = 1.0
		sampler.alias[l] = l
	}

	return sampler, nil
}

// Size() returns the number of indices the sampler draws from.
func (s *AliasSampler) Size() int {
	if s == nil {
		return 0
	}
	return int(s.n)
}

// Sample() draws a uniform index, then keeps it with probability prob[index]
// and otherwise returns its alias.
func (s *AliasSampler) Sample(rng models.Rand) uint32 {
	i := rng.Uniform(s.n)
	if rng.Float() < s.prob[i] {
		return i
	}
	return s.alias[i]
}
