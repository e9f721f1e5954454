package ppr

import (
	"fmt"
	"math"

	"github.com/vertex-lab/ssppr/pkg/models"
	"github.com/vertex-lab/ssppr/pkg/random"
	"gonum.org/v1/gonum/floats"
)

/*
PPW() estimates the personalized pagerank of source with a variance-reduced
Monte-Carlo method, that alternates sampling and power iterations over batchSize batches.

In every batch it:
 1. computes the residual of the current estimate
    r = sigma + ((1-alpha)/alpha) * P * ppr - ppr/alpha
    where sigma is the indicator of the source and P averages over the out-neighbors;
 2. draws ceil(sampleSize/batchSize) nodes s with probability proportional to |r[s]|,
    and for each simulates a walk from s, adding sign(r[s]) * sum(|r|) / samples
    to the ppr of the node where it stopped;
 3. applies piNum-1 power iterations to sigma and to the ppr, folding them into
    the next estimate.

The operator P pulls from the out-neighbors of each node, so the estimate matches
the personalized pagerank on graphs where every node has the same degree and the
edges are symmetric.

# REFERENCES

[1] M. Liao, R. Li, Q. Dai, H. Chen, H. Qin, G. Wang; "Efficient Personalized
PageRank Computation: The Power of Variance-Reduced Monte Carlo Approaches"
URL: https://doi.org/10.1145/3589282
*/
func PPW(G models.Graph, source uint32, alpha float64, piNum, sampleSize, batchSize int, rng models.Rand) (models.Vector, error) {
	if err := checkInputs(G, source, alpha); err != nil {
		return nil, err
	}

	if err := checkRand(rng); err != nil {
		return nil, err
	}

	if piNum < 1 || sampleSize < 1 || batchSize < 1 {
		return nil, fmt.Errorf("%w: piNum, sampleSize and batchSize must be positive, got %d, %d, %d",
			models.ErrInvalidArgument, piNum, sampleSize, batchSize)
	}

	ppr, _, err := ppw(G, source, alpha, piNum, sampleSize, batchSize, rng)
	return ppr, err
}

func ppw(G models.Graph, source uint32, alpha float64, piNum, sampleSize, batchSize int, rng models.Rand) (models.Vector, int, error) {
	n := G.NodeCount()
	ppr := make(models.Vector, n)
	sigma := make(models.Vector, n)
	sigma[source] = 1.0

	r := make(models.Vector, n)
	rabs := make(models.Vector, n)
	samples := int(math.Ceil(float64(sampleSize) / float64(batchSize)))
	walks := 0

	for batch := 0; batch < batchSize; batch++ {
		residual(G, alpha, sigma, ppr, r, rabs)

		if total := floats.Sum(rabs); total > 0 {
			// the weights change every batch, so the sampler is rebuilt
			sampler, err := random.NewAliasSampler(rabs)
			if err != nil {
				return nil, walks, fmt.Errorf("batch %d: %w", batch, err)
			}

			share := total / float64(samples)
			for i := 0; i < samples; i++ {
				s := sampler.Sample(rng)
				node, err := walk(G, s, alpha, rng)
				if err != nil {
					return nil, walks, err
				}

				if math.Signbit(r[s]) {
					ppr[node] -= share
				} else {
					ppr[node] += share
				}
			}

			walks += samples
		}

		ppr = powerIterate(G, alpha, sigma, ppr, piNum)
	}

	return ppr, walks, nil
}

// residual() writes into r the residual of the estimate ppr, and into rabs its absolute value.
func residual(G models.Graph, alpha float64, sigma, ppr, r, rabs models.Vector) {
	factor := (1.0 - alpha) / alpha
	for u := range r {
		r[u] = sigma[u] - ppr[u]/alpha

		neighbors := G.Neighbors(uint32(u))
		degree := float64(len(neighbors))
		for _, v := range neighbors {
			r[u] += factor * ppr[v] / degree
		}

		rabs[u] = math.Abs(r[u])
	}
}

/*
powerIterate() returns the next estimate

	sum_{k=0}^{piNum-2} alpha(1-alpha)^k P^k sigma + (1-alpha)^(piNum-1) P^(piNum-1) ppr

where P averages over the out-neighbors. The ppr passed is consumed.
*/
func powerIterate(G models.Graph, alpha float64, sigma, ppr models.Vector, piNum int) models.Vector {
	n := len(ppr)
	next := make(models.Vector, n)

	facSigma := make(models.Vector, n)
	copy(facSigma, sigma)
	facPPR := ppr

	prevSigma := make(models.Vector, n)
	prevPPR := make(models.Vector, n)

	for k := 0; k < piNum-1; k++ {
		copy(prevSigma, facSigma)
		copy(prevPPR, facPPR)

		for u := 0; u < n; u++ {
			next[u] += alpha * prevSigma[u]
			facSigma[u] = 0
			facPPR[u] = 0

			neighbors := G.Neighbors(uint32(u))
			if len(neighbors) == 0 {
				continue
			}

			scale := (1.0 - alpha) / float64(len(neighbors))
			for _, v := range neighbors {
				facSigma[u] += scale * prevSigma[v]
				facPPR[u] += scale * prevPPR[v]
			}
		}
	}

	floats.Add(next, facPPR)
	return next
}
