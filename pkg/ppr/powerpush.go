package ppr

import (
	"math"

	"github.com/vertex-lab/ssppr/pkg/models"
	"github.com/vertex-lab/ssppr/pkg/utils/worklist"
)

// the number of decreasing thresholds used by the scan phase of PowerPush
const epochs = 8

/*
PowerPush() approximates the personalized pagerank of source deterministically,
until the total residual is at most lambda.

It starts like ForwardPush with rmax = lambda / m, using the queue only while it
holds at most n/4 nodes. If the residual is still above lambda, it switches to
sequential scans of all the nodes over 8 epochs, where the threshold of epoch i
is lambda^(i/8) / m. Dangling nodes absorb their residual as in ForwardPush.

It returns the estimate ppr and the residual r, with sum(ppr) + sum(r) = 1.

# REFERENCES

[1] H. Wu, J. Gan, Z. Wei, R. Zhang; "Unifying the Global and Local Approaches:
An Efficient Power Iteration with Forward Push"
URL: https://doi.org/10.1145/3448016.3457298
*/
func PowerPush(G models.Graph, source uint32, alpha, lambda float64) (ppr, r models.Vector, err error) {
	if err := checkInputs(G, source, alpha); err != nil {
		return nil, nil, err
	}

	if err := checkPositive("lambda", lambda); err != nil {
		return nil, nil, err
	}

	ppr, r = powerPush(G, source, alpha, lambda)
	return ppr, r, nil
}

func powerPush(G models.Graph, source uint32, alpha, lambda float64) (ppr, r models.Vector) {
	n, m := G.NodeCount(), float64(G.EdgeCount())
	ppr = make(models.Vector, n)
	r = make(models.Vector, n)

	if m == 0 {
		// every node is dangling, so the source absorbs everything
		ppr[source] = 1.0
		return ppr, r
	}

	r[source] = 1.0
	rsum := 1.0
	rmax := lambda / m

	// the nodeIDs of G are in [0, n), so Push never fails
	queue := worklist.New(n)
	_ = queue.Push(source)

	activate := func(v uint32) {
		if r[v] > float64(G.Degree(v))*rmax {
			_ = queue.Push(v)
		}
	}

	for !queue.IsEmpty() && queue.Len() <= n/4 && rsum > lambda {
		u, _ := queue.Pop()
		rsum -= pushNode(G, u, alpha, ppr, r, activate)
	}

	if rsum <= lambda {
		return ppr, r
	}

	for i := 1; i <= epochs; i++ {
		threshold := math.Pow(lambda, float64(i)/epochs) / m

		for rsum > m*threshold {
			pushed := false
			for u := 0; u < n; u++ {
				if r[u] > float64(G.Degree(uint32(u)))*threshold {
					rsum -= pushNode(G, uint32(u), alpha, ppr, r, nil)
					pushed = true
				}
			}

			if !pushed {
				// every residual is below the threshold; rsum only differs by rounding
				break
			}
		}
	}

	return ppr, r
}
