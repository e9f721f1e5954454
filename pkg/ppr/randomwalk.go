package ppr

import (
	"fmt"
	"math"

	"github.com/vertex-lab/ssppr/pkg/models"
)

// Walk() simulates a random walk from start: at each step, with probability alpha
// the walk stops and returns the current node, otherwise it moves to a random
// out-neighbor. It returns models.ErrDanglingNode if it has to move from a dangling node.
func Walk(G models.Graph, start uint32, alpha float64, rng models.Rand) (uint32, error) {
	if err := checkInputs(G, start, alpha); err != nil {
		return math.MaxUint32, err
	}

	if err := checkRand(rng); err != nil {
		return math.MaxUint32, err
	}

	return walk(G, start, alpha, rng)
}

func walk(G models.Graph, start uint32, alpha float64, rng models.Rand) (uint32, error) {
	node := start
	for {
		if rng.Float() < alpha {
			return node, nil
		}

		next, err := G.RandNeighbor(node, rng)
		if err != nil {
			return math.MaxUint32, fmt.Errorf("walk from %d: %w", start, err)
		}
		node = next
	}
}

/*
RandomWalk() estimates the personalized pagerank of source with the Monte-Carlo method:
it simulates the specified number of walks from the source, and each one adds
1/walks to the ppr of the node where it stopped.

The estimate is unbiased and its variance decreases as 1/walks. Since walks can't
leave a dangling node, it fails if one of them needs to.
*/
func RandomWalk(G models.Graph, source uint32, alpha float64, walks int, rng models.Rand) (models.Vector, error) {
	if err := checkInputs(G, source, alpha); err != nil {
		return nil, err
	}

	if err := checkRand(rng); err != nil {
		return nil, err
	}

	if walks <= 0 {
		return nil, fmt.Errorf("%w: the number of walks must be positive, got %d", models.ErrInvalidArgument, walks)
	}

	return randomWalk(G, source, alpha, walks, rng)
}

func randomWalk(G models.Graph, source uint32, alpha float64, walks int, rng models.Rand) (models.Vector, error) {
	ppr := make(models.Vector, G.NodeCount())
	share := 1.0 / float64(walks)

	for i := 0; i < walks; i++ {
		node, err := walk(G, source, alpha, rng)
		if err != nil {
			return nil, err
		}
		ppr[node] += share
	}

	return ppr, nil
}
