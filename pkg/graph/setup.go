package graph

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/vertex-lab/ssppr/pkg/models"
)

// SetupGraph() returns a small graph based on graphType, used for testing.
func SetupGraph(graphType string) *Graph {
	switch graphType {

	case "nil":
		return nil

	case "empty":
		return New(0)

	case "one-node":
		return New(1)

	case "dangling":
		// 0 -> 1, and 1 has no out-neighbors
		return mustFromAdjacency([][]uint32{{1}, {}})

	case "path":
		// 0 -> 1 -> 2 -> 3, where 3 is dangling
		return mustFromAdjacency([][]uint32{{1}, {2}, {3}, {}})

	case "triangle":
		return mustFromAdjacency([][]uint32{{1, 2}, {0, 2}, {0, 1}})

	case "cyclic":
		return mustFromAdjacency([][]uint32{{1}, {2}, {0}, {0, 2}})

	case "acyclic1":
		// 0 -> {1, 2}, 1 -> {3}, 2 -> {3}, 3 -> {4}, 4 dangling
		return mustFromAdjacency([][]uint32{{1, 2}, {3}, {3}, {4}, {}})

	case "star":
		// the center 0 points to every leaf, and every leaf points back to it
		return mustFromAdjacency([][]uint32{{1, 2, 3, 4, 5}, {0}, {0}, {0}, {0}, {0}})

	case "multi-edge":
		// node 0 has the neighbor 1 twice
		return mustFromAdjacency([][]uint32{{1, 1, 2}, {0}, {0}})

	default:
		return nil // default to nil
	}
}

// Generate() returns a random graph with the specified number of nodes, where
// every node has successorsPerNode distinct out-neighbors (possibly itself).
// It returns nil if successorsPerNode > nodes.
func Generate(nodes, successorsPerNode int, rng models.Rand) *Graph {
	if nodes < 0 || successorsPerNode < 0 || successorsPerNode > nodes {
		return nil
	}

	g := New(nodes)
	for u := 0; u < nodes; u++ {
		successors := mapset.NewThreadUnsafeSetWithSize[uint32](successorsPerNode)
		neighbors := make([]uint32, 0, successorsPerNode)

		for len(neighbors) != successorsPerNode {
			v := rng.Uniform(uint32(nodes))
			if successors.Add(v) {
				neighbors = append(neighbors, v)
			}
		}

		g.adj[u] = neighbors
		g.edges += successorsPerNode
	}

	return g
}

func mustFromAdjacency(adj [][]uint32) *Graph {
	g, err := FromAdjacency(adj)
	if err != nil {
		panic(err)
	}
	return g
}
