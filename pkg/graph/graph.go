// The graph package defines the static directed graph consumed by the estimators,
// and the ways of building it: literal adjacency, edge-list files and random generation.
package graph

import (
	"fmt"
	"math"

	"github.com/vertex-lab/ssppr/pkg/models"
)

/*
Graph stores, for every node in [0, n), the ordered slice of its out-neighbors.
Duplicated entries are allowed and count towards the degree, so a node that
appears twice in Neighbors(u) is drawn twice as often by RandNeighbor(u).

A Graph is built once and then only read: it fulfills the models.Graph interface
and can be shared between goroutines.
*/
type Graph struct {
	adj       [][]uint32
	edges     int
	symmetric bool
}

type Option func(*Graph)

// WithSymmetric() makes AddEdge(u, v) also insert the entry v -> u.
func WithSymmetric() Option {
	return func(g *Graph) {
		g.symmetric = true
	}
}

// New() returns a graph with n nodes and no edges.
func New(n int, opts ...Option) *Graph {
	if n < 0 {
		n = 0
	}

	g := &Graph{adj: make([][]uint32, n)}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// FromAdjacency() returns a graph whose node u has the out-neighbors adj[u].
// It returns models.ErrOutOfRange if a neighbor is not in [0, len(adj)).
// The options only set flags: adj is stored as it is, without adding reverse entries.
func FromAdjacency(adj [][]uint32, opts ...Option) (*Graph, error) {
	if uint64(len(adj)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d nodes", models.ErrOutOfRange, len(adj))
	}

	g := New(len(adj), opts...)
	for u, neighbors := range adj {
		for _, v := range neighbors {
			if int(v) >= len(adj) {
				return nil, fmt.Errorf("%w: edge %d -> %d in a graph with %d nodes", models.ErrOutOfRange, u, v, len(adj))
			}
		}

		g.adj[u] = append(make([]uint32, 0, len(neighbors)), neighbors...)
		g.edges += len(neighbors)
	}

	return g, nil
}

// Validate() returns the appropriate error if the graph is nil or has no nodes.
func (g *Graph) Validate() error {
	if g == nil {
		return models.ErrNilGraph
	}

	if len(g.adj) == 0 {
		return models.ErrEmptyGraph
	}

	return nil
}

// AddEdge() appends v to the out-neighbors of u (and u to those of v if the
// graph is symmetric). It returns models.ErrOutOfRange if u or v are not nodes.
func (g *Graph) AddEdge(u, v uint32) error {
	if g == nil {
		return models.ErrNilGraph
	}

	if !g.ContainsNode(u) || !g.ContainsNode(v) {
		return fmt.Errorf("%w: edge %d -> %d in a graph with %d nodes", models.ErrOutOfRange, u, v, len(g.adj))
	}

	g.adj[u] = append(g.adj[u], v)
	g.edges++

	if g.symmetric {
		g.adj[v] = append(g.adj[v], u)
		g.edges++
	}

	return nil
}

// NodeCount() returns the number of nodes.
func (g *Graph) NodeCount() int {
	if g == nil {
		return 0
	}
	return len(g.adj)
}

// EdgeCount() returns the number of adjacency entries, duplicates included.
func (g *Graph) EdgeCount() int {
	if g == nil {
		return 0
	}
	return g.edges
}

// IsSymmetric() returns whether the graph was built with WithSymmetric().
func (g *Graph) IsSymmetric() bool {
	return g != nil && g.symmetric
}

// ContainsNode() returns whether nodeID is in [0, n).
func (g *Graph) ContainsNode(nodeID uint32) bool {
	return g != nil && int(nodeID) < len(g.adj)
}

// Degree() returns the out-degree of nodeID, or 0 if it's not a node.
func (g *Graph) Degree(nodeID uint32) int {
	if !g.ContainsNode(nodeID) {
		return 0
	}
	return len(g.adj[nodeID])
}

// IsDangling() returns whether nodeID has no out-neighbors.
func (g *Graph) IsDangling(nodeID uint32) bool {
	return g.Degree(nodeID) == 0
}

// Neighbors() returns the ordered out-neighbors of nodeID, or nil if it's not a node.
// The returned slice is shared with the graph and must not be modified.
func (g *Graph) Neighbors(nodeID uint32) []uint32 {
	if !g.ContainsNode(nodeID) {
		return nil
	}
	return g.adj[nodeID]
}

// RandNeighbor() returns a uniformly drawn out-neighbor of nodeID.
func (g *Graph) RandNeighbor(nodeID uint32, rng models.Rand) (uint32, error) {
	if !g.ContainsNode(nodeID) {
		return math.MaxUint32, fmt.Errorf("%w: node %d", models.ErrOutOfRange, nodeID)
	}

	neighbors := g.adj[nodeID]
	if len(neighbors) == 0 {
		return math.MaxUint32, fmt.Errorf("%w: node %d", models.ErrDanglingNode, nodeID)
	}

	return neighbors[rng.Uniform(uint32(len(neighbors)))], nil
}

// Adjacency() returns a deep copy of the adjacency lists.
func (g *Graph) Adjacency() [][]uint32 {
	if g == nil {
		return nil
	}

	adj := make([][]uint32, len(g.adj))
	for u, neighbors := range g.adj {
		adj[u] = append(make([]uint32, 0, len(neighbors)), neighbors...)
	}
	return adj
}
