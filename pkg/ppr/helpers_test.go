package ppr

import (
	"math"
	"reflect"
	"testing"

	"github.com/vertex-lab/ssppr/pkg/graph"
	"github.com/vertex-lab/ssppr/pkg/models"
	"github.com/vertex-lab/ssppr/pkg/random"
)

func TestSum(t *testing.T) {
	if sum := Sum(models.Vector{0.25, 0.5, 0.25}); sum != 1.0 {
		t.Errorf("Sum(): expected 1, got %v", sum)
	}

	if sum := Sum(nil); sum != 0 {
		t.Errorf("Sum(nil): expected 0, got %v", sum)
	}
}

func TestDistance(t *testing.T) {
	testCases := []struct {
		name             string
		v1               models.Vector
		v2               models.Vector
		expectedDistance float64
	}{
		{name: "both empty", expectedDistance: 0},
		{name: "different lengths", v1: models.Vector{1}, v2: models.Vector{1, 0}, expectedDistance: math.Inf(1)},
		{name: "equal", v1: models.Vector{0.5, 0.5}, v2: models.Vector{0.5, 0.5}, expectedDistance: 0},
		{name: "different", v1: models.Vector{1, 0, 0.5}, v2: models.Vector{0, 1, 0.25}, expectedDistance: 2.25},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			if d := Distance(test.v1, test.v2); d != test.expectedDistance {
				t.Errorf("Distance(): expected %v, got %v", test.expectedDistance, d)
			}
		})
	}
}

func TestTopK(t *testing.T) {
	vector := models.Vector{0.1, 0.5, 0.5, 0.2}

	testCases := []struct {
		name            string
		k               int
		expectedEntries []Entry
	}{
		{
			name:            "k = 0 returns all",
			k:               0,
			expectedEntries: []Entry{{1, 0.5}, {2, 0.5}, {3, 0.2}, {0, 0.1}},
		},
		{
			name:            "k bigger than the vector",
			k:               10,
			expectedEntries: []Entry{{1, 0.5}, {2, 0.5}, {3, 0.2}, {0, 0.1}},
		},
		{
			name:            "ties broken by nodeID",
			k:               3,
			expectedEntries: []Entry{{1, 0.5}, {2, 0.5}, {3, 0.2}},
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			if entries := TopK(vector, test.k); !reflect.DeepEqual(entries, test.expectedEntries) {
				t.Errorf("TopK(%d): expected %v, got %v", test.k, test.expectedEntries, entries)
			}
		})
	}
}

// ------------------------------------HELPERS----------------------------------

// fixedRand always returns the same float, and 0 as the uniform integer.
type fixedRand struct {
	float float64
}

func (f fixedRand) Float() float64 {
	return f.float
}

func (f fixedRand) Uniform(n uint32) uint32 {
	return 0
}

// reference() returns the personalized pagerank of source, up to an L1 error of 1e-10.
func reference(t testing.TB, G models.Graph, source uint32, alpha float64) models.Vector {
	t.Helper()
	ppr, r, err := ForwardPush(G, source, alpha, 1e-12)
	if err != nil {
		t.Fatalf("ForwardPush(): expected nil, got %v", err)
	}

	if residual := Sum(r); residual > 1e-10 {
		t.Fatalf("reference(): residual %v is too high", residual)
	}
	return ppr
}

// cycle() returns the undirected cycle over n nodes, where every node has degree 2.
func cycle(n int) *graph.Graph {
	G := graph.New(n, graph.WithSymmetric())
	for u := 0; u < n; u++ {
		G.AddEdge(uint32(u), uint32((u+1)%n))
	}
	return G
}

// generated() returns a random graph without dangling nodes.
func generated(nodes, successors int) *graph.Graph {
	return graph.Generate(nodes, successors, random.NewGenerator(69))
}
