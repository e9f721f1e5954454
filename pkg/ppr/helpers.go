package ppr

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/vertex-lab/ssppr/pkg/models"
	"gonum.org/v1/gonum/floats"
)

// Entry is a node together with its estimated PPR.
type Entry struct {
	NodeID uint32
	Value  float64
}

// Sum() returns the sum of the values of the vector.
func Sum(vector models.Vector) float64 {
	return floats.Sum(vector)
}

// Distance() returns the L1 distance between two vectors, or +Inf if their lengths differ.
func Distance(v1, v2 models.Vector) float64 {
	if len(v1) != len(v2) {
		return math.Inf(1)
	}

	if len(v1) == 0 {
		return 0
	}

	return floats.Distance(v1, v2, 1)
}

// TopK() returns the k nodes with the highest values, sorted in decreasing order.
// Ties are broken by the smallest nodeID. If k <= 0 or k > len(vector), all nodes are returned.
func TopK(vector models.Vector, k int) []Entry {
	entries := make([]Entry, len(vector))
	for nodeID, value := range vector {
		entries[nodeID] = Entry{NodeID: uint32(nodeID), Value: value}
	}

	slices.SortFunc(entries, func(e1, e2 Entry) int {
		if c := cmp.Compare(e2.Value, e1.Value); c != 0 {
			return c
		}
		return cmp.Compare(e1.NodeID, e2.NodeID)
	})

	if k > 0 && k < len(entries) {
		entries = entries[:k]
	}
	return entries
}

// checkInputs() returns the appropriate error if the graph can't be used, the source
// is not one of its nodes, or alpha is not in (0,1].
func checkInputs(G models.Graph, source uint32, alpha float64) error {
	if err := checkGraph(G, source); err != nil {
		return err
	}

	if !(alpha > 0 && alpha <= 1) {
		return fmt.Errorf("%w: alpha must be in (0,1], got %v", models.ErrInvalidArgument, alpha)
	}

	return nil
}

func checkGraph(G models.Graph, source uint32) error {
	if G == nil {
		return models.ErrNilGraph
	}

	if v, ok := G.(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}

	if G.NodeCount() == 0 {
		return models.ErrEmptyGraph
	}

	if int(source) >= G.NodeCount() {
		return fmt.Errorf("%w: source %d in a graph with %d nodes", models.ErrOutOfRange, source, G.NodeCount())
	}

	return nil
}

func checkRand(rng models.Rand) error {
	if rng == nil {
		return fmt.Errorf("%w: nil random generator", models.ErrInvalidArgument)
	}
	return nil
}

func checkPositive(name string, value float64) error {
	if !(value > 0) || math.IsInf(value, 1) {
		return fmt.Errorf("%w: %s must be positive and finite, got %v", models.ErrInvalidArgument, name, value)
	}
	return nil
}
