package ppr

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/vertex-lab/ssppr/pkg/graph"
	"github.com/vertex-lab/ssppr/pkg/models"
)

func TestPowerPushErrors(t *testing.T) {
	testCases := []struct {
		name          string
		graphType     string
		source        uint32
		lambda        float64
		expectedError error
	}{
		{name: "nil graph", graphType: "nil", lambda: 1e-3, expectedError: models.ErrNilGraph},
		{name: "source out of range", graphType: "path", source: 4, lambda: 1e-3, expectedError: models.ErrOutOfRange},
		{name: "zero lambda", graphType: "path", lambda: 0, expectedError: models.ErrInvalidArgument},
		{name: "infinite lambda", graphType: "path", lambda: math.Inf(1), expectedError: models.ErrInvalidArgument},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			G := graph.SetupGraph(test.graphType)
			if _, _, err := PowerPush(G, test.source, 0.2, test.lambda); !errors.Is(err, test.expectedError) {
				t.Fatalf("PowerPush(): expected %v, got %v", test.expectedError, err)
			}
		})
	}
}

func TestPowerPush(t *testing.T) {
	testCases := []struct {
		name   string
		G      *graph.Graph
		source uint32
		alpha  float64
	}{
		{name: "one-node", G: graph.SetupGraph("one-node"), source: 0, alpha: 0.2},
		{name: "path", G: graph.SetupGraph("path"), source: 0, alpha: 0.2},
		{name: "triangle", G: graph.SetupGraph("triangle"), source: 1, alpha: 0.2},
		{name: "acyclic1", G: graph.SetupGraph("acyclic1"), source: 0, alpha: 0.15},
		{name: "star", G: graph.SetupGraph("star"), source: 0, alpha: 0.2},
		{name: "generated", G: generated(500, 6), source: 7, alpha: 0.2},
	}

	for _, test := range testCases {
		for _, lambda := range []float64{1e-2, 1e-4, 1e-7} {
			t.Run(fmt.Sprintf("%s, lambda=%v", test.name, lambda), func(t *testing.T) {
				ppr, r, err := PowerPush(test.G, test.source, test.alpha, lambda)
				if err != nil {
					t.Fatalf("PowerPush(): expected nil, got %v", err)
				}

				if mass := Sum(ppr) + Sum(r); math.Abs(mass-1) > 1e-9 {
					t.Errorf("PowerPush(): expected sum(ppr) + sum(r) = 1, got %v", mass)
				}

				if residual := Sum(r); residual > lambda+1e-9 {
					t.Errorf("PowerPush(): expected a residual of at most %v, got %v", lambda, residual)
				}

				expected := reference(t, test.G, test.source, test.alpha)
				if distance := Distance(ppr, expected); distance > lambda+1e-9 {
					t.Errorf("PowerPush(): expected a distance of at most %v, got %v", lambda, distance)
				}
			})
		}
	}

	t.Run("lambda >= 1 does nothing", func(t *testing.T) {
		ppr, r, err := PowerPush(graph.SetupGraph("triangle"), 0, 0.2, 1)
		if err != nil {
			t.Fatalf("PowerPush(): expected nil, got %v", err)
		}

		if Sum(ppr) != 0 || r[0] != 1 {
			t.Errorf("PowerPush(): expected no push, got ppr %v and r %v", ppr, r)
		}
	})
}

// ---------------------------------BENCHMARK----------------------------------

func BenchmarkPowerPush(b *testing.B) {
	G := generated(10000, 20)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := PowerPush(G, 0, 0.2, 1e-4); err != nil {
			b.Fatalf("Benchmark failed: %v", err)
		}
	}
}
