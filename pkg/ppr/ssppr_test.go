package ppr

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/vertex-lab/ssppr/pkg/graph"
	"github.com/vertex-lab/ssppr/pkg/models"
	"github.com/vertex-lab/ssppr/pkg/random"
)

func TestParseMethod(t *testing.T) {
	testCases := []struct {
		name           string
		expectedMethod Method
		expectedError  error
	}{
		{name: "push", expectedMethod: MethodForwardPush},
		{name: "forwardpush", expectedMethod: MethodForwardPush},
		{name: "rw", expectedMethod: MethodRandomWalk},
		{name: "fora_skeleton", expectedMethod: MethodForaSkeleton},
		{name: "fora", expectedMethod: MethodFora},
		{name: "speedppr", expectedMethod: MethodSpeedPPR},
		{name: "ppw", expectedMethod: MethodPPW},
		{name: "pagerank", expectedError: models.ErrInvalidArgument},
		{name: "", expectedError: models.ErrInvalidArgument},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			method, err := ParseMethod(test.name)
			if !errors.Is(err, test.expectedError) {
				t.Fatalf("ParseMethod(%q): expected %v, got %v", test.name, test.expectedError, err)
			}

			if method != test.expectedMethod {
				t.Errorf("ParseMethod(%q): expected %v, got %v", test.name, test.expectedMethod, method)
			}
		})
	}
}

func TestEstimateErrors(t *testing.T) {
	testCases := []struct {
		name          string
		graphType     string
		source        uint32
		method        string
		params        Params
		expectedError error
	}{
		{
			name:          "nil graph",
			graphType:     "nil",
			method:        "push",
			params:        Params{Alpha: 0.2},
			expectedError: models.ErrNilGraph,
		},
		{
			name:          "empty graph",
			graphType:     "empty",
			method:        "push",
			params:        Params{Alpha: 0.2},
			expectedError: models.ErrEmptyGraph,
		},
		{
			name:          "source out of range",
			graphType:     "path",
			source:        4,
			method:        "push",
			params:        Params{Alpha: 0.2},
			expectedError: models.ErrOutOfRange,
		},
		{
			name:          "unsupported method",
			graphType:     "path",
			method:        "pagerank",
			params:        Params{Alpha: 0.2},
			expectedError: models.ErrInvalidArgument,
		},
		{
			name:          "missing alpha",
			graphType:     "path",
			method:        "rw",
			params:        Params{},
			expectedError: models.ErrInvalidArgument,
		},
		{
			name:          "negative rw_num",
			graphType:     "triangle",
			method:        "rw",
			params:        Params{Alpha: 0.2, RWNum: -10},
			expectedError: models.ErrInvalidArgument,
		},
		{
			name:          "dangling node reached",
			graphType:     "dangling",
			source:        1,
			method:        "rw",
			params:        Params{Alpha: 0.2},
			expectedError: models.ErrDanglingNode,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			G := graph.SetupGraph(test.graphType)

			ppr, err := Estimate(G, test.source, test.method, test.params, random.NewGenerator(42))
			if !errors.Is(err, test.expectedError) {
				t.Fatalf("Estimate(): expected %v, got %v", test.expectedError, err)
			}

			if ppr != nil {
				t.Errorf("Estimate(): expected no partial result, got %v", ppr)
			}
		})
	}
}

func TestEstimate(t *testing.T) {
	G := graph.SetupGraph("triangle")
	expected := reference(t, G, 0, 0.2)
	params := Params{Alpha: 0.2, RWNum: 100000, SampleSize: 1000}

	for _, method := range []string{"push", "forwardpush", "rw", "fora_skeleton", "fora", "speedppr", "ppw"} {
		t.Run(method, func(t *testing.T) {
			ppr, err := Estimate(G, 0, method, params, random.NewGenerator(69))
			if err != nil {
				t.Fatalf("Estimate(): expected nil, got %v", err)
			}

			if len(ppr) != G.NodeCount() {
				t.Fatalf("Estimate(): expected %d values, got %d", G.NodeCount(), len(ppr))
			}

			if distance := Distance(ppr, expected); distance > 0.05 {
				t.Errorf("Estimate(): expected a distance below 0.05, got %v", distance)
			}

			if math.Abs(Sum(ppr)-1) > 1e-6 {
				t.Errorf("Estimate(): expected sum 1, got %v", Sum(ppr))
			}

			again, _ := Estimate(G, 0, method, params, random.NewGenerator(69))
			if !reflect.DeepEqual(ppr, again) {
				t.Errorf("Estimate(): expected identical outputs with the same seed")
			}
		})
	}

	t.Run("nil rng", func(t *testing.T) {
		ppr, err := Estimate(G, 0, "rw", params, nil)
		if err != nil {
			t.Fatalf("Estimate(): expected nil, got %v", err)
		}

		if math.Abs(Sum(ppr)-1) > 1e-6 {
			t.Errorf("Estimate(): expected sum 1, got %v", Sum(ppr))
		}
	})

	t.Run("path end-to-end", func(t *testing.T) {
		ppr, err := Estimate(graph.SetupGraph("path"), 0, "push", Params{Alpha: 0.2, Rmax: 1e-4}, nil)
		if err != nil {
			t.Fatalf("Estimate(): expected nil, got %v", err)
		}

		if ppr[0] != 0.2 || math.Abs(ppr[1]-0.16) > 1e-12 || math.Abs(ppr[2]-0.128) > 1e-12 {
			t.Errorf("Estimate(): expected [0.2 0.16 0.128 ...], got %v", ppr)
		}
	})
}

func TestIsDeterministic(t *testing.T) {
	for _, method := range Methods() {
		if method.IsDeterministic() != (method == MethodForwardPush) {
			t.Errorf("IsDeterministic(%v): expected %v", method, method == MethodForwardPush)
		}
	}
}
