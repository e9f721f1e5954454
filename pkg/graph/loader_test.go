package graph

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vertex-lab/ssppr/pkg/models"
)

func TestParseEdge(t *testing.T) {
	testCases := []struct {
		name          string
		line          string
		expectedU     uint32
		expectedV     uint32
		expectedError error
	}{
		{name: "space", line: "3 7", expectedU: 3, expectedV: 7},
		{name: "comma", line: "3,7", expectedU: 3, expectedV: 7},
		{name: "comma and space", line: "3, 7", expectedU: 3, expectedV: 7},
		{name: "tab", line: "3\t7", expectedU: 3, expectedV: 7},
		{name: "repeated spaces", line: "3   7", expectedU: 3, expectedV: 7},
		{name: "weighted", line: "3 7 0.5", expectedError: ErrWeightedEdge},
		{name: "weighted with commas", line: "3,7,1", expectedError: ErrWeightedEdge},
		{name: "single token", line: "37", expectedError: ErrMalformedEdge},
		{name: "negative ID", line: "-3 7", expectedError: ErrMalformedEdge},
		{name: "not a number", line: "a b", expectedError: ErrMalformedEdge},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			u, v, err := ParseEdge(test.line)
			if !errors.Is(err, test.expectedError) {
				t.Fatalf("ParseEdge(%q): expected %v, got %v", test.line, test.expectedError, err)
			}

			if u != test.expectedU || v != test.expectedV {
				t.Errorf("ParseEdge(%q): expected (%d, %d), got (%d, %d)", test.line, test.expectedU, test.expectedV, u, v)
			}
		})
	}
}

func TestLoadEdgeList(t *testing.T) {
	content := "# a comment\n/ another comment\n\n0 1\n1,2\n2\t0\n0 1\n"

	t.Run("file not found", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing.txt")
		if _, err := LoadEdgeList(path); !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("LoadEdgeList(): expected %v, got %v", os.ErrNotExist, err)
		}
	})

	t.Run("weighted file", func(t *testing.T) {
		path := writeFile(t, "0 1 0.3\n")
		if _, err := LoadEdgeList(path); !errors.Is(err, ErrWeightedEdge) {
			t.Fatalf("LoadEdgeList(): expected %v, got %v", ErrWeightedEdge, err)
		}
	})

	t.Run("first load writes the meta", func(t *testing.T) {
		path := writeFile(t, content)

		g, err := LoadEdgeList(path)
		if err != nil {
			t.Fatalf("LoadEdgeList(): expected nil, got %v", err)
		}

		expected := [][]uint32{{1, 1}, {2}, {0}}
		if !reflect.DeepEqual(g.Adjacency(), expected) {
			t.Errorf("LoadEdgeList(): expected adjacency %v, got %v", expected, g.Adjacency())
		}

		n, m, err := ReadMeta(MetaPath(path))
		if err != nil {
			t.Fatalf("ReadMeta(): expected nil, got %v", err)
		}

		if n != 3 || m != 4 {
			t.Errorf("ReadMeta(): expected (3, 4), got (%d, %d)", n, m)
		}
	})

	t.Run("meta with more nodes", func(t *testing.T) {
		path := writeFile(t, content)
		if err := WriteMeta(MetaPath(path), 5, 4); err != nil {
			t.Fatalf("WriteMeta(): expected nil, got %v", err)
		}

		g, err := LoadEdgeList(path)
		if err != nil {
			t.Fatalf("LoadEdgeList(): expected nil, got %v", err)
		}

		if g.NodeCount() != 5 || !g.IsDangling(4) {
			t.Errorf("LoadEdgeList(): expected 5 nodes with 4 dangling, got %d nodes", g.NodeCount())
		}
	})

	t.Run("meta with fewer nodes", func(t *testing.T) {
		path := writeFile(t, content)
		if err := WriteMeta(MetaPath(path), 2, 4); err != nil {
			t.Fatalf("WriteMeta(): expected nil, got %v", err)
		}

		if _, err := LoadEdgeList(path); !errors.Is(err, models.ErrOutOfRange) {
			t.Fatalf("LoadEdgeList(): expected %v, got %v", models.ErrOutOfRange, err)
		}
	})

	t.Run("malformed meta", func(t *testing.T) {
		path := writeFile(t, content)
		if err := os.WriteFile(MetaPath(path), []byte("three"), 0644); err != nil {
			t.Fatalf("WriteFile(): expected nil, got %v", err)
		}

		if _, err := LoadEdgeList(path); !errors.Is(err, ErrMalformedMeta) {
			t.Fatalf("LoadEdgeList(): expected %v, got %v", ErrMalformedMeta, err)
		}
	})

	t.Run("symmetric", func(t *testing.T) {
		path := writeFile(t, "0 1\n1 2\n")

		g, err := LoadEdgeList(path, WithSymmetric())
		if err != nil {
			t.Fatalf("LoadEdgeList(): expected nil, got %v", err)
		}

		expected := [][]uint32{{1}, {0, 2}, {1}}
		if !reflect.DeepEqual(g.Adjacency(), expected) {
			t.Errorf("LoadEdgeList(): expected adjacency %v, got %v", expected, g.Adjacency())
		}
	})
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write the edge-list: %v", err)
	}
	return path
}
