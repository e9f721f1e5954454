package graph

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/vertex-lab/ssppr/pkg/models"
)

// the delimiters are tried in this order; the first one found in a line is used
var delimiters = []string{",", " ", "\t"}

// MetaPath() returns the path of the sidecar file that caches "n m" for an edge-list.
func MetaPath(path string) string {
	return path + ".meta"
}

/*
LoadEdgeList() reads a text edge-list, one "u v" pair per line, and returns the graph.

Lines that are empty or start with '#' or '/' are comments. The two node IDs are
separated by ',', spaces or tabs; a third token (a weight) is rejected with ErrWeightedEdge.
Each line adds exactly one adjacency entry u -> v, unless the WithSymmetric() option is passed.

The number of nodes n is one plus the largest ID seen. On the first load, "n m" is
written to the .meta sidecar next to the file; later loads use the n it contains.
*/
func LoadEdgeList(path string, opts ...Option) (*Graph, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open the edge-list: %w", err)
	}
	defer file.Close()

	var edges [][2]uint32
	var n int

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if isComment(text) {
			continue
		}

		u, v, err := ParseEdge(text)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}

		edges = append(edges, [2]uint32{u, v})
		n = max(n, int(u)+1, int(v)+1)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read the edge-list: %w", err)
	}

	metaN, _, err := ReadMeta(MetaPath(path))
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := WriteMeta(MetaPath(path), n, len(edges)); err != nil {
			return nil, err
		}

	case err != nil:
		return nil, err

	default:
		if metaN < n {
			return nil, fmt.Errorf("%w: %s declares %d nodes, but the edge-list has %d", models.ErrOutOfRange, MetaPath(path), metaN, n)
		}
		n = metaN
	}

	g := New(n, opts...)
	for _, e := range edges {
		if err := g.AddEdge(e[0], e[1]); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// ParseEdge() parses a single non-comment line of an edge-list.
func ParseEdge(line string) (u, v uint32, err error) {
	tokens := []string{line}
	for _, delimiter := range delimiters {
		if !strings.Contains(line, delimiter) {
			continue
		}

		tokens = tokens[:0]
		for _, token := range strings.Split(line, delimiter) {
			if token = strings.TrimSpace(token); token != "" {
				tokens = append(tokens, token)
			}
		}
		break
	}

	switch {
	case len(tokens) > 2:
		return 0, 0, fmt.Errorf("%w: %q", ErrWeightedEdge, line)

	case len(tokens) < 2:
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedEdge, line)
	}

	u, err = parseNodeID(tokens[0])
	if err != nil {
		return 0, 0, err
	}

	v, err = parseNodeID(tokens[1])
	if err != nil {
		return 0, 0, err
	}

	return u, v, nil
}

// ReadMeta() returns the number of nodes and edges stored in a .meta file.
func ReadMeta(path string) (n, m int, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, err
	}

	fields := strings.Fields(string(data))
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("%w: %s must contain \"n m\"", ErrMalformedMeta, path)
	}

	if n, err = strconv.Atoi(fields[0]); err != nil || n < 0 {
		return 0, 0, fmt.Errorf("%w: %s: invalid n %q", ErrMalformedMeta, path, fields[0])
	}

	if m, err = strconv.Atoi(fields[1]); err != nil || m < 0 {
		return 0, 0, fmt.Errorf("%w: %s: invalid m %q", ErrMalformedMeta, path, fields[1])
	}

	return n, m, nil
}

// WriteMeta() writes "n m" to the .meta file at path.
func WriteMeta(path string, n, m int) error {
	if err := os.WriteFile(path, []byte(fmt.Sprintf("%d %d\n", n, m)), 0644); err != nil {
		return fmt.Errorf("failed to write the meta file: %w", err)
	}
	return nil
}

func isComment(line string) bool {
	return line == "" || line[0] == '#' || line[0] == '/'
}

func parseNodeID(token string) (uint32, error) {
	ID, err := strconv.ParseUint(token, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid node ID %q", ErrMalformedEdge, token)
	}
	return uint32(ID), nil
}

//--------------------------ERROR-CODES--------------------------

var ErrWeightedEdge = errors.New("weighted edges are not supported")
var ErrMalformedEdge = errors.New("malformed edge-list line")
var ErrMalformedMeta = errors.New("malformed meta file")
