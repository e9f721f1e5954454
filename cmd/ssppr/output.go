package main

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/vertex-lab/ssppr/pkg/models"
	"github.com/vertex-lab/ssppr/pkg/ppr"
)

// Display() writes the k nodes with the highest ppr, one per line. If k is 0, it writes the value of every node in order.
func Display(w io.Writer, vector models.Vector, k int) error {
	if k == 0 {
		for nodeID, value := range vector {
			if _, err := fmt.Fprintf(w, "%d\t%.10g\n", nodeID, value); err != nil {
				return err
			}
		}
		return nil
	}

	for rank, entry := range ppr.TopK(vector, k) {
		if _, err := fmt.Fprintf(w, "%d\t%d\t%.10g\n", rank+1, entry.NodeID, entry.Value); err != nil {
			return err
		}
	}
	return nil
}

/*
SaveVector() writes the vector to the file at path in binary: the length
as a little-endian uint64, followed by the little-endian float64 values.

# REFERENCES
[1] https://pkg.go.dev/encoding/binary#Write
*/
func SaveVector(path string, vector models.Vector) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if err := binary.Write(w, binary.LittleEndian, uint64(len(vector))); err != nil {
		return err
	}

	if err := binary.Write(w, binary.LittleEndian, []float64(vector)); err != nil {
		return err
	}

	if err := w.Flush(); err != nil {
		return err
	}
	return file.Close()
}

// LoadVector() reads a vector written by SaveVector().
func LoadVector(path string) (models.Vector, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := bufio.NewReader(file)
	var length uint64
	if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedVector, err)
	}

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if expected := 8 * (length + 1); uint64(info.Size()) != expected {
		return nil, fmt.Errorf("%w: %s declares %d values but has %d bytes", ErrMalformedVector, path, length, info.Size())
	}

	vector := make(models.Vector, length)
	if err := binary.Read(r, binary.LittleEndian, []float64(vector)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedVector, err)
	}
	return vector, nil
}

// Report summarizes a run, and it's written as TOML.
type Report struct {
	Graph   string     `toml:"graph"`
	Nodes   int        `toml:"nodes"`
	Edges   int        `toml:"edges"`
	Source  uint32     `toml:"source"`
	Method  string     `toml:"method"`
	Seed    uint64     `toml:"seed,omitempty"`
	Cached  bool       `toml:"cached"`
	Elapsed string     `toml:"elapsed"`
	Sum     float64    `toml:"sum"`
	Params  ppr.Params `toml:"params"`
	Top     []TopEntry `toml:"top,omitempty"`
}

type TopEntry struct {
	NodeID uint32  `toml:"node"`
	Value  float64 `toml:"value"`
}

// NewReport() returns the report of the run, listing the top k nodes of the result.
func NewReport(run Run, result Result, k int) Report {
	report := Report{
		Graph:   run.GraphName,
		Nodes:   run.Graph.NodeCount(),
		Edges:   run.Graph.EdgeCount(),
		Source:  run.Source,
		Method:  string(run.Method),
		Seed:    run.Seed,
		Cached:  result.Cached,
		Elapsed: result.Elapsed.String(),
		Sum:     ppr.Sum(result.Vector),
		Params:  run.Params,
	}

	if k == 0 {
		return report
	}

	for _, entry := range ppr.TopK(result.Vector, k) {
		report.Top = append(report.Top, TopEntry{NodeID: entry.NodeID, Value: entry.Value})
	}
	return report
}

// WriteReport() writes the report as TOML to the file at path.
func WriteReport(path string, report Report) error {
	data, err := toml.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal the report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write the report: %w", err)
	}
	return nil
}

//---------------------------------ERROR-CODES---------------------------------

var ErrMalformedVector = errors.New("malformed vector file")
