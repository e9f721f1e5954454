/*
The models package defines the fundamental structures and interfaces used in this project.
Interfaces:

Graph:
The Graph interface abstracts the read-only adjacency view consumed by the
estimators in the ppr package, so that they don't rely on a specific storage.

Rand:
The Rand interface abstracts the source of randomness used to draw neighbors.

ResultStore:
The ResultStore interface abstracts a cache of already computed PPR vectors.
*/
package models

import "errors"

// Graph is the static adjacency view shared (read-only) by all the estimators.
type Graph interface {
	// NodeCount() returns the number of nodes n. Node IDs are in [0, n).
	NodeCount() int

	// EdgeCount() returns the number of directed adjacency entries m.
	EdgeCount() int

	// Degree() returns the out-degree of nodeID.
	Degree(nodeID uint32) int

	// Neighbors() returns the ordered out-neighbors of nodeID. The caller must not modify it.
	Neighbors(nodeID uint32) []uint32

	// RandNeighbor() returns a uniformly random out-neighbor of nodeID.
	// It fails with ErrDanglingNode if nodeID has no out-neighbors.
	RandNeighbor(nodeID uint32, rng Rand) (uint32, error)
}

// Rand is the source of randomness consumed by the Graph and the estimators.
type Rand interface {
	// Float() returns a uniform float64 in [0, 1).
	Float() float64

	// Uniform() returns a uniform uint32 in [0, n).
	Uniform(n uint32) uint32
}

// Vector is a dense vector indexed by nodeID (e.g. a PPR estimate or a residual).
type Vector []float64

//--------------------------ERROR-CODES--------------------------

var ErrInvalidArgument = errors.New("invalid argument")
var ErrDanglingNode = errors.New("dangling node has no out-neighbors")
var ErrOutOfRange = errors.New("index out of range")

var ErrNilGraph = errors.New("graph pointer is nil")
var ErrEmptyGraph = errors.New("graph is empty")
