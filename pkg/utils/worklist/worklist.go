// The worklist package provides the queue of active nodes used by the push
// estimators: a FIFO of node IDs where every node appears at most once.
package worklist

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/vertex-lab/ssppr/pkg/models"
)

/*
Worklist is a FIFO of node IDs in [0, capacity) without duplicates.
Pushing a node that is already active is a no-op, and popping a node makes it
inactive again, so it can be pushed later.

Since a node is active at most once, Len() never exceeds the capacity and the
queue is a fixed ring buffer that never reallocates.
*/
type Worklist struct {
	active mapset.Set[uint32]
	ring   []uint32
	head   int
	size   int
}

// New() returns an empty Worklist for the node IDs in [0, capacity).
func New(capacity int) *Worklist {
	if capacity < 0 {
		capacity = 0
	}

	return &Worklist{
		active: mapset.NewThreadUnsafeSetWithSize[uint32](capacity),
		ring:   make([]uint32, capacity),
	}
}

// Push() appends nodeID to the tail of the queue, unless it's already active.
// It returns models.ErrOutOfRange if nodeID is not smaller than the capacity.
func (w *Worklist) Push(nodeID uint32) error {
	if int(nodeID) >= len(w.ring) {
		return fmt.Errorf("%w: node %d, capacity %d", models.ErrOutOfRange, nodeID, len(w.ring))
	}

	if !w.active.Add(nodeID) {
		return nil
	}

	w.ring[(w.head+w.size)%len(w.ring)] = nodeID
	w.size++
	return nil
}

// Pop() removes and returns the head of the queue, deactivating it.
// The boolean is false if the queue is empty.
func (w *Worklist) Pop() (uint32, bool) {
	if w.size == 0 {
		return 0, false
	}

	nodeID := w.ring[w.head]
	w.head = (w.head + 1) % len(w.ring)
	w.size--
	w.active.Remove(nodeID)
	return nodeID, true
}

// Clear() empties the queue and deactivates every node.
func (w *Worklist) Clear() {
	w.active.Clear()
	w.head = 0
	w.size = 0
}

// IsActive() returns whether nodeID is currently in the queue.
func (w *Worklist) IsActive(nodeID uint32) bool {
	return w.active.Contains(nodeID)
}

// Len() returns the number of nodes in the queue.
func (w *Worklist) Len() int {
	return w.size
}

// Cap() returns the capacity.
func (w *Worklist) Cap() int {
	return len(w.ring)
}

// IsEmpty() returns whether the queue has no nodes.
func (w *Worklist) IsEmpty() bool {
	return w.size == 0
}
