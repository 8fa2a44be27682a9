// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package heap contains heap containers that extend the standard library's
// container/heap.
package heap

import (
	"fmt"
	"strings"

	"cloudeng.io/errors"
)

// Node is a single entry in an Indexed heap: a caller-assigned identifier
// paired with its current priority. Lower priorities are closer to the
// top of the heap.
type Node struct {
	ID       int `json:"id"`
	Priority int `json:"p"`
}

// Errors returned when an operation's preconditions do not hold. The heap
// is left unchanged whenever one of these is returned.
var (
	ErrFull        = errors.New("heap is at capacity")
	ErrDuplicateID = errors.New("id is already in the heap")
	ErrIDRange     = errors.New("id is outside the heap's id range")
	ErrEmpty       = errors.New("heap is empty")
	ErrUnknownID   = errors.New("id is not in the heap")
)

// Indexed implements an addressable binary min-heap: in addition to the
// usual insert and extract-min operations it maintains an index from
// identifier to heap position so that the priority of any entry can be
// read, and decreased, without scanning the heap. Decrease-key in
// O(log n) is what graph algorithms such as Dijkstra's shortest path or
// Prim's spanning tree need when a cheaper route to an already queued
// vertex is found.
//
// The heap has a fixed capacity set at creation and identifiers must be
// unique integers in [0, capacity). Priorities may only ever be lowered;
// there is no increase-key operation.
//
// Indexed is not safe for concurrent use; callers that share a heap
// across goroutines must serialize access themselves.
type Indexed struct {
	// nodes holds the heap as a complete binary tree using 1-based
	// positions: the children of position p are at 2p and 2p+1 and its
	// parent is at p/2. Slot 0 is never used.
	nodes []Node
	// pos maps an id to its current position in nodes, 0 if the id is
	// not live. Maintained by swap and never exposed to callers.
	pos  []int
	size int
}

// NewIndexed returns a new, empty Indexed heap with storage for capacity
// entries. NewIndexed panics if capacity is negative.
func NewIndexed(capacity int) *Indexed {
	if capacity < 0 {
		panic(fmt.Sprintf("heap: negative capacity %v", capacity))
	}
	return &Indexed{
		nodes: make([]Node, capacity+1),
		pos:   make([]int, capacity),
	}
}

// Len returns the number of entries currently in the heap.
func (h *Indexed) Len() int {
	return h.size
}

// Cap returns the capacity the heap was created with.
func (h *Indexed) Cap() int {
	return len(h.pos)
}

// Empty returns true if the heap contains no entries.
func (h *Indexed) Empty() bool {
	return h.size == 0
}

// Insert adds id to the heap with the supplied priority. The id must be
// in [0, Cap()), must not already be in the heap and the heap must not
// be full.
func (h *Indexed) Insert(priority, id int) error {
	if h.size == len(h.pos) {
		return ErrFull
	}
	if id < 0 || id >= len(h.pos) {
		return ErrIDRange
	}
	if h.pos[id] != 0 {
		return ErrDuplicateID
	}
	h.size++
	h.nodes[h.size] = Node{ID: id, Priority: priority}
	h.pos[id] = h.size
	h.siftUp(h.size)
	return nil
}

// Min returns the entry with the smallest priority without removing it.
func (h *Indexed) Min() (Node, error) {
	if h.size == 0 {
		return Node{}, ErrEmpty
	}
	return h.nodes[1], nil
}

// ExtractMin removes and returns the entry with the smallest priority.
func (h *Indexed) ExtractMin() (Node, error) {
	if h.size == 0 {
		return Node{}, ErrEmpty
	}
	h.swap(1, h.size)
	min := h.nodes[h.size]
	h.nodes[h.size] = Node{}
	h.pos[min.ID] = 0
	h.size--
	h.siftDown(1)
	return min, nil
}

// Priority returns the current priority of id.
func (h *Indexed) Priority(id int) (int, error) {
	if id < 0 || id >= len(h.pos) || h.pos[id] == 0 {
		return 0, ErrUnknownID
	}
	return h.nodes[h.pos[id]].Priority, nil
}

// DecreasePriority lowers the priority of id to priority and returns
// true. If id is not in the heap, or priority is not strictly smaller
// than its current priority, the heap is left untouched and
// DecreasePriority returns false.
func (h *Indexed) DecreasePriority(id, priority int) bool {
	if id < 0 || id >= len(h.pos) {
		return false
	}
	p := h.pos[id]
	if p == 0 || priority >= h.nodes[p].Priority {
		return false
	}
	h.nodes[p].Priority = priority
	h.siftUp(p)
	return true
}

// swap exchanges the nodes at positions i and j, keeping the id index
// consistent with the move.
func (h *Indexed) swap(i, j int) {
	h.pos[h.nodes[i].ID], h.pos[h.nodes[j].ID] = j, i
	h.nodes[i], h.nodes[j] = h.nodes[j], h.nodes[i]
}

// siftUp restores heap order from position p towards the root by
// repeatedly promoting a too-small node past its parent. The moving
// node's position is re-read from the index after each swap. No effect
// if p is not a live position.
func (h *Indexed) siftUp(p int) {
	if p < 1 || p > h.size {
		return
	}
	id := h.nodes[p].ID
	for p > 1 && h.nodes[p/2].Priority > h.nodes[p].Priority {
		h.swap(p/2, p)
		p = h.pos[id]
	}
}

// siftDown restores heap order from position p towards the leaves by
// repeatedly demoting a too-large node past its smaller child, the left
// child when both have equal priorities. As with siftUp the moving
// node's position is re-read from the index after each swap.
func (h *Indexed) siftDown(p int) {
	if p < 1 || p > h.size {
		return
	}
	id := h.nodes[p].ID
	for {
		c := 2 * p // left child
		if c > h.size {
			return
		}
		if r := c + 1; r <= h.size && h.nodes[r].Priority < h.nodes[c].Priority {
			c = r
		}
		if h.nodes[p].Priority <= h.nodes[c].Priority {
			return
		}
		h.swap(p, c)
		p = h.pos[id]
	}
}

// String renders every occupied slot and the reverse index for
// debugging. The format is not stable across releases.
func (h *Indexed) String() string {
	out := &strings.Builder{}
	fmt.Fprintf(out, "indexed heap: size %v, capacity %v\n", h.size, len(h.pos))
	fmt.Fprintf(out, "position: priority [id]\n")
	for p := 1; p <= h.size; p++ {
		fmt.Fprintf(out, "% 8v: %v [%v]\n", p, h.nodes[p].Priority, h.nodes[p].ID)
	}
	fmt.Fprintf(out, "id: position\n")
	for id, p := range h.pos {
		if p != 0 {
			fmt.Fprintf(out, "% 8v: %v\n", id, p)
		}
	}
	return out.String()
}
