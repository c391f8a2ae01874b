// Copyright 2024 Intel Corporation. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package buddy implements a power-of-two buddy memory allocator over a
// single fixed-size arena. It is grounded on the split/merge algorithm of
// this repository's original C buddy system (a recursive binary tree
// keyed by longest-free-block-per-node), re-expressed per this lineage's
// preference for a fixed-shape, array-encoded tree: since the arena size
// is known up front, the tree shape never changes, so a classic dynamic
// node/pointer tree buys nothing but cache misses and GC pressure.
package buddy

import (
	"math/bits"

	"github.com/pkg/errors"
)

// Allocator is a power-of-two buddy allocator over an arena of Size()
// bytes. It is not safe for concurrent use; callers (MemoryManager) own
// exclusive access the way the rest of the simulation core does.
type Allocator struct {
	size  int
	depth int // number of tree levels, root at level 0
	nodes []node
}

type node struct {
	allocated   bool
	longestFree int
}

// New creates an Allocator over an arena of the given size, which must be
// a positive power of two.
func New(size int) (*Allocator, error) {
	if size <= 0 || size&(size-1) != 0 {
		return nil, errors.Errorf("buddy: arena size %d is not a positive power of two", size)
	}
	depth := bits.Len(uint(size)) // size=1<<k has depth k+1 levels (0..k)
	a := &Allocator{
		size:  size,
		depth: depth,
		nodes: make([]node, 2*size-1),
	}
	for i := range a.nodes {
		a.nodes[i].longestFree = a.sizeAt(a.levelOf(i))
	}
	return a, nil
}

// TotalSize returns the arena size this allocator was created with.
func (a *Allocator) TotalSize() int {
	return a.size
}

// LongestFree returns the largest contiguous free block currently
// available (the root's longest-free value), mainly useful for tests and
// introspection.
func (a *Allocator) LongestFree() int {
	return a.nodes[0].longestFree
}

// levelOf returns the depth (0 = root) of the given 0-based node index in
// the implicit array-encoded complete binary tree.
func (a *Allocator) levelOf(index int) int {
	return bits.Len(uint(index+1)) - 1
}

func (a *Allocator) sizeAt(level int) int {
	return a.size >> level
}

// offsetOf returns the byte offset of the block represented by index.
func (a *Allocator) offsetOf(index, level int) int {
	firstAtLevel := (1 << level) - 1
	return (index - firstAtLevel) * a.sizeAt(level)
}

// RoundSize rounds size up to the nearest power of two that is at least 1.
func RoundSize(size int) int {
	if size <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(size-1))
}

// Allocate reserves a contiguous block able to hold size bytes, rounding
// size up to the next power of two. It returns the block's offset and
// true on success, or (0, false) if no block of that rounded size is
// currently free — not an error, a negative admission result the caller
// (MemoryManager) is expected to handle by deferral.
func (a *Allocator) Allocate(size int) (int, bool) {
	s := RoundSize(size)
	if s > a.size {
		return 0, false
	}
	if a.nodes[0].longestFree < s {
		return 0, false
	}

	index, level := 0, 0
	for {
		n := &a.nodes[index]
		sz := a.sizeAt(level)
		if sz == s && !n.allocated && n.longestFree == sz {
			n.allocated = true
			n.longestFree = 0
			offset := a.offsetOf(index, level)
			a.propagateUp(index)
			return offset, true
		}

		left, right := 2*index+1, 2*index+2
		if a.nodes[left].longestFree >= s {
			index, level = left, level+1
		} else {
			index, level = right, level+1
		}
	}
}

// Free releases the block at the given offset. Freeing an offset that is
// not currently the start of a live allocation is a silent no-op.
func (a *Allocator) Free(offset int) {
	index, level, ok := a.findAllocated(offset)
	if !ok {
		return
	}
	a.nodes[index].allocated = false
	a.nodes[index].longestFree = a.sizeAt(level)
	a.propagateUp(index)
}

// findAllocated walks from the root toward the given offset, descending
// into whichever child's range contains it, stopping at the first
// allocated node encountered (the unique node, if any, that was returned
// by a prior Allocate call for this offset).
func (a *Allocator) findAllocated(offset int) (index, level int, ok bool) {
	if offset < 0 || offset >= a.size {
		return 0, 0, false
	}
	index, level = 0, 0
	for {
		n := &a.nodes[index]
		if n.allocated {
			return index, level, true
		}
		left := 2*index + 1
		if left >= len(a.nodes) {
			return 0, 0, false // leaf, not allocated: unknown offset
		}
		leftLevel := level + 1
		childSize := a.sizeAt(leftLevel)
		leftOffset := a.offsetOf(left, leftLevel)
		if offset < leftOffset+childSize {
			index, level = left, leftLevel
		} else {
			index, level = left+1, leftLevel
		}
	}
}

// propagateUp recomputes longest-free for every ancestor of index, from
// its parent up to the root, after index's own state changed.
func (a *Allocator) propagateUp(index int) {
	for index > 0 {
		index = (index - 1) / 2
		left, right := 2*index+1, 2*index+2
		n := &a.nodes[index]
		level := a.levelOf(index)
		size := a.sizeAt(level)
		leftFree := a.nodes[left].longestFree
		rightFree := a.nodes[right].longestFree
		if !a.nodes[left].allocated && !a.nodes[right].allocated && leftFree == a.sizeAt(level+1) && rightFree == a.sizeAt(level+1) {
			n.longestFree = size
		} else if leftFree > rightFree {
			n.longestFree = leftFree
		} else {
			n.longestFree = rightFree
		}
	}
}
