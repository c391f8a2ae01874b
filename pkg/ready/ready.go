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

// Package ready implements the ReadyStructure: a polymorphic ordered
// container of waiting PCBs, chosen once per scheduling policy at
// scheduler construction. HPF and SRTN use a priority heap over
// container/heap; RR uses a plain FIFO.
package ready

import (
	"container/heap"

	"github.com/oskernel/schedsim/pkg/pcb"
)

// Structure is the ReadyStructure contract every policy's queue satisfies.
type Structure interface {
	Push(p *pcb.PCB)
	Pop() *pcb.PCB
	Peek() *pcb.PCB
	Len() int
	IsEmpty() bool
}

// lessFunc orders two PCBs for a priority heap; it must be a strict weak
// ordering consistent with the tie-breaker (arrival ascending).
type lessFunc func(a, b *pcb.PCB) bool

// priorityQueue adapts a lessFunc into container/heap's Interface.
type priorityQueue struct {
	items []*pcb.PCB
	less  lessFunc
}

func (q *priorityQueue) Len() int           { return len(q.items) }
func (q *priorityQueue) Less(i, j int) bool { return q.less(q.items[i], q.items[j]) }
func (q *priorityQueue) Swap(i, j int)      { q.items[i], q.items[j] = q.items[j], q.items[i] }
func (q *priorityQueue) Push(x interface{}) { q.items = append(q.items, x.(*pcb.PCB)) }
func (q *priorityQueue) Pop() interface{} {
	old := q.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	q.items = old[:n-1]
	return item
}

// heapStructure wraps a priorityQueue as a Structure.
type heapStructure struct {
	pq *priorityQueue
}

func newHeapStructure(less lessFunc) *heapStructure {
	pq := &priorityQueue{less: less}
	heap.Init(pq)
	return &heapStructure{pq: pq}
}

func (h *heapStructure) Push(p *pcb.PCB) { heap.Push(h.pq, p) }

func (h *heapStructure) Pop() *pcb.PCB {
	if h.pq.Len() == 0 {
		return nil
	}
	return heap.Pop(h.pq).(*pcb.PCB)
}

func (h *heapStructure) Peek() *pcb.PCB {
	if h.pq.Len() == 0 {
		return nil
	}
	return h.pq.items[0]
}

func (h *heapStructure) Len() int      { return h.pq.Len() }
func (h *heapStructure) IsEmpty() bool { return h.pq.Len() == 0 }

// NewHPF creates a ReadyStructure ordered by (priority, arrival) ascending,
// lowest priority value dispatched first.
func NewHPF() Structure {
	return newHeapStructure(func(a, b *pcb.PCB) bool {
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		return a.Arrival < b.Arrival
	})
}

// NewSRTN creates a ReadyStructure ordered by (remaining, arrival)
// ascending, shortest remaining time dispatched first.
func NewSRTN() Structure {
	return newHeapStructure(func(a, b *pcb.PCB) bool {
		if a.Remaining != b.Remaining {
			return a.Remaining < b.Remaining
		}
		return a.Arrival < b.Arrival
	})
}

// fifo is the Round-Robin ReadyStructure: insertion order is dispatch
// order, including re-queues at the tail after a quantum expiry.
type fifo struct {
	items []*pcb.PCB
}

// NewRR creates a FIFO ReadyStructure for the Round-Robin policy.
func NewRR() Structure {
	return &fifo{}
}

func (f *fifo) Push(p *pcb.PCB) {
	f.items = append(f.items, p)
}

func (f *fifo) Pop() *pcb.PCB {
	if len(f.items) == 0 {
		return nil
	}
	p := f.items[0]
	f.items = f.items[1:]
	return p
}

func (f *fifo) Peek() *pcb.PCB {
	if len(f.items) == 0 {
		return nil
	}
	return f.items[0]
}

func (f *fifo) Len() int      { return len(f.items) }
func (f *fifo) IsEmpty() bool { return len(f.items) == 0 }
