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

// Package memory implements the MemoryManager: it wraps a buddy.Allocator
// with the per-process allocation table and the waiting queue of
// memory-starved jobs, and owns the memory event trace (MemoryLog).
package memory

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/oskernel/schedsim/pkg/buddy"
	"github.com/oskernel/schedsim/pkg/log"
	"github.com/oskernel/schedsim/pkg/pcb"
)

// Rejections are rate-limited: a run with many oversized jobs arriving on
// the same tick would otherwise spam the log once per rejection.
var logger = log.NewRateLimited(log.Get("memory"), 1, 5)

// AdmitResult is the outcome of a MemoryManager.Admit call.
type AdmitResult int

const (
	// Admitted means the job was given a block immediately.
	Admitted AdmitResult = iota
	// Deferred means the job was queued to wait for memory.
	Deferred
	// Rejected means the job's memsize exceeds the arena; it is dropped.
	Rejected
)

// Allocation records where and how much memory a live process occupies.
type Allocation struct {
	Offset    int
	Requested int
	Rounded   int
}

type waitingEntry struct {
	job         pcb.Job
	sizeRounded int
}

// Manager is the MemoryManager: buddy allocator + allocation table +
// waiting queue, in the style of this lineage's other *Manager types that
// pair a low-level mechanism with the bookkeeping callers actually want.
type Manager struct {
	alloc   *buddy.Allocator
	table   map[int]Allocation
	waiting []waitingEntry
	memlog  *MemoryLog
	now     func() int
}

// NewManager creates a Manager over an arena of the given size, recording
// allocation/deallocation events to memlog and using now to stamp events
// with the current simulation tick.
func NewManager(arenaSize int, memlog *MemoryLog, now func() int) (*Manager, error) {
	alloc, err := buddy.New(arenaSize)
	if err != nil {
		return nil, errors.Wrap(err, "memory: failed to create buddy allocator")
	}
	return &Manager{
		alloc:  alloc,
		table:  map[int]Allocation{},
		memlog: memlog,
		now:    now,
	}, nil
}

// ArenaSize returns the total size of the managed arena.
func (m *Manager) ArenaSize() int {
	return m.alloc.TotalSize()
}

// Admit attempts to give job a memory block. It returns Admitted with the
// block's offset, Deferred if the job was queued to wait, or Rejected if
// job.MemSize exceeds the arena outright (the job is dropped, never
// queued, per the spec's admission-impossible rule). Admitting an id that
// already has a live allocation is an error — the caller must not retry
// admission for a PCB twice.
func (m *Manager) Admit(job pcb.Job) (AdmitResult, int, error) {
	if _, exists := m.table[job.ID]; exists {
		return Admitted, 0, errors.Errorf("memory: process %d already has a live allocation", job.ID)
	}

	sizeRounded := buddy.RoundSize(job.MemSize)
	if sizeRounded > m.alloc.TotalSize() {
		logger.Warn("memory size %d exceeds arena; dropping process %d", job.MemSize, job.ID)
		return Rejected, 0, nil
	}

	if offset, ok := m.alloc.Allocate(job.MemSize); ok {
		m.table[job.ID] = Allocation{Offset: offset, Requested: job.MemSize, Rounded: sizeRounded}
		m.memlog.Allocated(m.now(), job.ID, sizeRounded, offset)
		return Admitted, offset, nil
	}

	m.enqueue(job, sizeRounded)
	return Deferred, 0, nil
}

// enqueue inserts a waiting entry keeping the queue sorted by rounded
// size ascending, ties broken by arrival ascending.
func (m *Manager) enqueue(job pcb.Job, sizeRounded int) {
	e := waitingEntry{job: job, sizeRounded: sizeRounded}
	i := sort.Search(len(m.waiting), func(i int) bool {
		if m.waiting[i].sizeRounded != e.sizeRounded {
			return m.waiting[i].sizeRounded > e.sizeRounded
		}
		return m.waiting[i].job.Arrival > e.job.Arrival
	})
	m.waiting = append(m.waiting, waitingEntry{})
	copy(m.waiting[i+1:], m.waiting[i:])
	m.waiting[i] = e
}

// Release frees id's allocation, if it has one, and logs the
// deallocation. Releasing an id with no live allocation is a silent
// no-op (double free / unknown id).
func (m *Manager) Release(id int) {
	a, ok := m.table[id]
	if !ok {
		return
	}
	m.alloc.Free(a.Offset)
	m.memlog.Freed(m.now(), id, a.Rounded, a.Offset)
	delete(m.table, id)
}

// Flush flushes the manager's memory log to its underlying writer.
func (m *Manager) Flush() error {
	return m.memlog.Flush()
}

// HasWaiters reports whether any job is waiting for memory.
func (m *Manager) HasWaiters() bool {
	return len(m.waiting) > 0
}

// TryDrainWaiters repeatedly attempts to admit the head of the waiting
// queue (smallest rounded size first, ties by arrival). It stops at the
// first failure rather than skipping past the head, to avoid starving a
// large waiting job behind an unbounded stream of smaller admits.
func (m *Manager) TryDrainWaiters() []pcb.Job {
	var admitted []pcb.Job
	for len(m.waiting) > 0 {
		head := m.waiting[0]
		offset, ok := m.alloc.Allocate(head.job.MemSize)
		if !ok {
			break
		}
		m.waiting = m.waiting[1:]
		m.table[head.job.ID] = Allocation{Offset: offset, Requested: head.job.MemSize, Rounded: head.sizeRounded}
		m.memlog.Allocated(m.now(), head.job.ID, head.sizeRounded, offset)
		admitted = append(admitted, head.job)
	}
	return admitted
}
