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

// Package scheduler implements the SchedulerCore: the single per-tick
// entry point that admits arrivals, drains memory waiters, dispatches
// under the active PolicyEngine, charges one tick of execution, and
// emits the resulting state transitions.
package scheduler

import (
	"sort"

	"github.com/oskernel/schedsim/pkg/accountant"
	"github.com/oskernel/schedsim/pkg/log"
	"github.com/oskernel/schedsim/pkg/memory"
	"github.com/oskernel/schedsim/pkg/pcb"
	"github.com/oskernel/schedsim/pkg/policy"
)

var logger = log.Get("scheduler")

// Core drives the simulation one tick at a time. It is not safe for
// concurrent use: exactly one caller (the driver loop) invokes Step, in
// strictly increasing tick order, matching the single-threaded,
// discrete-time model this simulator implements throughout.
type Core struct {
	policy     policy.Policy
	mem        *memory.Manager
	accountant *accountant.Accountant

	running *pcb.PCB
}

// New creates a Core bound to the given PolicyEngine, MemoryManager and
// Accountant. The three collaborate for the lifetime of one simulation
// run.
func New(p policy.Policy, mem *memory.Manager, acc *accountant.Accountant) *Core {
	return &Core{policy: p, mem: mem, accountant: acc}
}

// Step performs one full tick: admits arrivals, drains memory waiters,
// dispatches under the active policy, charges one tick of execution to
// whichever PCB ends up running, and logs every resulting transition.
// arrivals need not be pre-sorted; Step admits them in ascending id
// order for determinism, per the simulation's ordering contract.
func (c *Core) Step(now int, arrivals []pcb.Job) {
	sorted := append([]pcb.Job(nil), arrivals...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	for _, job := range sorted {
		c.admit(job)
	}

	for _, job := range c.mem.TryDrainWaiters() {
		c.policy.Push(pcb.NewPCB(job))
	}

	c.dispatch(now)

	busy := c.running != nil
	if c.running != nil {
		c.chargeTick(now)
	}
	c.accountant.RecordTick(now, busy)
}

// admit hands job to the MemoryManager and, if a block was available
// immediately, turns it into a fresh PCB pushed into the ready
// structure. Deferred jobs stay inside the MemoryManager's waiting
// queue; rejected jobs (memsize exceeds the arena) are dropped.
func (c *Core) admit(job pcb.Job) {
	res, _, err := c.mem.Admit(job)
	if err != nil {
		logger.Panic("scheduler: admit process %d: %v", job.ID, err)
		return
	}
	if res == memory.Admitted {
		c.policy.Push(pcb.NewPCB(job))
	}
}

// dispatch applies the active policy's preemption decision (SRTN only)
// and, if the CPU is free, pops and dispatches the next PCB.
func (c *Core) dispatch(now int) {
	if c.running != nil && c.policy.ShouldPreempt(c.running) {
		preempted := c.running
		preempted.Status = pcb.Ready
		c.accountant.Stopped(now, preempted)
		c.policy.Push(preempted)
		c.running = nil
	}

	if c.running != nil {
		return
	}

	next := c.policy.Pop()
	if next == nil {
		return
	}

	next.WaitingTime += now - next.LastRun
	next.Status = pcb.Running
	c.running = next
	c.policy.Dispatched(next)

	if !next.HasStarted {
		next.HasStarted = true
		next.StartTime = now
		c.accountant.Started(now, next)
	} else {
		c.accountant.Resumed(now, next)
	}
}

// chargeTick accounts one tick of execution against the running PCB,
// handling completion and RR quantum expiry.
func (c *Core) chargeTick(now int) {
	p := c.running
	p.Remaining--
	// LastRun tracks the tick boundary just after this execution, so a
	// later Ready->Running transition's waiting_time += now - LastRun
	// counts only the ticks actually spent idle in between.
	p.LastRun = now + 1
	quantumExpired := c.policy.Ticked(p)

	if p.Remaining == 0 {
		p.Status = pcb.Finished
		p.Finished = true
		p.FinishTime = now + 1
		c.accountant.Finished(p.FinishTime, p)
		c.mem.Release(p.ID)
		c.running = nil
		return
	}

	if quantumExpired {
		p.Status = pcb.Ready
		c.accountant.Stopped(now+1, p)
		c.policy.Push(p)
		c.running = nil
	}
}

// Idle reports whether the simulation has no more work in flight: no
// process running, none ready, none waiting for memory. The driver
// combines this with "all input jobs admitted" to decide termination.
func (c *Core) Idle() bool {
	return c.running == nil && c.policy.Len() == 0 && !c.mem.HasWaiters()
}

// Running returns the PCB currently occupying the CPU, or nil.
func (c *Core) Running() *pcb.PCB {
	return c.running
}
