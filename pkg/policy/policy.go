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

// Package policy implements the three PolicyEngine variants (HPF, SRTN,
// RR) behind a small named-backend registry, in the style of this
// lineage's other pluggable subsystems: a CreateFn registered under a
// name, looked up by the driver instead of switched on inline.
package policy

import (
	"github.com/pkg/errors"

	"github.com/oskernel/schedsim/pkg/pcb"
	"github.com/oskernel/schedsim/pkg/ready"
)

// Policy is the PolicyEngine contract. Each variant owns its own
// ReadyStructure instance (chosen at construction to match the variant's
// ordering) and decides preemption/dispatch/requeue behavior.
type Policy interface {
	// Name returns the registered name of this policy.
	Name() string

	// Push inserts a freshly admitted or re-queued PCB into this policy's
	// ready structure.
	Push(p *pcb.PCB)

	// Peek returns the ready structure's head without removing it, or nil
	// if empty.
	Peek() *pcb.PCB

	// Pop removes and returns the ready structure's head, or nil if empty.
	Pop() *pcb.PCB

	// Len reports how many PCBs are currently ready.
	Len() int

	// ShouldPreempt reports whether running should be preempted in favor
	// of the ready structure's current head. Only SRTN ever returns true;
	// HPF and RR decide preemption elsewhere (never, and by quantum,
	// respectively).
	ShouldPreempt(running *pcb.PCB) bool

	// Dispatched is called immediately after p is placed in the running
	// slot, so time-sliced policies can reset their per-dispatch state.
	Dispatched(p *pcb.PCB)

	// Ticked is called after one tick of execution has been charged to
	// the running PCB p. It returns true if p must now be preempted
	// (quantum expiry for RR; always false for HPF and SRTN, which only
	// preempt via ShouldPreempt before dispatch).
	Ticked(p *pcb.PCB) bool
}

// CreateFn constructs a Policy, given the RR quantum (ignored by HPF and
// SRTN).
type CreateFn func(quantum int) Policy

var registry = map[string]CreateFn{}

// Register adds a named policy constructor to the registry. Intended to
// be called from package init functions, mirroring this lineage's
// registration idiom for pluggable backends.
func Register(name string, fn CreateFn) {
	registry[name] = fn
}

// Names returns the registered policy names.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

// New looks up name in the registry and constructs a Policy with the
// given RR quantum. It returns an error if name is not registered.
func New(name string, quantum int) (Policy, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, errors.Errorf("policy: unknown scheduling policy %q", name)
	}
	return fn(quantum), nil
}

func init() {
	Register("hpf", func(int) Policy { return newHPF() })
	Register("srtn", func(int) Policy { return newSRTN() })
	Register("rr", func(quantum int) Policy { return newRR(quantum) })
}

// basePolicy embeds the common Push/Peek/Pop/Len plumbing shared by every
// variant; each concrete policy wraps it with its own ready.Structure and
// ShouldPreempt/Dispatched/Ticked semantics.
type basePolicy struct {
	name  string
	ready ready.Structure
}

func (b *basePolicy) Name() string    { return b.name }
func (b *basePolicy) Push(p *pcb.PCB) { b.ready.Push(p) }
func (b *basePolicy) Peek() *pcb.PCB  { return b.ready.Peek() }
func (b *basePolicy) Pop() *pcb.PCB   { return b.ready.Pop() }
func (b *basePolicy) Len() int        { return b.ready.Len() }
