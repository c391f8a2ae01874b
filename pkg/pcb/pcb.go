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

// Package pcb holds the Job and PCB record types shared by every package
// in the scheduler core: input parsing produces Jobs, admission turns a
// Job into a PCB, and the scheduler/policy/accountant packages mutate and
// read the PCB's fields as it moves through its lifecycle.
package pcb

// Job is an immutable input record describing one process to be
// simulated. It is produced once by the input reader and consumed exactly
// once, on admission, by the scheduler core.
type Job struct {
	ID       int
	Arrival  int
	Runtime  int
	Priority int
	MemSize  int
}

// Status is the lifecycle state of a PCB.
type Status int

const (
	// Ready means the PCB is admitted and waiting in the ready structure.
	Ready Status = iota
	// Running means the PCB currently occupies the single CPU.
	Running
	// Finished means the PCB has consumed all of its runtime.
	Finished
)

// String returns the lower-case name of a Status.
func (s Status) String() string {
	switch s {
	case Ready:
		return "ready"
	case Running:
		return "running"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// PCB (Process Control Block) is the mutable runtime record created on
// admission and destroyed on completion. Exactly one PCB per admitted Job
// exists at a time, and it is referenced from at most one of the ready
// structure or the "currently running" slot at any instant.
type PCB struct {
	ID       int
	Arrival  int
	Runtime  int // original runtime, never modified after admission
	Priority int

	Remaining int // 0 <= Remaining <= Runtime; 0 iff Status == Finished
	Status    Status

	StartTime  int  // tick of first dispatch
	HasStarted bool // whether StartTime has been set yet
	LastRun    int  // tick just after the one this PCB last ran in, or Arrival if it never ran
	FinishTime int
	Finished   bool

	WaitingTime int // ticks accumulated in Ready, including memory deferral
}

// NewPCB creates a fresh PCB for a just-admitted Job.
func NewPCB(j Job) *PCB {
	return &PCB{
		ID:        j.ID,
		Arrival:   j.Arrival,
		Runtime:   j.Runtime,
		Priority:  j.Priority,
		Remaining: j.Runtime,
		Status:    Ready,
		LastRun:   j.Arrival,
	}
}

// Turnaround returns finish-arrival; only meaningful once Finished.
func (p *PCB) Turnaround() int {
	return p.FinishTime - p.Arrival
}

// WeightedTurnaround returns Turnaround()/Runtime; only meaningful once Finished.
func (p *PCB) WeightedTurnaround() float64 {
	return float64(p.Turnaround()) / float64(p.Runtime)
}

// ResponseTime returns StartTime-Arrival; only meaningful once dispatched.
func (p *PCB) ResponseTime() int {
	return p.StartTime - p.Arrival
}
