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

package policy

import (
	"github.com/oskernel/schedsim/pkg/pcb"
	"github.com/oskernel/schedsim/pkg/ready"
)

// rr is Round-Robin: each dispatch gets at most quantum consecutive
// ticks before being preempted and re-queued at the FIFO tail.
type rr struct {
	basePolicy
	quantum   int
	sliceUsed int
}

func newRR(quantum int) Policy {
	return &rr{basePolicy: basePolicy{name: "rr", ready: ready.NewRR()}, quantum: quantum}
}

func (*rr) ShouldPreempt(*pcb.PCB) bool { return false }

func (r *rr) Dispatched(*pcb.PCB) {
	r.sliceUsed = 0
}

func (r *rr) Ticked(p *pcb.PCB) bool {
	r.sliceUsed++
	return r.sliceUsed == r.quantum && p.Remaining > 0
}
