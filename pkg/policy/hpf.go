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

// hpf is Highest Priority First: non-preemptive, a running process keeps
// the CPU until it finishes regardless of later, higher-priority arrivals.
type hpf struct {
	basePolicy
}

func newHPF() Policy {
	return &hpf{basePolicy{name: "hpf", ready: ready.NewHPF()}}
}

func (*hpf) ShouldPreempt(*pcb.PCB) bool { return false }

func (*hpf) Dispatched(*pcb.PCB) {}

func (*hpf) Ticked(*pcb.PCB) bool { return false }
