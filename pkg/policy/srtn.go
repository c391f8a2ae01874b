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

// srtn is Shortest Remaining Time Next: preemptive, a running process is
// bumped back to ready whenever the ready structure's head has strictly
// less remaining time. Equal remaining never preempts.
type srtn struct {
	basePolicy
}

func newSRTN() Policy {
	return &srtn{basePolicy{name: "srtn", ready: ready.NewSRTN()}}
}

func (s *srtn) ShouldPreempt(running *pcb.PCB) bool {
	head := s.Peek()
	if head == nil || running == nil {
		return false
	}
	return head.Remaining < running.Remaining
}

func (*srtn) Dispatched(*pcb.PCB) {}

func (*srtn) Ticked(*pcb.PCB) bool { return false }
