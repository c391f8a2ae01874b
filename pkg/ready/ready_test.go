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

package ready

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oskernel/schedsim/pkg/pcb"
)

func TestHPFOrdersByPriorityThenArrival(t *testing.T) {
	s := NewHPF()
	s.Push(&pcb.PCB{ID: 1, Priority: 3, Arrival: 0})
	s.Push(&pcb.PCB{ID: 2, Priority: 1, Arrival: 5})
	s.Push(&pcb.PCB{ID: 3, Priority: 1, Arrival: 2})

	require.Equal(t, 3, s.Pop().ID) // priority 1, earlier arrival
	require.Equal(t, 2, s.Pop().ID) // priority 1, later arrival
	require.Equal(t, 1, s.Pop().ID)
	require.True(t, s.IsEmpty())
}

func TestSRTNOrdersByRemainingThenArrival(t *testing.T) {
	s := NewSRTN()
	s.Push(&pcb.PCB{ID: 1, Remaining: 6, Arrival: 0})
	s.Push(&pcb.PCB{ID: 2, Remaining: 2, Arrival: 2})
	s.Push(&pcb.PCB{ID: 3, Remaining: 2, Arrival: 1})

	require.Equal(t, 3, s.Peek().ID)
	require.Equal(t, 3, s.Pop().ID)
	require.Equal(t, 2, s.Pop().ID)
	require.Equal(t, 1, s.Pop().ID)
}

func TestRRIsFIFO(t *testing.T) {
	s := NewRR()
	s.Push(&pcb.PCB{ID: 1})
	s.Push(&pcb.PCB{ID: 2})
	require.Equal(t, 1, s.Pop().ID)
	s.Push(&pcb.PCB{ID: 3}) // re-queued at tail while 2 still pending
	require.Equal(t, 2, s.Pop().ID)
	require.Equal(t, 3, s.Pop().ID)
	require.True(t, s.IsEmpty())
}

func TestPopOnEmptyReturnsNil(t *testing.T) {
	require.Nil(t, NewHPF().Pop())
	require.Nil(t, NewSRTN().Pop())
	require.Nil(t, NewRR().Pop())
}

func TestPeekDoesNotRemove(t *testing.T) {
	s := NewHPF()
	s.Push(&pcb.PCB{ID: 1, Priority: 1})
	require.Equal(t, 1, s.Peek().ID)
	require.Equal(t, 1, s.Len())
}
