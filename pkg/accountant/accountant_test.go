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

package accountant

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oskernel/schedsim/pkg/pcb"
)

// S1 — HPF single job: arrival 0, runtime 5, finishes at tick 5, never
// waits, 100% utilization.
func TestSummarizeSingleJobFullUtilization(t *testing.T) {
	a := New(&bytes.Buffer{})
	for tick := 0; tick < 5; tick++ {
		a.RecordTick(tick, true)
	}
	p := &pcb.PCB{ID: 1, Arrival: 0, Runtime: 5, Remaining: 0, FinishTime: 5}
	a.Finished(5, p)

	s := a.Summarize()
	require.Equal(t, 100.0, s.CPUUtilization)
	require.Equal(t, 1.0, s.AvgWTA)
	require.Equal(t, 0.0, s.AvgWaiting)
	require.Equal(t, 0.0, s.StdWTA)
}

// S2 — HPF priority ordering: WTA1=1.00, WTA2=(7-1)/3=2.00 per the
// PCB's own Turnaround/WeightedTurnaround, averaging to 1.50; waiting
// times 0 and 3 average to 1.50.
func TestSummarizeAveragesAcrossFinishedPCBs(t *testing.T) {
	a := New(&bytes.Buffer{})
	for tick := 0; tick < 7; tick++ {
		a.RecordTick(tick, true)
	}
	p1 := &pcb.PCB{ID: 1, Arrival: 0, Runtime: 4, FinishTime: 4, WaitingTime: 0}
	p2 := &pcb.PCB{ID: 2, Arrival: 1, Runtime: 3, FinishTime: 7, WaitingTime: 3}
	a.Finished(4, p1)
	a.Finished(7, p2)

	s := a.Summarize()
	require.InDelta(t, 1.5, s.AvgWaiting, 1e-9)
}

func TestSummarizeWithNoFinishedPCBsIsZero(t *testing.T) {
	a := New(&bytes.Buffer{})
	a.RecordTick(0, false)
	s := a.Summarize()
	require.Zero(t, s.AvgWTA)
	require.Zero(t, s.AvgWaiting)
	require.Zero(t, s.StdWTA)
}

func TestWriteSummaryFormat(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSummary(&buf, Summary{CPUUtilization: 100, AvgWTA: 1, AvgWaiting: 0, StdWTA: 0})
	require.NoError(t, err)
	require.Equal(t, "CPU utilization = 100.00%\nAvg WTA = 1.00\nAvg Waiting = 0.00\nStd WTA = 0.00\n", buf.String())
}

func TestEventLogIncludesHeaderOnce(t *testing.T) {
	var buf bytes.Buffer
	a := New(&buf)
	p := &pcb.PCB{ID: 1, Arrival: 0, Runtime: 5, Priority: 1}
	a.Started(0, p)
	a.Stopped(1, p)
	require.NoError(t, a.Flush())
	require.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("#At time")))
}
