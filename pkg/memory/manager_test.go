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

package memory

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oskernel/schedsim/pkg/pcb"
)

func newTestManager(t *testing.T, arena int) (*Manager, *int) {
	t.Helper()
	now := new(int)
	m, err := NewManager(arena, NewMemoryLog(&bytes.Buffer{}), func() int { return *now })
	require.NoError(t, err)
	return m, now
}

func TestAdmitSucceedsWhenMemoryAvailable(t *testing.T) {
	m, _ := newTestManager(t, 16)
	res, off, err := m.Admit(pcb.Job{ID: 1, MemSize: 8})
	require.NoError(t, err)
	require.Equal(t, Admitted, res)
	require.Equal(t, 0, off)
}

func TestAdmitDuplicateIDErrors(t *testing.T) {
	m, _ := newTestManager(t, 16)
	_, _, err := m.Admit(pcb.Job{ID: 1, MemSize: 4})
	require.NoError(t, err)
	_, _, err = m.Admit(pcb.Job{ID: 1, MemSize: 4})
	require.Error(t, err)
}

func TestAdmitRejectsOversizedJob(t *testing.T) {
	m, _ := newTestManager(t, 16)
	res, _, err := m.Admit(pcb.Job{ID: 1, MemSize: 32})
	require.NoError(t, err)
	require.Equal(t, Rejected, res)
	require.False(t, m.HasWaiters())
}

func TestAdmitDefersWhenArenaFull(t *testing.T) {
	m, _ := newTestManager(t, 8)
	res, _, err := m.Admit(pcb.Job{ID: 1, MemSize: 8})
	require.NoError(t, err)
	require.Equal(t, Admitted, res)

	res, _, err = m.Admit(pcb.Job{ID: 2, MemSize: 4})
	require.NoError(t, err)
	require.Equal(t, Deferred, res)
	require.True(t, m.HasWaiters())
}

// S5 — memory deferral scenario: job 1 claims the entire 8-byte arena,
// job 2 is deferred until job 1 releases.
func TestReleaseUnblocksWaiter(t *testing.T) {
	m, _ := newTestManager(t, 8)
	_, _, err := m.Admit(pcb.Job{ID: 1, Arrival: 0, MemSize: 8})
	require.NoError(t, err)
	_, _, err = m.Admit(pcb.Job{ID: 2, Arrival: 1, MemSize: 4})
	require.NoError(t, err)
	require.True(t, m.HasWaiters())

	require.Empty(t, m.TryDrainWaiters())

	m.Release(1)
	admitted := m.TryDrainWaiters()
	require.Len(t, admitted, 1)
	require.Equal(t, 2, admitted[0].ID)
	require.False(t, m.HasWaiters())
}

func TestDrainWaitersStopsAtFirstFailureHeadOfLine(t *testing.T) {
	m, _ := newTestManager(t, 8)
	_, _, err := m.Admit(pcb.Job{ID: 1, Arrival: 0, MemSize: 8})
	require.NoError(t, err)
	_, _, err = m.Admit(pcb.Job{ID: 2, Arrival: 1, MemSize: 8}) // deferred, head (smallest==largest here)
	require.NoError(t, err)
	_, _, err = m.Admit(pcb.Job{ID: 3, Arrival: 2, MemSize: 1}) // also deferred, smaller, sorts before id 2
	require.NoError(t, err)

	m.Release(1) // only 8 bytes free again; head of queue (smallest size) is id 3 (size 1)
	admitted := m.TryDrainWaiters()
	require.Len(t, admitted, 1)
	require.Equal(t, 3, admitted[0].ID)
	require.True(t, m.HasWaiters()) // id 2 still waiting; head-of-line, not skipped past
}

func TestReleaseIsIdempotent(t *testing.T) {
	m, _ := newTestManager(t, 16)
	_, _, err := m.Admit(pcb.Job{ID: 1, MemSize: 4})
	require.NoError(t, err)
	m.Release(1)
	m.Release(1) // no-op, must not panic
}

func TestReleaseUnknownIDIsNoop(t *testing.T) {
	m, _ := newTestManager(t, 16)
	m.Release(999) // no-op, must not panic
}

func TestWaitingQueueOrderedBySizeThenArrival(t *testing.T) {
	m, _ := newTestManager(t, 4)
	_, _, err := m.Admit(pcb.Job{ID: 1, Arrival: 0, MemSize: 4})
	require.NoError(t, err)

	_, _, err = m.Admit(pcb.Job{ID: 2, Arrival: 5, MemSize: 2})
	require.NoError(t, err)
	_, _, err = m.Admit(pcb.Job{ID: 3, Arrival: 1, MemSize: 2})
	require.NoError(t, err)
	_, _, err = m.Admit(pcb.Job{ID: 4, Arrival: 0, MemSize: 1})
	require.NoError(t, err)

	require.Equal(t, []waitingEntry{
		{job: pcb.Job{ID: 4, Arrival: 0, MemSize: 1}, sizeRounded: 1},
		{job: pcb.Job{ID: 3, Arrival: 1, MemSize: 2}, sizeRounded: 2},
		{job: pcb.Job{ID: 2, Arrival: 5, MemSize: 2}, sizeRounded: 2},
	}, m.waiting)
}
