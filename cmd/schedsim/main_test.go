// Copyright 2019 Intel Corporation. All Rights Reserved.
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

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/oskernel/schedsim/pkg/accountant"
	"github.com/oskernel/schedsim/pkg/clock"
	"github.com/oskernel/schedsim/pkg/input"
	"github.com/oskernel/schedsim/pkg/memory"
	"github.com/oskernel/schedsim/pkg/policy"
	"github.com/oskernel/schedsim/pkg/scheduler"
)

// runSimulation drives the full pipeline (input.Read -> policy.New ->
// memory.Manager -> accountant.Accountant -> scheduler.Core -> drive)
// exactly as main()'s run() does, and returns the rendered scheduler.perf
// content.
func runSimulation(t *testing.T, policyName string, quantum, arena int, src string) string {
	t.Helper()

	jobs, err := input.Read(strings.NewReader(src))
	require.NoError(t, err)

	pol, err := policy.New(policyName, quantum)
	require.NoError(t, err)

	tick := clock.New()
	manager, err := memory.NewManager(arena, memory.NewMemoryLog(&bytes.Buffer{}), tick.Now)
	require.NoError(t, err)

	acc := accountant.New(&bytes.Buffer{})
	core := scheduler.New(pol, manager, acc)

	drive(core, tick, jobs)

	var perf bytes.Buffer
	require.NoError(t, accountant.WriteSummary(&perf, acc.Summarize()))
	return perf.String()
}

// S1 — HPF single job.
func TestEndToEndS1(t *testing.T) {
	got := runSimulation(t, "hpf", 2, 1024, "1\t0\t5\t1\t16\n")
	want := "CPU utilization = 100.00%\nAvg WTA = 1.00\nAvg Waiting = 0.00\nStd WTA = 0.00\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("scheduler.perf mismatch (-want +got):\n%s", diff)
	}
}

// S2 — HPF priority ordering.
func TestEndToEndS2(t *testing.T) {
	got := runSimulation(t, "hpf", 2, 1024, "1\t0\t4\t2\t8\n2\t1\t3\t1\t8\n")
	want := "CPU utilization = 100.00%\nAvg WTA = 1.50\nAvg Waiting = 1.50\nStd WTA = 0.50\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("scheduler.perf mismatch (-want +got):\n%s", diff)
	}
}

// S3 — SRTN preemption.
func TestEndToEndS3(t *testing.T) {
	got := runSimulation(t, "srtn", 2, 1024, "1\t0\t6\t1\t8\n2\t2\t2\t1\t8\n")
	want := "CPU utilization = 100.00%\nAvg WTA = 1.17\nAvg Waiting = 1.00\nStd WTA = 0.17\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("scheduler.perf mismatch (-want +got):\n%s", diff)
	}
}

// S5 — memory deferral under HPF.
func TestEndToEndS5(t *testing.T) {
	got := runSimulation(t, "hpf", 2, 8, "1\t0\t4\t1\t8\n2\t1\t2\t1\t4\n")
	require.Contains(t, got, "Avg Waiting = 1.50")
}
