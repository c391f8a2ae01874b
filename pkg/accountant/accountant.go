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

// Package accountant renders per-event transition lines and the final
// run summary (CPU utilization, weighted-turnaround statistics) the
// SchedulerCore reports as it drives PCBs through their lifecycle.
package accountant

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/oskernel/schedsim/pkg/pcb"
)

// Accountant accumulates event log lines and the finished-PCB statistics
// needed for the end-of-run summary.
type Accountant struct {
	log         *bufio.Writer
	wroteHeader bool

	busyTicks int
	lastTick  int

	finished []finishedStat
}

type finishedStat struct {
	wta         float64
	waitingTime int
}

// New creates an Accountant that writes its event log to log.
func New(log io.Writer) *Accountant {
	return &Accountant{log: bufio.NewWriter(log)}
}

func (a *Accountant) ensureHeader() {
	if a.wroteHeader {
		return
	}
	fmt.Fprintln(a.log, "#At time x process y state arr w total z remain y wait k")
	a.wroteHeader = true
}

// RecordTick marks that now is a tick at which the given condition
// (a process ran) applies, and advances the known run length for the
// final CPU-utilization computation. Call once per simulated tick.
func (a *Accountant) RecordTick(now int, busy bool) {
	a.ensureHeader()
	if busy {
		a.busyTicks++
	}
	if now+1 > a.lastTick {
		a.lastTick = now + 1
	}
}

// Started logs a PCB's first dispatch.
func (a *Accountant) Started(now int, p *pcb.PCB) {
	a.transition(now, p, "started")
}

// Resumed logs a PCB's dispatch after having run before.
func (a *Accountant) Resumed(now int, p *pcb.PCB) {
	a.transition(now, p, "resumed")
}

// Stopped logs a PCB being preempted or losing its RR quantum.
func (a *Accountant) Stopped(now int, p *pcb.PCB) {
	a.transition(now, p, "stopped")
}

// Finished logs a PCB's completion, appending its turnaround stats, and
// records the weighted turnaround and waiting time for the run summary.
func (a *Accountant) Finished(now int, p *pcb.PCB) {
	a.ensureHeader()
	ta := p.Turnaround()
	wta := p.WeightedTurnaround()
	fmt.Fprintf(a.log, "At time %d process %d finished arr %d total %d remain %d wait %d TA %d WTA %.2f\n",
		now, p.ID, p.Arrival, p.Runtime, p.Remaining, p.WaitingTime, ta, wta)
	a.finished = append(a.finished, finishedStat{wta: wta, waitingTime: p.WaitingTime})
}

func (a *Accountant) transition(now int, p *pcb.PCB, state string) {
	a.ensureHeader()
	fmt.Fprintf(a.log, "At time %d process %d %s arr %d total %d remain %d wait %d\n",
		now, p.ID, state, p.Arrival, p.Runtime, p.Remaining, p.WaitingTime)
}

// Summary is the rendered end-of-run statistics, rounded to two decimals.
type Summary struct {
	CPUUtilization float64
	AvgWTA         float64
	AvgWaiting     float64
	StdWTA         float64
}

// Summarize computes the final run Summary. It must be called once, after
// the driver loop has stopped advancing the clock.
func (a *Accountant) Summarize() Summary {
	var s Summary
	if a.lastTick > 0 {
		s.CPUUtilization = round2(100 * float64(a.busyTicks) / float64(a.lastTick))
	}
	if len(a.finished) == 0 {
		return s
	}

	var sumWTA, sumWaiting float64
	for _, f := range a.finished {
		sumWTA += f.wta
		sumWaiting += float64(f.waitingTime)
	}
	n := float64(len(a.finished))
	meanWTA := sumWTA / n
	s.AvgWTA = round2(meanWTA)
	s.AvgWaiting = round2(sumWaiting / n)

	var sumSquares float64
	for _, f := range a.finished {
		d := f.wta - meanWTA
		sumSquares += d * d
	}
	s.StdWTA = round2(math.Sqrt(sumSquares / n))
	return s
}

// WriteSummary renders s to w in the exact four-line format of
// scheduler.perf.
func WriteSummary(w io.Writer, s Summary) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "CPU utilization = %.2f%%\n", s.CPUUtilization)
	fmt.Fprintf(bw, "Avg WTA = %.2f\n", s.AvgWTA)
	fmt.Fprintf(bw, "Avg Waiting = %.2f\n", s.AvgWaiting)
	fmt.Fprintf(bw, "Std WTA = %.2f\n", s.StdWTA)
	return bw.Flush()
}

// Flush flushes the buffered event log to its underlying writer.
func (a *Accountant) Flush() error {
	return a.log.Flush()
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
