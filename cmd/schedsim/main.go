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
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/oskernel/schedsim/pkg/accountant"
	"github.com/oskernel/schedsim/pkg/clock"
	"github.com/oskernel/schedsim/pkg/config"
	"github.com/oskernel/schedsim/pkg/input"
	logger "github.com/oskernel/schedsim/pkg/log"
	"github.com/oskernel/schedsim/pkg/memory"
	"github.com/oskernel/schedsim/pkg/pcb"
	"github.com/oskernel/schedsim/pkg/policy"
	"github.com/oskernel/schedsim/pkg/scheduler"
	"github.com/oskernel/schedsim/pkg/version"
)

var log = logger.Default()

func main() {
	printConfig := flag.Bool("print-config", false, "Print the resolved configuration and exit.")
	listPolicies := flag.Bool("list-policies", false, "List available scheduling policies and exit.")

	if err := config.ParseCommandLine(os.Args[1:]); err != nil {
		log.Fatal("%v", err)
	}

	switch {
	case *listPolicies:
		fmt.Println("Available policies:")
		for _, name := range policy.Names() {
			fmt.Printf("  * %s\n", name)
		}
		os.Exit(0)

	case *printConfig:
		config.Print(func(format string, args ...interface{}) { fmt.Printf(format, args...) })
		os.Exit(0)
	}

	if verbose {
		logger.SetDebug(true, "all")
	}

	log.Info("schedsim (version %s, build %s) starting...", version.Version, version.Build)

	if err := run(); err != nil {
		log.Fatal("%v", err)
	}
}

// run drives one complete simulation: parse input, build the
// collaborators named by SPEC_FULL.md's component table, and step the
// SchedulerCore one tick at a time until no work remains.
func run() error {
	if sched.policy == "" {
		return errors.New("-s {hpf|srtn|rr} is required")
	}
	if sched.policy == "rr" && sched.quantum <= 0 {
		return errors.Errorf("-q must be positive for rr, got %d", sched.quantum)
	}

	jobs, err := readJobs(ioOpts.inputFile)
	if err != nil {
		return errors.Wrap(err, "failed to read input file")
	}

	pol, err := policy.New(sched.policy, sched.quantum)
	if err != nil {
		return err
	}

	eventLogFile, err := os.Create(ioOpts.eventLog)
	if err != nil {
		return errors.Wrapf(err, "failed to create event log %q", ioOpts.eventLog)
	}
	defer eventLogFile.Close()

	memLogFile, err := os.Create(mem.memoryLog)
	if err != nil {
		return errors.Wrapf(err, "failed to create memory log %q", mem.memoryLog)
	}
	defer memLogFile.Close()

	summaryFile, err := os.Create(ioOpts.summaryFile)
	if err != nil {
		return errors.Wrapf(err, "failed to create summary file %q", ioOpts.summaryFile)
	}
	defer summaryFile.Close()

	tick := clock.New()
	manager, err := memory.NewManager(mem.arenaSize, memory.NewMemoryLog(memLogFile), tick.Now)
	if err != nil {
		return errors.Wrap(err, "failed to create memory manager")
	}

	acc := accountant.New(eventLogFile)
	core := scheduler.New(pol, manager, acc)

	drive(core, tick, jobs)

	if err := acc.Flush(); err != nil {
		return errors.Wrap(err, "failed to flush event log")
	}
	if err := manager.Flush(); err != nil {
		return errors.Wrap(err, "failed to flush memory log")
	}
	if err := accountant.WriteSummary(summaryFile, acc.Summarize()); err != nil {
		return errors.Wrap(err, "failed to write summary file")
	}
	return nil
}

func readJobs(path string) ([]pcb.Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return input.Read(f)
}

// drive runs the tick loop: it groups jobs by arrival tick and calls
// core.Step once per tick, in strictly increasing order, until every job
// has been presented to the core and the core reports no work remains.
// tick is the simulation's sole notion of time; every collaborator that
// needs "now" (the memory manager, the accountant) reads it through tick.
func drive(core *scheduler.Core, tick *clock.Clock, jobs []pcb.Job) {
	byArrival := map[int][]pcb.Job{}
	maxArrival := 0
	for _, j := range jobs {
		byArrival[j.Arrival] = append(byArrival[j.Arrival], j)
		if j.Arrival > maxArrival {
			maxArrival = j.Arrival
		}
	}

	for {
		now := tick.Now()
		core.Step(now, byArrival[now])
		if now >= maxArrival && core.Idle() {
			return
		}
		tick.Advance()
	}
}
