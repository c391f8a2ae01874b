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
	"github.com/oskernel/schedsim/pkg/config"
)

const (
	optInputFile   = "f"
	optEventLog    = "log"
	optSummaryFile = "perf"

	optPolicy  = "s"
	optQuantum = "q"

	optArenaSize = "arena"

	optMemoryLog = "memlog"

	optVerbose = "v"
	optDebug   = "debug"
)

// ioOptions captures the file paths the driver reads from and writes to.
type ioOptions struct {
	inputFile   string
	eventLog    string
	summaryFile string
}

// schedulerOptions captures the scheduling policy and its one tunable.
type schedulerOptions struct {
	policy  string
	quantum int
}

// memoryOptions captures the buddy allocator's arena size and its event
// trace destination.
type memoryOptions struct {
	arenaSize int
	memoryLog string
}

var (
	ioCfg    *config.Module
	ioOpts   = ioOptions{}
	schedCfg *config.Module
	sched    = schedulerOptions{}
	memCfg   *config.Module
	mem      = memoryOptions{}
	logCfg   *config.Module
	verbose  bool
)

func init() {
	ioCfg = config.Register("main", "input file and output file locations")
	ioCfg.StringVar(&ioOpts.inputFile, optInputFile, "processes.txt", "job description file to read.")
	ioCfg.StringVar(&ioOpts.eventLog, optEventLog, "scheduler.log", "per-event transition log to write.")
	ioCfg.StringVar(&ioOpts.summaryFile, optSummaryFile, "scheduler.perf", "summary statistics file to write.")

	schedCfg = config.Register("scheduler", "scheduling policy and quantum")
	schedCfg.StringVar(&sched.policy, optPolicy, "", "scheduling policy: hpf, srtn, or rr (required).")
	schedCfg.IntVar(&sched.quantum, optQuantum, 2, "round-robin quantum, in ticks (rr only).")

	memCfg = config.Register("memory", "buddy allocator arena and its event trace")
	memCfg.IntVar(&mem.arenaSize, optArenaSize, 1024, "arena size in bytes (must be a power of two).")
	memCfg.StringVar(&mem.memoryLog, optMemoryLog, "memory.log", "memory allocation/deallocation trace to write.")

	logCfg = config.Register("log", "logging verbosity")
	logCfg.BoolVar(&verbose, optVerbose, false, "enable debug logging.")
	logCfg.BoolVar(&verbose, optDebug, false, "alias for -v.")
}
