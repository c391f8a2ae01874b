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

// Package input reads the job description file the simulator is driven
// from: one tab-separated record per line, comments and blank lines
// ignored, malformed lines collected and reported together rather than
// failing on the first one found.
package input

import (
	"bufio"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/oskernel/schedsim/pkg/pcb"
)

// Read parses r into a slice of Jobs sorted by arrival ascending, ties
// broken by id ascending. It returns every malformed line it finds,
// aggregated into one *multierror.Error, rather than stopping at the
// first.
func Read(r io.Reader) ([]pcb.Job, error) {
	scanner := bufio.NewScanner(r)
	var jobs []pcb.Job
	var result error
	seen := map[int]int{} // id -> line number of first occurrence

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		job, err := parseLine(line)
		if err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "line %d: %q", lineNo, line))
			continue
		}
		if first, dup := seen[job.ID]; dup {
			result = multierror.Append(result, errors.Errorf("line %d: %q: duplicate process id %d (first seen on line %d)", lineNo, line, job.ID, first))
			continue
		}
		seen[job.ID] = lineNo
		jobs = append(jobs, job)
	}
	if err := scanner.Err(); err != nil {
		result = multierror.Append(result, errors.Wrap(err, "reading input"))
	}
	if result != nil {
		return nil, result
	}

	sortJobs(jobs)
	return jobs, nil
}

// parseLine parses one data line: four or five tab-separated positive
// integers, id arrival runtime priority [memsize], except that arrival
// may also be zero. memsize defaults to runtime when absent.
func parseLine(line string) (pcb.Job, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 4 || len(fields) > 5 {
		return pcb.Job{}, errors.Errorf("expected 4 or 5 tab-separated fields, got %d", len(fields))
	}

	ints := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return pcb.Job{}, errors.Wrapf(err, "field %d (%q) is not an integer", i+1, f)
		}
		arrivalField := i == 1
		if n < 0 || (n == 0 && !arrivalField) {
			return pcb.Job{}, errors.Errorf("field %d (%q) must be positive", i+1, f)
		}
		ints[i] = n
	}

	job := pcb.Job{
		ID:       ints[0],
		Arrival:  ints[1],
		Runtime:  ints[2],
		Priority: ints[3],
	}
	if len(ints) == 5 {
		job.MemSize = ints[4]
	} else {
		job.MemSize = job.Runtime
	}
	return job, nil
}

func sortJobs(jobs []pcb.Job) {
	sort.Slice(jobs, func(i, j int) bool {
		if jobs[i].Arrival != jobs[j].Arrival {
			return jobs[i].Arrival < jobs[j].Arrival
		}
		return jobs[i].ID < jobs[j].ID
	})
}
