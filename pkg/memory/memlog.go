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
	"bufio"
	"fmt"
	"io"
)

// MemoryLog records the allocation/deallocation trace emitted by the
// buddy allocator, in the order events occur, to an underlying writer
// (typically memory.log).
type MemoryLog struct {
	w           *bufio.Writer
	wroteHeader bool
}

// NewMemoryLog wraps w, ready to have its header written on first use.
func NewMemoryLog(w io.Writer) *MemoryLog {
	return &MemoryLog{w: bufio.NewWriter(w)}
}

func (l *MemoryLog) ensureHeader() {
	if l.wroteHeader {
		return
	}
	fmt.Fprintln(l.w, "#At time x allocated y bytes for process z from i to j")
	l.wroteHeader = true
}

// Allocated records an allocation event.
func (l *MemoryLog) Allocated(now, id, size, offset int) {
	l.ensureHeader()
	fmt.Fprintf(l.w, "At time %d allocated %d bytes for process %d from %d to %d\n",
		now, size, id, offset, offset+size-1)
}

// Freed records a deallocation event.
func (l *MemoryLog) Freed(now, id, size, offset int) {
	l.ensureHeader()
	fmt.Fprintf(l.w, "At time %d freed %d bytes from process %d from %d to %d\n",
		now, size, id, offset, offset+size-1)
}

// Flush flushes any buffered output to the underlying writer.
func (l *MemoryLog) Flush() error {
	return l.w.Flush()
}
