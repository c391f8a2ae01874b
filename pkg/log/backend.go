// Copyright 2019-2020 Intel Corporation. All Rights Reserved.
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

package log

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// fmtBackend is the default Backend, writing prefixed lines to stderr.
type fmtBackend struct {
	sync.Mutex
}

func newFmtBackend() Backend {
	return &fmtBackend{}
}

func (b *fmtBackend) Name() string { return "fmt" }

func (b *fmtBackend) prefix(level Level, source string) string {
	tag := strings.ToUpper(LevelNames[level])
	if source == "" {
		return fmt.Sprintf("%s: ", tag)
	}
	return fmt.Sprintf("%s: [%s] ", tag, source)
}

func (b *fmtBackend) Log(level Level, source, format string, args ...interface{}) {
	b.Lock()
	defer b.Unlock()
	fmt.Fprintf(os.Stderr, b.prefix(level, source)+format+"\n", args...)
}

func (b *fmtBackend) Block(level Level, source, prefix, format string, args ...interface{}) {
	b.Lock()
	defer b.Unlock()
	msg := fmt.Sprintf(format, args...)
	linePrefix := b.prefix(level, source)
	for _, line := range strings.Split(msg, "\n") {
		fmt.Fprintf(os.Stderr, "%s%s%s\n", linePrefix, prefix, line)
	}
}
