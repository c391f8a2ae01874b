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
	"testing"

	"github.com/stretchr/testify/require"
)

type countingBackend struct {
	warns, errors int
}

func (c *countingBackend) Name() string { return "counting" }

func (c *countingBackend) Log(level Level, source, format string, args ...interface{}) {
	switch level {
	case LevelWarn:
		c.warns++
	case LevelError:
		c.errors++
	}
}

func (c *countingBackend) Block(level Level, source, prefix, format string, args ...interface{}) {}

func TestRateLimitedAllowsBurstThenThrottles(t *testing.T) {
	backend := &countingBackend{}
	old := reg.backend
	reg.backend = backend
	defer func() { reg.backend = old }()

	rl := NewRateLimited(Get(t.Name()), 0, 2)
	for i := 0; i < 5; i++ {
		rl.Warn("oversized job %d", i)
	}
	require.Equal(t, 2, backend.warns)
}

func TestRateLimitedErrorSharesTheSameLimiter(t *testing.T) {
	backend := &countingBackend{}
	old := reg.backend
	reg.backend = backend
	defer func() { reg.backend = old }()

	rl := NewRateLimited(Get(t.Name()), 0, 1)
	rl.Warn("first")
	rl.Error("second")
	require.Equal(t, 1, backend.warns+backend.errors)
}
