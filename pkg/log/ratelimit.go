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
	"sync"

	goxrate "golang.org/x/time/rate"
)

// RateLimited wraps a Logger so that its warnings and errors, which share
// a single limiter, are throttled once the simulation emits them at
// a high tick rate (e.g. "memory size exceeds arena" for a flood of
// oversized jobs). Used by components that might otherwise spam the log
// once per tick for the lifetime of a long-running simulation.
type RateLimited struct {
	Logger
	mu      sync.Mutex
	limiter *goxrate.Limiter
}

// NewRateLimited wraps logger so that it allows burst messages immediately
// and then at most `rps` messages per second thereafter.
func NewRateLimited(logger Logger, rps float64, burst int) *RateLimited {
	return &RateLimited{
		Logger:  logger,
		limiter: goxrate.NewLimiter(goxrate.Limit(rps), burst),
	}
}

func (r *RateLimited) allow() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.limiter.Allow()
}

// Warn emits a rate-limited warning.
func (r *RateLimited) Warn(format string, args ...interface{}) {
	if r.allow() {
		r.Logger.Warn(format, args...)
	}
}

// Error emits a rate-limited error.
func (r *RateLimited) Error(format string, args ...interface{}) {
	if r.allow() {
		r.Logger.Error(format, args...)
	}
}
