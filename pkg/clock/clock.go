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

// Package clock is the simulation's sole notion of time: a monotonically
// increasing tick counter, advanced exactly once per simulated tick by
// the driver loop. There is no wall-clock sleeping and no suspension —
// advancing the Clock is what makes time pass for every other component.
package clock

// Clock is a discrete, monotonically increasing tick counter.
type Clock struct {
	t int
}

// New creates a Clock starting at tick 0.
func New() *Clock {
	return &Clock{}
}

// Now returns the current tick.
func (c *Clock) Now() int {
	return c.t
}

// Advance moves the clock forward by one tick and returns the new value.
func (c *Clock) Advance() int {
	c.t++
	return c.t
}
