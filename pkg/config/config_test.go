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

package config

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterIsIdempotent(t *testing.T) {
	a := Register("test-module", "used by TestRegisterIsIdempotent")
	b := Register("test-module", "a different description is ignored")
	require.Same(t, a, b)
}

func TestModuleStringVarDefault(t *testing.T) {
	m := Register("test-stringvar", "")
	var v string
	m.StringVar(&v, "greeting", "hello", "a greeting")
	require.Equal(t, "hello", v)
}

func TestPrintIncludesRegisteredValues(t *testing.T) {
	m := Register("test-print", "printable module")
	var n int
	m.IntVar(&n, "count", 7, "a count")

	var lines []string
	Print(func(format string, args ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, args...))
	})
	require.NotEmpty(t, lines)
	require.Contains(t, lines, "test-print.count = 7\n")
}
