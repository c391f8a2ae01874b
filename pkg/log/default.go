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
	"os"
	"path/filepath"
)

var deflog = Get(filepath.Base(filepath.Clean(os.Args[0])))

// Default returns the default, binary-named Logger.
func Default() Logger {
	return deflog
}

// Info emits an informational message on the default Logger.
func Info(format string, args ...interface{}) { deflog.Info(format, args...) }

// Warn emits a warning on the default Logger.
func Warn(format string, args ...interface{}) { deflog.Warn(format, args...) }

// Error emits an error on the default Logger.
func Error(format string, args ...interface{}) { deflog.Error(format, args...) }

// Fatal emits an error on the default Logger and exits with status 1.
func Fatal(format string, args ...interface{}) { deflog.Fatal(format, args...) }

// Panic emits an error on the default Logger and panics.
func Panic(format string, args ...interface{}) { deflog.Panic(format, args...) }

// Debug emits a debug message on the default Logger.
func Debug(format string, args ...interface{}) { deflog.Debug(format, args...) }
