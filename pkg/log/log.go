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

// Package log implements a small leveled, per-source logging facility in
// the style used throughout this lineage of daemons: callers obtain a
// named Logger once per package/component and use Printf-style methods
// on it, severity filtering and backend selection are global and can be
// changed at any point (e.g. via command line flags), and the fmt-based
// default backend is good enough that nothing else is usually needed.
package log

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
)

// Level describes the severity of a log message.
type Level int32

const (
	// LevelDebug is the severity for debug messages.
	LevelDebug Level = iota
	// LevelInfo is the severity for informational messages.
	LevelInfo
	// LevelWarn is the severity for warnings.
	LevelWarn
	// LevelError is the severity for errors.
	LevelError
)

// LevelNames maps severity levels to their printable name.
var LevelNames = map[Level]string{
	LevelDebug: "debug",
	LevelInfo:  "info",
	LevelWarn:  "warn",
	LevelError: "error",
}

// NamedLevels maps severity names to levels, accepting the "warning" alias.
var NamedLevels = map[string]Level{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
}

// Logger is the interface used by callers to emit log messages for a source.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
	// Fatal formats and emits an error message, then os.Exit(1)'s.
	Fatal(format string, args ...interface{})
	// Panic formats and emits an error message, then panics with it.
	Panic(format string, args ...interface{})

	DebugBlock(prefix, format string, args ...interface{})
	InfoBlock(prefix, format string, args ...interface{})

	EnableDebug(bool) bool
	DebugEnabled() bool
	Source() string
}

// Backend emits formatted log messages somewhere.
type Backend interface {
	Name() string
	Log(level Level, source, format string, args ...interface{})
	Block(level Level, source, prefix, format string, args ...interface{})
}

type registry struct {
	sync.RWMutex
	level   Level
	backend Backend
	loggers map[string]*logger
	debug   map[string]bool // sources with debugging explicitly enabled
}

var reg = &registry{
	level:   LevelInfo,
	backend: newFmtBackend(),
	loggers: map[string]*logger{},
	debug:   map[string]bool{},
}

// logger is the concrete Logger implementation, identified by its source name.
type logger struct {
	source string
}

// Get returns the (possibly newly created) Logger for the given source.
func Get(source string) Logger {
	reg.Lock()
	defer reg.Unlock()
	source = strings.Trim(source, "[] ")
	if l, ok := reg.loggers[source]; ok {
		return l
	}
	l := &logger{source: source}
	reg.loggers[source] = l
	return l
}

// NewLogger is an alias for Get, matching this lineage's naming.
func NewLogger(source string) Logger {
	return Get(source)
}

// SetLevel sets the lowest severity that is not suppressed.
func SetLevel(level Level) {
	reg.Lock()
	defer reg.Unlock()
	reg.level = level
}

// SetDebug enables or disables debug messages for the given sources.
// The special name "all" toggles every currently registered source.
func SetDebug(enabled bool, sources ...string) {
	reg.Lock()
	defer reg.Unlock()
	for _, s := range sources {
		if s == "all" {
			for src := range reg.loggers {
				reg.debug[src] = enabled
			}
			reg.debug["all"] = enabled
			continue
		}
		reg.debug[s] = enabled
	}
}

// Sources returns the names of every logger created so far, sorted.
func Sources() []string {
	reg.RLock()
	defer reg.RUnlock()
	names := make([]string, 0, len(reg.loggers))
	for n := range reg.loggers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (l *logger) Source() string { return l.source }

func (l *logger) DebugEnabled() bool {
	reg.RLock()
	defer reg.RUnlock()
	if reg.debug["all"] {
		return true
	}
	return reg.debug[l.source]
}

func (l *logger) EnableDebug(state bool) bool {
	reg.Lock()
	defer reg.Unlock()
	old := reg.debug[l.source]
	reg.debug[l.source] = state
	return old
}

func (l *logger) emit(level Level, format string, args ...interface{}) bool {
	reg.RLock()
	lvl, backend := reg.level, reg.backend
	debug := reg.debug["all"] || reg.debug[l.source]
	reg.RUnlock()
	if level == LevelDebug && !debug {
		return false
	}
	if level < lvl {
		return false
	}
	backend.Log(level, l.source, format, args...)
	return true
}

func (l *logger) Debug(format string, args ...interface{}) { l.emit(LevelDebug, format, args...) }
func (l *logger) Info(format string, args ...interface{})  { l.emit(LevelInfo, format, args...) }
func (l *logger) Warn(format string, args ...interface{})  { l.emit(LevelWarn, format, args...) }
func (l *logger) Error(format string, args ...interface{}) { l.emit(LevelError, format, args...) }

func (l *logger) Fatal(format string, args ...interface{}) {
	l.emit(LevelError, format, args...)
	os.Exit(1)
}

func (l *logger) Panic(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.emit(LevelError, "%s", msg)
	panic(msg)
}

func (l *logger) DebugBlock(prefix, format string, args ...interface{}) {
	if !l.DebugEnabled() {
		return
	}
	reg.RLock()
	backend := reg.backend
	reg.RUnlock()
	backend.Block(LevelDebug, l.source, prefix, format, args...)
}

func (l *logger) InfoBlock(prefix, format string, args ...interface{}) {
	reg.RLock()
	lvl, backend := reg.level, reg.backend
	reg.RUnlock()
	if LevelInfo < lvl {
		return
	}
	backend.Block(LevelInfo, l.source, prefix, format, args...)
}
