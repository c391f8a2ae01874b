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

// Package config lets every package that has runtime tunables register a
// named Module of flag-backed variables instead of scattering flag.*Var
// calls across main(). It is a deliberately small relative of this
// lineage's original configuration framework: that framework additionally
// supported YAML-sourced configuration, live notification-driven
// reconfiguration, and snapshot/restore for rolling back a running
// daemon's configuration. None of that applies here — a simulation run is
// a single pass with no persistence and no notion of "while running"
// reconfiguration (see the non-goals in SPEC_FULL.md) — so only the
// registration and self-documenting flag-binding idiom survives.
package config

import (
	"flag"
	"fmt"
	"sort"
)

// Module is a named collection of related command line flags.
type Module struct {
	name        string
	description string
	*flag.FlagSet
}

var (
	modules  = map[string]*Module{}
	modOrder []string
)

// Register creates (or returns the already registered) Module with the
// given name, backed by its own flag.FlagSet so usage/help can be grouped
// per concern while still being merged into the single top-level
// flag.CommandLine during ParseCommandLine.
func Register(name, description string) *Module {
	if m, ok := modules[name]; ok {
		return m
	}
	m := &Module{
		name:        name,
		description: description,
		FlagSet:     flag.NewFlagSet(name, flag.ExitOnError),
	}
	modules[name] = m
	modOrder = append(modOrder, name)
	return m
}

// Name returns the module's registered name.
func (m *Module) Name() string { return m.name }

// ParseCommandLine merges every registered module's flags into the
// top-level flag.CommandLine, parses args (the caller passes
// os.Args[1:]), and returns any parse error instead of calling os.Exit,
// so callers can log and exit with their own preferred messaging.
func ParseCommandLine(args []string) error {
	flag.CommandLine.Init(flag.CommandLine.Name(), flag.ContinueOnError)
	for _, name := range modOrder {
		m := modules[name]
		m.VisitAll(func(f *flag.Flag) {
			if flag.Lookup(f.Name) == nil {
				flag.CommandLine.Var(f.Value, f.Name, f.Usage)
			}
		})
	}
	if err := flag.CommandLine.Parse(args); err != nil {
		return configError("failed to parse command line: %v", err)
	}
	return nil
}

// Print writes the resolved value of every registered flag, grouped by
// module, to the given writer-like Printf function (os.Stdout by the
// caller, typically), mirroring this lineage's "-print-config" support.
func Print(printf func(format string, args ...interface{})) {
	names := append([]string{}, modOrder...)
	sort.Strings(names)
	for _, name := range names {
		m := modules[name]
		printf("# %s: %s\n", m.name, m.description)
		m.VisitAll(func(f *flag.Flag) {
			printf("%s.%s = %s\n", m.name, f.Name, f.Value.String())
		})
	}
}

// Describe prints the usage text for the named module(s), or for every
// registered module if names is empty.
func Describe(printf func(format string, args ...interface{}), names ...string) {
	if len(names) == 0 {
		names = append([]string{}, modOrder...)
		sort.Strings(names)
	}
	for _, name := range names {
		m, ok := modules[name]
		if !ok {
			printf("unknown configuration module %q\n", name)
			continue
		}
		printf("%s: %s\n", m.name, m.description)
		m.VisitAll(func(f *flag.Flag) {
			printf("  -%s (default %q): %s\n", f.Name, f.DefValue, f.Usage)
		})
	}
}

// Names returns the names of all registered modules.
func Names() []string {
	names := append([]string{}, modOrder...)
	sort.Strings(names)
	return names
}

func configError(format string, args ...interface{}) error {
	return fmt.Errorf("config: "+format, args...)
}
