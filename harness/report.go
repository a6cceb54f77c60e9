// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package harness

import (
	"fmt"
	"strings"
)

// Kind is the kind of a check failure.
//
type Kind string

// Failure kinds. KindHarness denotes a defect of the harness itself, not of
// the FIFO under test.
//
const (
	KindFlag    Kind = "flag"
	KindCount   Kind = "count"
	KindData    Kind = "data"
	KindHarness Kind = "harness"
)

// MaxEntries caps the number of failures recorded in a RunReport. Counters
// keep counting past it.
//
const MaxEntries = 64

// Failure describes a single failed check.
//
type Failure struct {
	Tick uint64
	Kind Kind
	Name string
	Got  interface{}
	Want interface{}
	Msg  string // harness faults only
}

func (f Failure) String() string {
	if f.Kind == KindHarness {
		return fmt.Sprintf("tick %d: harness fault: %s", f.Tick, f.Msg)
	}
	if f.Kind == KindData {
		return fmt.Sprintf("tick %d: %s %s: got %#x, expected %#x", f.Tick, f.Kind, f.Name, f.Got, f.Want)
	}
	return fmt.Sprintf("tick %d: %s %s: got %v, expected %v", f.Tick, f.Kind, f.Name, f.Got, f.Want)
}

// RunReport tallies the checks of a scenario run.
//
type RunReport struct {
	Scenario string
	Ticks    uint64
	Checks   int
	// Failures counts failed checks against the FIFO under test.
	Failures int
	// HarnessFaults counts harness misuse or internal inconsistencies.
	HarnessFaults int
	Entries       []Failure
}

// Passed returns true if no check failed and no harness fault occurred.
//
func (r *RunReport) Passed() bool {
	return r.Failures == 0 && r.HarnessFaults == 0
}

func (r *RunReport) add(f Failure) {
	if f.Kind == KindHarness {
		r.HarnessFaults++
	} else {
		r.Failures++
	}
	if len(r.Entries) < MaxEntries {
		r.Entries = append(r.Entries, f)
	}
}

func (r *RunReport) String() string {
	var b strings.Builder
	status := "PASS"
	if !r.Passed() {
		status = "FAIL"
	}
	fmt.Fprintf(&b, "%s %s: %d ticks, %d checks, %d failures", status, r.Scenario, r.Ticks, r.Checks, r.Failures)
	if r.HarnessFaults > 0 {
		fmt.Fprintf(&b, ", %d harness faults", r.HarnessFaults)
	}
	return b.String()
}
