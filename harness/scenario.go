// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package harness

import "strconv"

// Op is a scenario directive opcode.
//
type Op int

// Directive opcodes.
//
const (
	OpReset       Op = iota // Reset()
	OpAssertReset           // AssertReset()
	OpWrite                 // WriteOne(Data)
	OpRead                  // ReadOne()
	OpWriteRead             // WriteRead(Data)
	OpIdle                  // Idle(N)
	OpWriteBurst            // WriteBurst(N, Data)
	OpReadBurst             // ReadBurst(N)
	OpWriteRandom           // WriteRandom(N)
	OpRandomMix             // RandomMix(N, int(Data))
	OpExpectFlag            // ExpectFlag(Name, Want)
	OpExpectCount           // CheckCount(N)
	OpFlush                 // Flush()
)

var opNames = [...]string{
	OpReset:       "reset",
	OpAssertReset: "assert_reset",
	OpWrite:       "write",
	OpRead:        "read",
	OpWriteRead:   "write_read",
	OpIdle:        "idle",
	OpWriteBurst:  "write_burst",
	OpReadBurst:   "read_burst",
	OpWriteRandom: "write_random",
	OpRandomMix:   "random_mix",
	OpExpectFlag:  "expect_flag",
	OpExpectCount: "expect_count",
	OpFlush:       "flush",
}

func (o Op) String() string {
	if o >= 0 && int(o) < len(opNames) {
		return opNames[o]
	}
	return "Op(" + strconv.Itoa(int(o)) + ")"
}

// A Directive is one step of a scenario. Operand use depends on Op.
//
type Directive struct {
	Op   Op
	Data uint64
	N    int
	Name string
	Want bool
}

// Scenario is a named, finite list of directives.
//
type Scenario struct {
	Name       string
	Directives []Directive
	// AutoCheck enables shadow model checks after every tick for this run.
	AutoCheck bool
}

// Builder builds a Scenario.
//
type Builder struct {
	s Scenario
}

// NewScenario returns a Builder for a scenario with the given name.
//
func NewScenario(name string) *Builder {
	return &Builder{s: Scenario{Name: name}}
}

func (b *Builder) add(d Directive) *Builder {
	b.s.Directives = append(b.s.Directives, d)
	return b
}

// Reset adds a Reset directive.
func (b *Builder) Reset() *Builder { return b.add(Directive{Op: OpReset}) }

// AssertReset adds a single reset tick.
func (b *Builder) AssertReset() *Builder { return b.add(Directive{Op: OpAssertReset}) }

// Write adds a write of v.
func (b *Builder) Write(v uint64) *Builder { return b.add(Directive{Op: OpWrite, Data: v}) }

// Read adds a read.
func (b *Builder) Read() *Builder { return b.add(Directive{Op: OpRead}) }

// WriteRead adds a simultaneous write of v and read.
func (b *Builder) WriteRead(v uint64) *Builder { return b.add(Directive{Op: OpWriteRead, Data: v}) }

// Idle adds n idle ticks.
func (b *Builder) Idle(n int) *Builder { return b.add(Directive{Op: OpIdle, N: n}) }

// WriteBurst adds n writes of start, start+1, ...
func (b *Builder) WriteBurst(n int, start uint64) *Builder {
	return b.add(Directive{Op: OpWriteBurst, N: n, Data: start})
}

// ReadBurst adds n reads.
func (b *Builder) ReadBurst(n int) *Builder { return b.add(Directive{Op: OpReadBurst, N: n}) }

// WriteRandom adds n writes of random values.
func (b *Builder) WriteRandom(n int) *Builder { return b.add(Directive{Op: OpWriteRandom, N: n}) }

// RandomMix adds n ticks of random requests, with a reset about every
// resetOdds ticks.
func (b *Builder) RandomMix(n, resetOdds int) *Builder {
	return b.add(Directive{Op: OpRandomMix, N: n, Data: uint64(resetOdds)})
}

// ExpectFlag adds a check of the named flag.
func (b *Builder) ExpectFlag(name string, want bool) *Builder {
	return b.add(Directive{Op: OpExpectFlag, Name: name, Want: want})
}

// ExpectCount adds a check of the word count.
func (b *Builder) ExpectCount(n int) *Builder { return b.add(Directive{Op: OpExpectCount, N: n}) }

// Flush adds a Flush directive.
func (b *Builder) Flush() *Builder { return b.add(Directive{Op: OpFlush}) }

// AutoCheck sets the scenario AutoCheck flag.
func (b *Builder) AutoCheck(on bool) *Builder {
	b.s.AutoCheck = on
	return b
}

// Build returns the scenario.
func (b *Builder) Build() Scenario { return b.s }

// Exec executes a single directive. Unknown opcodes are harness faults.
//
func (h *Harness) Exec(d Directive) {
	switch d.Op {
	case OpReset:
		h.Reset()
	case OpAssertReset:
		h.AssertReset()
	case OpWrite:
		h.WriteOne(d.Data)
	case OpRead:
		h.ReadOne()
	case OpWriteRead:
		h.WriteRead(d.Data)
	case OpIdle:
		h.Idle(d.N)
	case OpWriteBurst:
		h.WriteBurst(d.N, d.Data)
	case OpReadBurst:
		h.ReadBurst(d.N)
	case OpWriteRandom:
		h.WriteRandom(d.N)
	case OpRandomMix:
		h.RandomMix(d.N, int(d.Data))
	case OpExpectFlag:
		h.ExpectFlag(d.Name, d.Want)
	case OpExpectCount:
		h.CheckCount(d.N)
	case OpFlush:
		h.Flush()
	default:
		h.fault("unknown directive " + d.Op.String())
	}
}

// Run resets the FIFO under test, executes the scenario, flushes any pending
// read compare and returns the scenario report.
//
func (h *Harness) Run(s Scenario) *RunReport {
	h.report = &RunReport{Scenario: s.Name}
	auto := h.auto
	h.auto = h.auto || s.AutoCheck
	defer func() { h.auto = auto }()

	log := h.log
	h.log = h.log.With("scenario", s.Name)
	defer func() { h.log = log }()

	h.Reset()
	for _, d := range s.Directives {
		h.Exec(d)
	}
	h.Flush()

	r := h.report
	h.log.Info("scenario done", "passed", r.Passed(), "ticks", r.Ticks, "checks", r.Checks, "failures", r.Failures, "harness_faults", r.HarnessFaults)
	return r
}
