// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package harness implements a self-checking verification harness for FIFO
// implementations.
//
// The harness drives a syncfifo.Ticker one tick at a time and keeps an
// independent reference model: a shadow occupancy advanced with
// syncfifo.Admit, and a Scoreboard holding the values of admitted writes.
// When a read is admitted, the oldest expectation is popped and compared to
// the read data returned one tick later.
//
// Check failures are accumulated in a RunReport. They never abort a scenario.
//
package harness

import (
	"io"
	"log/slog"
	"math/rand"

	"github.com/db47h/syncfifo"
	"github.com/pkg/errors"
)

// An Option configures a Harness.
//
type Option func(h *Harness)

// WithLogger sets the logger. Check failures are logged at Warn level,
// harness faults at Error level and individual ticks at Debug level.
//
func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) { h.log = l }
}

// WithSeed sets the seed of the random data and stimulus generator.
//
func WithSeed(seed int64) Option {
	return func(h *Harness) { h.rnd = rand.New(rand.NewSource(seed)) }
}

// WithAutoCheck enables checking the count, flags and pulses against the
// shadow model after every tick.
//
func WithAutoCheck(on bool) Option {
	return func(h *Harness) { h.auto = on }
}

// WithResetCycles sets for how many ticks Reset holds the reset input. The
// minimum, and default, is 2.
//
func WithResetCycles(n int) Option {
	return func(h *Harness) { h.resetCycles = n }
}

const minResetCycles = 2

// Harness drives a FIFO under test and checks its outputs.
//
type Harness struct {
	dut         syncfifo.Ticker
	cfg         syncfifo.Config
	mask        uint64
	sb          *Scoreboard
	shadow      int
	pending     bool   // a read was admitted at the previous tick
	expect      uint64 // expected data for the pending read
	last        syncfifo.Outputs
	tick        uint64
	rnd         *rand.Rand
	log         *slog.Logger
	auto        bool
	resetCycles int
	report      *RunReport
}

// New returns a new harness driving dut, a FIFO with configuration cfg.
//
// The harness assumes that dut is in its reset state. Call Reset otherwise.
//
func New(dut syncfifo.Ticker, cfg syncfifo.Config, opts ...Option) (*Harness, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "harness")
	}
	h := &Harness{
		dut:         dut,
		cfg:         cfg,
		mask:        cfg.DataMask(),
		sb:          NewScoreboard(cfg.Capacity),
		resetCycles: minResetCycles,
		report:      &RunReport{},
		last:        syncfifo.Outputs{Flags: cfg.FlagsFor(0), Count: 0},
	}
	for _, o := range opts {
		o(h)
	}
	if h.rnd == nil {
		h.rnd = rand.New(rand.NewSource(1))
	}
	if h.log == nil {
		h.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if h.resetCycles < minResetCycles {
		h.resetCycles = minResetCycles
	}
	return h, nil
}

// Config returns the configuration of the FIFO under test.
//
func (h *Harness) Config() syncfifo.Config { return h.cfg }

// Report returns the report of the current run.
//
func (h *Harness) Report() *RunReport { return h.report }

// Outputs returns the outputs sampled at the last tick.
//
func (h *Harness) Outputs() syncfifo.Outputs { return h.last }

// Pending returns the number of values in the scoreboard.
//
func (h *Harness) Pending() int { return h.sb.Len() }

// step runs one tick and updates the reference model.
//
func (h *Harness) step(in syncfifo.Inputs) syncfifo.Outputs {
	h.tick++
	h.report.Ticks++
	in.Data &= h.mask
	out := h.dut.Tick(in)
	h.last = out
	h.log.Debug("tick", "tick", h.tick, "in", in, "out", out.String())

	// data of the read admitted at the previous tick
	if h.pending {
		h.pending = false
		h.checkData(out.ReadData, h.expect)
	}

	var d syncfifo.Decision
	if in.Reset {
		h.sb.Clear()
		h.shadow = 0
	} else {
		d = syncfifo.Admit(h.shadow, h.cfg.Capacity, in.Write, in.Read)
		if d.Read {
			v, ok := h.sb.Pop()
			if !ok {
				h.fault("read admitted with an empty scoreboard")
			}
			h.pending, h.expect = ok, v
		}
		if d.Write {
			h.sb.Push(in.Data)
		}
		h.shadow = d.Occupancy
		if h.sb.Len() != h.shadow {
			h.fault("scoreboard out of sync with shadow occupancy")
			h.syncScoreboard()
		}
	}
	d.Occupancy = h.shadow

	if h.auto {
		h.checkAgainst(out, d)
	}
	return out
}

// syncScoreboard drops the oldest expectations or pads the scoreboard with
// zeros until it matches the shadow occupancy.
//
func (h *Harness) syncScoreboard() {
	for h.sb.Len() > h.shadow {
		h.sb.Pop()
	}
	for h.sb.Len() < h.shadow {
		h.sb.Push(0)
	}
}

func (h *Harness) checkAgainst(out syncfifo.Outputs, d syncfifo.Decision) {
	h.CheckCount(d.Occupancy)
	exp := h.cfg.FlagsFor(d.Occupancy)
	h.CheckFlag(syncfifo.SigFull, out.Full, exp.Full)
	h.CheckFlag(syncfifo.SigEmpty, out.Empty, exp.Empty)
	h.CheckFlag(syncfifo.SigAlmostFull, out.AlmostFull, exp.AlmostFull)
	h.CheckFlag(syncfifo.SigAlmostEmpty, out.AlmostEmpty, exp.AlmostEmpty)
	h.CheckFlag(syncfifo.SigOverflow, out.Overflow, d.Overflow)
	h.CheckFlag(syncfifo.SigUnderflow, out.Underflow, d.Underflow)
}

func (h *Harness) fail(f Failure) {
	f.Tick = h.tick
	h.report.add(f)
	if f.Kind == KindHarness {
		h.log.Error("harness fault", "tick", f.Tick, "msg", f.Msg)
		return
	}
	h.log.Warn("check failed", "tick", f.Tick, "kind", string(f.Kind), "name", f.Name, "got", f.Got, "want", f.Want)
}

func (h *Harness) fault(msg string) {
	h.fail(Failure{Kind: KindHarness, Msg: msg})
}

// CheckFlag records a check of the named status flag. It returns true if
// actual == expected.
//
func (h *Harness) CheckFlag(name string, actual, expected bool) bool {
	h.report.Checks++
	if actual == expected {
		return true
	}
	h.fail(Failure{Kind: KindFlag, Name: name, Got: actual, Want: expected})
	return false
}

// CheckCount checks the word count sampled at the last tick.
//
func (h *Harness) CheckCount(expected int) bool {
	h.report.Checks++
	if h.last.Count == expected {
		return true
	}
	h.fail(Failure{Kind: KindCount, Name: "word_count", Got: h.last.Count, Want: expected})
	return false
}

func (h *Harness) checkData(actual, expected uint64) bool {
	h.report.Checks++
	if actual == expected {
		return true
	}
	h.fail(Failure{Kind: KindData, Name: "read_data", Got: actual, Want: expected})
	return false
}

// ExpectFlag checks the named status flag sampled at the last tick. See
// syncfifo.SignalNames for valid names; an unknown name is a harness fault.
//
func (h *Harness) ExpectFlag(name string, expected bool) bool {
	v, err := h.last.Flag(name)
	if err != nil {
		h.fault(err.Error())
		return false
	}
	return h.CheckFlag(name, v, expected)
}

// Reset holds the reset input for the configured number of ticks, releases
// it for one tick and clears the scoreboard.
//
func (h *Harness) Reset() {
	for i := 0; i < h.resetCycles; i++ {
		h.step(syncfifo.Inputs{Reset: true})
	}
	h.step(syncfifo.Inputs{})
	h.sb.Clear()
	h.shadow = 0
}

// AssertReset runs a single tick with the reset input asserted.
//
func (h *Harness) AssertReset() {
	h.step(syncfifo.Inputs{Reset: true})
}

// WriteOne requests a write of value. The value is expected back only if the
// shadow model admits the write.
//
func (h *Harness) WriteOne(value uint64) {
	h.step(syncfifo.Inputs{Write: true, Data: value})
}

// ReadOne requests a read. If the shadow model admits it, the oldest
// expectation is popped and compared to the read data at the next tick.
//
func (h *Harness) ReadOne() {
	h.step(syncfifo.Inputs{Read: true})
}

// WriteRead requests a write of value and a read in the same tick.
//
func (h *Harness) WriteRead(value uint64) {
	h.step(syncfifo.Inputs{Write: true, Data: value, Read: true})
}

// Idle runs n ticks without requests.
//
func (h *Harness) Idle(n int) {
	for i := 0; i < n; i++ {
		h.step(syncfifo.Inputs{})
	}
}

// Flush runs an idle tick if a read data compare is pending.
//
func (h *Harness) Flush() {
	if h.pending {
		h.step(syncfifo.Inputs{})
	}
}

// WriteBurst writes n sequential values starting at start.
//
func (h *Harness) WriteBurst(n int, start uint64) {
	for i := 0; i < n; i++ {
		h.WriteOne(start + uint64(i))
	}
}

// ReadBurst issues n sequential reads.
//
func (h *Harness) ReadBurst(n int) {
	for i := 0; i < n; i++ {
		h.ReadOne()
	}
}

// WriteRandom writes n uniformly random values.
//
func (h *Harness) WriteRandom(n int) {
	for i := 0; i < n; i++ {
		h.WriteOne(h.rnd.Uint64() & h.mask)
	}
}

// RandomMix runs n ticks of random write/read requests with random data.
// About one tick in resetOdds asserts reset; never if resetOdds <= 0.
//
func (h *Harness) RandomMix(n, resetOdds int) {
	for i := 0; i < n; i++ {
		h.step(syncfifo.Inputs{
			Reset: resetOdds > 0 && h.rnd.Intn(resetOdds) == 0,
			Write: h.rnd.Intn(2) == 0,
			Read:  h.rnd.Intn(2) == 0,
			Data:  h.rnd.Uint64(),
		})
	}
}
