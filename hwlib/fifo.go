// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/db47h/syncfifo"
	"github.com/db47h/syncfifo/circuit"
	"github.com/pkg/errors"
)

// FIFO part pin and bus names. The status outputs use the syncfifo.Sig* names.
//
const (
	PinReset = "rst"
	PinWrite = "wr_en"
	PinRead  = "rd_en"
	BusDin   = "din"
	BusDout  = "dout"
	BusCount = "count"
)

// FIFO returns a synchronous FIFO part for the given configuration.
//
//	Inputs: rst, wr_en, rd_en, din[DataWidth]
//	Outputs: dout[DataWidth], full, empty, almost_full, almost_empty,
//	         overflow, underflow, count[CountWidth]
//	Function: see syncfifo.Controller.Tick. Inputs are sampled on the
//	          raising edge of clk, outputs are stable for the rest of the
//	          cycle. rst is active high.
//
// Each mount of the part gets its own Controller.
//
func FIFO(cfg syncfifo.Config) (circuit.NewPartFn, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "FIFO part")
	}
	w, cw := int(cfg.DataWidth), int(cfg.CountWidth())
	ws, cws := strconv.Itoa(w), strconv.Itoa(cw)

	spec := &circuit.PartSpec{
		Name:    "FIFO",
		Inputs:  circuit.IO(PinReset + ", " + PinWrite + ", " + PinRead + ", " + BusDin + "[" + ws + "]"),
		Outputs: append(circuit.IO(BusDout+"["+ws+"], "+BusCount+"["+cws+"]"), syncfifo.SignalNames...),
		Mount: func(s *circuit.Socket) []circuit.Component {
			ctrl, err := syncfifo.New(cfg)
			if err != nil {
				panic(err)
			}
			rst, wr, rd := s.Pin(PinReset), s.Pin(PinWrite), s.Pin(PinRead)
			din, dout, count := s.Bus(BusDin, w), s.Bus(BusDout, w), s.Bus(BusCount, cw)
			sigs := make([]int, len(syncfifo.SignalNames))
			for i, n := range syncfifo.SignalNames {
				sigs[i] = s.Pin(n)
			}
			out := ctrl.Outputs()
			return []circuit.Component{
				func(c *circuit.Circuit) {
					// raising edge?
					if c.AtTick() {
						out = ctrl.Tick(syncfifo.Inputs{
							Reset: c.Get(rst),
							Write: c.Get(wr),
							Data:  c.GetUint64(din),
							Read:  c.Get(rd),
						})
					}
					c.SetUint64(dout, out.ReadData)
					c.SetUint64(count, uint64(out.Count))
					for i, n := range syncfifo.SignalNames {
						v, _ := out.Flag(n)
						c.Set(sigs[i], v)
					}
				}}
		}}
	return spec.NewPart, nil
}

// FIFOCircuit runs a FIFO part in a circuit, driven by function inputs and
// observed through output probes. It implements syncfifo.Ticker and is
// cycle-equivalent to a syncfifo.Controller with the same configuration.
//
type FIFOCircuit struct {
	c   *circuit.Circuit
	in  syncfifo.Inputs
	out syncfifo.Outputs
}

// NewFIFOCircuit builds the circuit. See circuit.NewCircuit for the meaning
// of stepsPerCycle. The circuit must be released with Dispose.
//
func NewFIFOCircuit(cfg syncfifo.Config, stepsPerCycle uint) (*FIFOCircuit, error) {
	fifo, err := FIFO(cfg)
	if err != nil {
		return nil, err
	}
	w, cw := int(cfg.DataWidth), int(cfg.CountWidth())
	f := &FIFOCircuit{}

	conns := "rst=rst, wr_en=we, rd_en=re, din=d, dout=q, count=n"
	parts := circuit.Parts{
		Input(func() bool { return f.in.Reset })("out=rst"),
		Input(func() bool { return f.in.Write })("out=we"),
		Input(func() bool { return f.in.Read })("out=re"),
		InputN(w, func() uint64 { return f.in.Data })("out=d"),
		OutputN(w, func(v uint64) { f.out.ReadData = v })("in=q"),
		OutputN(cw, func(v uint64) { f.out.Count = int(v) })("in=n"),
	}
	probes := map[string]*bool{
		syncfifo.SigFull:        &f.out.Full,
		syncfifo.SigEmpty:       &f.out.Empty,
		syncfifo.SigAlmostFull:  &f.out.AlmostFull,
		syncfifo.SigAlmostEmpty: &f.out.AlmostEmpty,
		syncfifo.SigOverflow:    &f.out.Overflow,
		syncfifo.SigUnderflow:   &f.out.Underflow,
	}
	for _, n := range syncfifo.SignalNames {
		p := probes[n]
		conns += ", " + n + "=" + n
		parts = append(parts, Output(func(v bool) { *p = v })("in="+n))
	}
	parts = append(parts, fifo(conns))

	// a single worker: the circuit is small and scenarios run concurrently
	// at a higher level.
	f.c, err = circuit.NewCircuit(1, stepsPerCycle, parts...)
	if err != nil {
		return nil, errors.Wrap(err, "FIFO circuit")
	}
	// run the first half cycle so that every Tick call starts on a falling
	// edge and the inputs have settled when the next raising edge comes.
	f.c.Tick()
	return f, nil
}

// Tick implements syncfifo.Ticker. It sets the inputs, runs the second half of
// the current clock cycle, then the first half of the next one and returns the
// sampled outputs.
//
func (f *FIFOCircuit) Tick(in syncfifo.Inputs) syncfifo.Outputs {
	f.in = in
	f.c.Tock()
	f.c.Tick()
	return f.out
}

// Circuit returns the underlying circuit.
//
func (f *FIFOCircuit) Circuit() *circuit.Circuit { return f.c }

// Dispose releases the circuit resources.
//
func (f *FIFOCircuit) Dispose() { f.c.Dispose() }
