// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package syncfifo

import "github.com/pkg/errors"

// A Ticker is a clocked FIFO implementation advanced one edge per Tick call.
//
// Controller is the reference Ticker. hwlib.FIFOCircuit is another one that
// runs a Controller mounted in a circuit simulation.
//
type Ticker interface {
	Tick(in Inputs) Outputs
}

// State is the register state of a Controller.
//
type State struct {
	WritePointer int
	ReadPointer  int
	Occupancy    int
	Overflow     bool
	Underflow    bool
}

// Check verifies the state invariants for the given configuration: both
// pointers in [0, Capacity), occupancy in [0, Capacity] and the circular
// distance from the read pointer to the write pointer matching the occupancy.
//
func (s State) Check(cfg Config) error {
	if s.Occupancy < 0 || s.Occupancy > cfg.Capacity {
		return errors.Errorf("occupancy %d out of range [0, %d]", s.Occupancy, cfg.Capacity)
	}
	if s.WritePointer < 0 || s.WritePointer >= cfg.Capacity {
		return errors.Errorf("write pointer %d out of range [0, %d)", s.WritePointer, cfg.Capacity)
	}
	if s.ReadPointer < 0 || s.ReadPointer >= cfg.Capacity {
		return errors.Errorf("read pointer %d out of range [0, %d)", s.ReadPointer, cfg.Capacity)
	}
	if (s.ReadPointer+s.Occupancy)%cfg.Capacity != s.WritePointer {
		return errors.Errorf("pointer distance mismatch: rp=%d wp=%d occupancy=%d", s.ReadPointer, s.WritePointer, s.Occupancy)
	}
	return nil
}

// An Option configures a Controller.
//
type Option func(c *Controller)

// WithStorage replaces the default RAM with s. s must hold at least
// Capacity words.
//
func WithStorage(s Storage) Option {
	return func(c *Controller) { c.mem = s }
}

// Controller is a synchronous FIFO controller.
//
type Controller struct {
	cfg   Config
	mask  uint64
	mem   Storage
	st    State
	out   Outputs
	ticks uint64
}

// New returns a new Controller in its reset state.
//
func New(cfg Config, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid FIFO configuration")
	}
	c := &Controller{cfg: cfg, mask: cfg.DataMask()}
	for _, o := range opts {
		o(c)
	}
	if c.mem == nil {
		c.mem = NewRAM(cfg.Capacity)
	}
	c.out = c.outputs(c.mem.Q())
	return c, nil
}

func (c *Controller) next(ptr int) int {
	ptr++
	if ptr == c.cfg.Capacity {
		return 0
	}
	return ptr
}

func (c *Controller) outputs(rdata uint64) Outputs {
	return Outputs{
		ReadData:  rdata,
		Flags:     c.cfg.FlagsFor(c.st.Occupancy),
		Overflow:  c.st.Overflow,
		Underflow: c.st.Underflow,
		Count:     c.st.Occupancy,
	}
}

// Tick advances the controller by one clock edge and returns the outputs
// sampled after that edge.
//
// Admission is decided on the pre-edge occupancy (see Admit). An admitted
// write stores in.Data at the current write pointer, an admitted read issues a
// storage read at the current read pointer. Rejected requests never touch the
// storage or the pointers.
//
// The returned ReadData is the storage output before this edge, that is the
// word of a read admitted at the previous Tick.
//
// When in.Reset is set, the pointers, occupancy and pulses are cleared and all
// other requests are ignored.
//
func (c *Controller) Tick(in Inputs) Outputs {
	c.ticks++
	rdata := c.mem.Q()

	if in.Reset {
		c.st = State{}
		c.out = c.outputs(rdata)
		return c.out
	}

	d := Admit(c.st.Occupancy, c.cfg.Capacity, in.Write, in.Read)
	var cmd StorageCmd
	if d.Write {
		cmd.Write, cmd.WAddr, cmd.WData = true, c.st.WritePointer, in.Data&c.mask
		c.st.WritePointer = c.next(c.st.WritePointer)
	}
	if d.Read {
		cmd.Read, cmd.RAddr = true, c.st.ReadPointer
		c.st.ReadPointer = c.next(c.st.ReadPointer)
	}
	if cmd.Write || cmd.Read {
		c.mem.Clock(cmd)
	}
	c.st.Occupancy = d.Occupancy
	c.st.Overflow = d.Overflow
	c.st.Underflow = d.Underflow

	c.out = c.outputs(rdata)
	return c.out
}

// Outputs returns the outputs sampled after the last edge.
//
func (c *Controller) Outputs() Outputs { return c.out }

// State returns a copy of the register state.
//
func (c *Controller) State() State { return c.st }

// Config returns the controller configuration.
//
func (c *Controller) Config() Config { return c.cfg }

// Ticks returns the number of edges seen since creation.
//
func (c *Controller) Ticks() uint64 { return c.ticks }
