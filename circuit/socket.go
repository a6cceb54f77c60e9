// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package circuit

import "github.com/pkg/errors"

// Constant input pin names.
//
const (
	True  = "true"
	False = "false"
	GND   = "false"
	Clk   = "clk"
)

const (
	cstFalse = iota
	cstTrue
	cstClk
	cstCount
)

// A Socket maps a part's pin names to pin numbers in a circuit.
//
type Socket struct {
	m map[string]int
	c *Circuit
}

func newSocket(c *Circuit) *Socket {
	return &Socket{
		m: map[string]int{False: cstFalse, True: cstTrue, Clk: cstClk},
		c: c,
	}
}

// Pin returns the pin number allocated to the given pin name.
// This function panics if the pin does not exist.
//
func (s *Socket) Pin(name string) int {
	n, ok := s.m[name]
	if !ok {
		panic("pin " + name + " does not exist")
	}
	return n
}

// PinOrNew returns the pin number allocated to the given pin name.
// If no such pin exists a new one is allocated.
//
func (s *Socket) PinOrNew(name string) int {
	n, ok := s.m[name]
	if !ok {
		n = s.c.allocPin()
		s.m[name] = n
	}
	return n
}

// Bus returns the pin numbers allocated to the given bus name.
// This function panics if any pin of the bus does not exist.
//
func (s *Socket) Bus(name string, bits int) []int {
	out := make([]int, bits)
	for i := range out {
		out[i] = s.Pin(BusPinName(name, i))
	}
	return out
}

// mount wires part p into s, s being the socket of the circuit, and returns
// the part's components.
//
// Unconnected inputs are wired to False and unconnected outputs get their own
// dangling wire.
//
func (s *Socket) mount(p Part) ([]Component, error) {
	ins := make(map[string]bool, len(p.Inputs))
	for _, n := range p.Inputs {
		ins[n] = true
	}
	outs := make(map[string]bool, len(p.Outputs))
	for _, n := range p.Outputs {
		outs[n] = true
	}

	sub := newSocket(s.c)
	for _, cn := range p.Conns {
		pp, cw := cn.PP, cn.CW
		// bare bus name
		if len(pp) == 1 && !ins[pp[0]] && !outs[pp[0]] {
			if bus := busPins(pp[0], ins, outs); bus != nil {
				pp = bus
				if len(cw) == 1 && !isConst(cw[0]) {
					cw = make([]string, len(bus))
					for i := range cw {
						cw[i] = BusPinName(cn.CW[0], i)
					}
				}
			}
		}
		if len(cw) != 1 && len(cw) != len(pp) {
			return nil, errors.Errorf("pin count mismatch in %v=%v", pp, cw)
		}
		for i, n := range pp {
			w := cw[0]
			if len(cw) > 1 {
				w = cw[i]
			}
			switch {
			case ins[n]:
			case outs[n]:
				switch w {
				case False, True:
					return nil, errors.New("output pin " + n + " connected to constant " + w + " input")
				case Clk:
					return nil, errors.New("output pin " + n + " connected to clock signal")
				}
			default:
				return nil, errors.New("invalid pin name " + n + " for part " + p.Name)
			}
			if _, ok := sub.m[n]; ok {
				return nil, errors.New("pin " + n + " connected more than once")
			}
			sub.m[n] = s.PinOrNew(w)
		}
	}

	for _, n := range p.Inputs {
		if _, ok := sub.m[n]; !ok {
			sub.m[n] = cstFalse
		}
	}
	for _, n := range p.Outputs {
		if _, ok := sub.m[n]; !ok {
			sub.m[n] = s.c.allocPin()
		}
	}
	return p.Mount(sub), nil
}

// busPins returns the pins of bus name in the given pin sets, or nil if name
// is not a bus.
//
func busPins(name string, sets ...map[string]bool) []string {
	for _, set := range sets {
		var bus []string
		for i := 0; set[BusPinName(name, i)]; i++ {
			bus = append(bus, BusPinName(name, i))
		}
		if bus != nil {
			return bus
		}
	}
	return nil
}

func isConst(name string) bool {
	return name == False || name == True || name == Clk
}
