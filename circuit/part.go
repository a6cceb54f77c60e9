// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package circuit

import (
	"strconv"

	"github.com/db47h/syncfifo/internal/hdl"
	"github.com/pkg/errors"
)

// A MountFn mounts a part into socket s. MountFn's should query
// the socket for assigned pin numbers and return closures around
// these pin numbers.
//
// For example, a Not gate can be defined like this:
//
//	not := &PartSpec{
//		Name: "Not",
//		Inputs: IO("in"),
//		Outputs: IO("out"),
//		Mount: func (s *Socket) []Component {
//			in, out := s.Pin("in"), s.Pin("out")
//			return []Component{
//				func (c *Circuit) { c.Set(out, !c.Get(in)) }
//			}
//		}}
//
type MountFn func(s *Socket) []Component

// A PartSpec wraps a part specification (its blueprint).
//
type PartSpec struct {
	// Part name.
	Name string
	// Input pin names. Must be distinct pin names.
	// Use the IO() function to expand an input description like
	// "a, b, bus[2]" to []string{"a", "b", "bus[0]", "bus[1]"}
	Inputs []string
	// Output pin names. Must be distinct pin names.
	Outputs []string

	// Mount function (see MountFn).
	Mount MountFn
}

// NewPart is a NewPartFn that wraps p with the given connections into a Part.
// It panics if the connection string cannot be parsed.
//
func (p *PartSpec) NewPart(connections string) Part {
	cs, err := ParseConnections(connections)
	if err != nil {
		panic(err)
	}
	return Part{p, cs}
}

// A NewPartFn is a function that takes a connection configuration and returns a
// new Part. See ParseConnections for the syntax of the connection configuration
// string.
//
type NewPartFn func(c string) Part

// A Part wraps a part specification together with its connections within a
// circuit.
//
type Part struct {
	*PartSpec
	Conns []Connection
}

// Parts is a convenience wrapper for []Part.
//
type Parts []Part

// A Connection connects part pins (PP) to circuit wires (CW).
// Buses are expanded to individual pins. CW either has the same length as PP
// or is a single wire connected to every pin in PP. A PP holding a single bare
// bus name is expanded at mount time.
//
type Connection struct {
	PP []string
	CW []string
}

// BusPinName returns the name of pin i in bus.
//
func BusPinName(bus string, i int) string {
	return bus + "[" + strconv.Itoa(i) + "]"
}

// IO expands a pin specification string like "a, b, bus[2]" to individual pin
// names: []string{"a", "b", "bus[0]", "bus[1]"}. It panics on syntax errors.
//
func IO(spec string) []string {
	out, err := ParseIOSpec(spec)
	if err != nil {
		panic(err)
	}
	return out
}

// ParseIOSpec parses a pin specification string and returns individual pin
// names, expanding bus declarations.
//
func ParseIOSpec(spec string) ([]string, error) {
	var out []string
	p := &hdl.Parser{Input: spec}
	for {
		i, err := p.Next(false)
		if err != nil {
			return nil, err
		}
		switch v := i.(type) {
		case nil:
			return out, nil
		case hdl.Pin:
			out = append(out, v.Name)
		case hdl.PinIndex:
			for n := 0; n < v.Index; n++ {
				out = append(out, BusPinName(v.Name, n))
			}
		default:
			return nil, errors.Errorf("in %q: pin ranges not allowed in pin specifications", spec)
		}
	}
}

// ParseConnections parses a connection configuration like "partPinX=wireY, ..."
// into a []Connection.
//
//	Wire names can be:
//	- single pin names: a=x
//	- indexed bus pins: a[1]=x[2]
//	- bus ranges: a[0..3]=x[4..7]
//	- a bare bus name on the part side connects the whole bus: din=x maps
//	  din[i] to x[i]. The expansion happens when the part is mounted.
//
func ParseConnections(c string) ([]Connection, error) {
	var conns []Connection
	p := &hdl.Parser{Input: c}
	for {
		i, err := p.Next(true)
		if err != nil {
			return nil, err
		}
		if i == nil {
			return conns, nil
		}
		a, ok := i.(hdl.PinAssignment)
		if !ok {
			return nil, errors.Errorf("in %q: expected pin assignment", c)
		}
		pp, err := expandPin(a.LHS)
		if err != nil {
			return nil, errors.Wrap(err, c)
		}
		cw, err := expandPin(a.RHS)
		if err != nil {
			return nil, errors.Wrap(err, c)
		}
		// a single part pin may be a bare bus name, checked at mount time.
		if len(pp) != 1 && len(cw) != 1 && len(cw) != len(pp) {
			return nil, errors.Errorf("in %q: pin count mismatch %d:%d", c, len(pp), len(cw))
		}
		conns = append(conns, Connection{pp, cw})
	}
}

func expandPin(i interface{}) ([]string, error) {
	switch v := i.(type) {
	case hdl.Pin:
		return []string{v.Name}, nil
	case hdl.PinIndex:
		return []string{BusPinName(v.Name, v.Index)}, nil
	case hdl.PinRange:
		if v.End < v.Start {
			return nil, errors.Errorf("invalid bus range %s[%d..%d]", v.Name, v.Start, v.End)
		}
		r := make([]string, 0, v.End-v.Start+1)
		for n := v.Start; n <= v.End; n++ {
			r = append(r, BusPinName(v.Name, n))
		}
		return r, nil
	}
	panic("unexpected pin type")
}
