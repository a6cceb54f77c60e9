// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package syncfifo

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Status signal names, as used on the FIFO part pins and by Outputs.Flag.
//
const (
	SigFull        = "full"
	SigEmpty       = "empty"
	SigAlmostFull  = "almost_full"
	SigAlmostEmpty = "almost_empty"
	SigOverflow    = "overflow"
	SigUnderflow   = "underflow"
)

// SignalNames lists the 1 bit status outputs of a FIFO.
//
var SignalNames = []string{SigFull, SigEmpty, SigAlmostFull, SigAlmostEmpty, SigOverflow, SigUnderflow}

// ErrUnknownSignal is returned by Outputs.Flag for names not in SignalNames.
//
var ErrUnknownSignal = errors.New("unknown signal")

// Inputs are the request lines sampled at a clock edge.
//
type Inputs struct {
	// Reset clears the FIFO. All other requests are ignored while it is set.
	Reset bool
	Write bool
	Data  uint64
	Read  bool
}

// Flags are the occupancy derived status flags.
//
type Flags struct {
	Full        bool
	Empty       bool
	AlmostFull  bool
	AlmostEmpty bool
}

// Outputs are the FIFO outputs sampled after a clock edge.
//
type Outputs struct {
	// ReadData is the storage output register. It only carries meaningful
	// data when a read was admitted at the previous edge.
	ReadData uint64
	Flags
	// Overflow and Underflow pulse for one tick following a rejected write or
	// read.
	Overflow  bool
	Underflow bool
	// Count is the current occupancy.
	Count int
}

// Flag returns the status signal with the given name.
//
func (o *Outputs) Flag(name string) (bool, error) {
	switch name {
	case SigFull:
		return o.Full, nil
	case SigEmpty:
		return o.Empty, nil
	case SigAlmostFull:
		return o.AlmostFull, nil
	case SigAlmostEmpty:
		return o.AlmostEmpty, nil
	case SigOverflow:
		return o.Overflow, nil
	case SigUnderflow:
		return o.Underflow, nil
	}
	return false, errors.Wrap(ErrUnknownSignal, name)
}

func (o Outputs) String() string {
	var b strings.Builder
	b.WriteString("count=")
	b.WriteString(strconv.Itoa(o.Count))
	for _, n := range SignalNames {
		if v, _ := o.Flag(n); v {
			b.WriteByte(' ')
			b.WriteString(n)
		}
	}
	b.WriteString(" rdata=0x")
	b.WriteString(strconv.FormatUint(o.ReadData, 16))
	return b.String()
}
