// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package syncfifo

import (
	"math/bits"

	"github.com/pkg/errors"
)

// MaxDataWidth is the widest supported data word, in bits.
//
const MaxDataWidth = 64

// Config holds the construction time parameters of a FIFO. They are fixed for
// the life of a Controller.
//
type Config struct {
	// Word width in bits, in [1, MaxDataWidth].
	DataWidth uint
	// Number of words the FIFO can hold. Any positive value is accepted.
	Capacity int
	// AlmostFull is asserted when Capacity-AlmostFullOffset <= count < Capacity.
	AlmostFullOffset int
	// AlmostEmpty is asserted when 0 < count <= AlmostEmptyOffset.
	AlmostEmptyOffset int
}

// DefaultConfig returns an 8 bits wide, 16 words deep FIFO configuration with
// both threshold offsets set to 2.
//
func DefaultConfig() Config {
	return Config{
		DataWidth:         8,
		Capacity:          16,
		AlmostFullOffset:  2,
		AlmostEmptyOffset: 2,
	}
}

// Validate checks that all parameters are within range.
//
func (c Config) Validate() error {
	if c.DataWidth < 1 || c.DataWidth > MaxDataWidth {
		return errors.Errorf("data width %d out of range [1, %d]", c.DataWidth, MaxDataWidth)
	}
	if c.Capacity < 1 {
		return errors.Errorf("invalid capacity %d", c.Capacity)
	}
	if c.AlmostFullOffset < 0 || c.AlmostFullOffset >= c.Capacity {
		return errors.Errorf("almost full offset %d out of range [0, %d)", c.AlmostFullOffset, c.Capacity)
	}
	if c.AlmostEmptyOffset < 0 || c.AlmostEmptyOffset >= c.Capacity {
		return errors.Errorf("almost empty offset %d out of range [0, %d)", c.AlmostEmptyOffset, c.Capacity)
	}
	return nil
}

// AddrWidth returns the width of the read and write pointers: ceil(log2(Capacity)).
//
func (c Config) AddrWidth() uint {
	if c.Capacity <= 1 {
		return 0
	}
	return uint(bits.Len(uint(c.Capacity - 1)))
}

// CountWidth returns the width of the occupancy counter. It has one more bit
// than the pointers so that Capacity itself can be represented.
//
func (c Config) CountWidth() uint {
	return c.AddrWidth() + 1
}

// DataMask returns a mask of DataWidth ones.
//
func (c Config) DataMask() uint64 {
	if c.DataWidth >= 64 {
		return ^uint64(0)
	}
	return 1<<c.DataWidth - 1
}

// FlagsFor returns the status flags for the given occupancy.
//
func (c Config) FlagsFor(count int) Flags {
	return Flags{
		Full:        count == c.Capacity,
		Empty:       count == 0,
		AlmostFull:  c.Capacity-c.AlmostFullOffset <= count && count < c.Capacity,
		AlmostEmpty: 0 < count && count <= c.AlmostEmptyOffset,
	}
}
