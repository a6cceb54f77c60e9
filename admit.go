// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package syncfifo

// Decision is the outcome of the admission rule for one clock edge.
//
type Decision struct {
	Write     bool // write admitted
	Read      bool // read admitted
	Overflow  bool // write requested while full
	Underflow bool // read requested while empty
	// Occupancy after the edge.
	Occupancy int
}

// Admit applies the FIFO admission rule to the pre-edge occupancy and the
// request lines.
//
// A write is admitted iff requested and the FIFO is not full, a read iff
// requested and the FIFO is not empty. Both decisions use the same pre-edge
// occupancy, so a simultaneous write and read at 0 < occupancy < capacity
// leaves the occupancy unchanged.
//
// Admit is the single source of truth for admission: both Controller and the
// verification harness's shadow model call it.
//
func Admit(occupancy, capacity int, write, read bool) Decision {
	d := Decision{
		Write:     write && occupancy < capacity,
		Read:      read && occupancy > 0,
		Occupancy: occupancy,
	}
	d.Overflow = write && !d.Write
	d.Underflow = read && !d.Read
	switch {
	case d.Write && !d.Read:
		d.Occupancy++
	case d.Read && !d.Write:
		d.Occupancy--
	}
	return d
}
