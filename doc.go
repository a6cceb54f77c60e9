// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package syncfifo models a fixed capacity, single clock domain FIFO controller
with hardware style status signaling.

A Controller owns the write pointer, read pointer and occupancy counter of the
FIFO. It is advanced one clock edge at a time by calling Tick with the request
lines sampled at that edge:

	c, err := syncfifo.New(syncfifo.DefaultConfig())
	if err != nil {
		// invalid configuration
	}
	out := c.Tick(syncfifo.Inputs{Write: true, Data: 0x42})
	// out.Count == 1, out.Empty == false

Overflow and underflow are not errors: a rejected request leaves the FIFO
untouched and raises a one tick pulse on the Outputs.

Storage has a one cycle read latency. The ReadData returned by Tick is the word
read at the previous edge.

The verification harness lives in package harness, circuit hosting in packages
circuit and hwlib.
*/
package syncfifo
