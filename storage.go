// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package syncfifo

// StorageCmd is the set of storage port commands issued at a clock edge.
//
type StorageCmd struct {
	Write bool
	WAddr int
	WData uint64
	Read  bool
	RAddr int
}

// Storage is a word addressed memory with one synchronous write port and one
// synchronous read port.
//
// Clock applies the commands of one edge. Q returns the read port output
// register: the word read at the last edge that issued a read.
//
type Storage interface {
	Clock(cmd StorageCmd)
	Q() uint64
}

// RAM is the default Storage implementation.
//
// A read and a write issued at the same edge are resolved read-before-write:
// a read of the address being written returns the old word.
//
type RAM struct {
	mem []uint64
	q   uint64
}

// NewRAM returns a RAM of the given size in words.
//
func NewRAM(words int) *RAM {
	return &RAM{mem: make([]uint64, words)}
}

// Clock implements Storage.
//
func (r *RAM) Clock(cmd StorageCmd) {
	if cmd.Read {
		r.q = r.mem[cmd.RAddr]
	}
	if cmd.Write {
		r.mem[cmd.WAddr] = cmd.WData
	}
}

// Q implements Storage.
//
func (r *RAM) Q() uint64 { return r.q }

// Peek returns the word at addr without going through the read port.
//
func (r *RAM) Peek(addr int) uint64 { return r.mem[addr] }

// Size returns the size of the RAM in words.
//
func (r *RAM) Size() int { return len(r.mem) }
