// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package harness

// Scoreboard is the expectation queue of the harness: the values of admitted
// writes, oldest first.
//
type Scoreboard struct {
	nodes []uint64
	head  int
	tail  int
	count int
}

// NewScoreboard returns a scoreboard with room for size values. It grows as
// needed.
//
func NewScoreboard(size int) *Scoreboard {
	if size < 1 {
		size = 1
	}
	return &Scoreboard{nodes: make([]uint64, size)}
}

// Len returns the number of pending expectations.
//
func (s *Scoreboard) Len() int { return s.count }

// Push appends v.
//
func (s *Scoreboard) Push(v uint64) {
	if s.count == len(s.nodes) {
		nodes := make([]uint64, 2*len(s.nodes))
		n := copy(nodes, s.nodes[s.head:])
		copy(nodes[n:], s.nodes[:s.head])
		s.head = 0
		s.tail = s.count
		s.nodes = nodes
	}
	s.nodes[s.tail] = v
	s.tail = (s.tail + 1) % len(s.nodes)
	s.count++
}

// Pop removes and returns the oldest value. ok is false if the scoreboard is
// empty.
//
func (s *Scoreboard) Pop() (v uint64, ok bool) {
	if s.count == 0 {
		return 0, false
	}
	v = s.nodes[s.head]
	s.head = (s.head + 1) % len(s.nodes)
	s.count--
	return v, true
}

// Clear drops all pending expectations.
//
func (s *Scoreboard) Clear() {
	s.head, s.tail, s.count = 0, 0, 0
}
