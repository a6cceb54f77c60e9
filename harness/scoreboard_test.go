// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package harness_test

import (
	"testing"

	"github.com/db47h/syncfifo/harness"
)

func TestScoreboard(t *testing.T) {
	s := harness.NewScoreboard(2)
	if _, ok := s.Pop(); ok {
		t.Fatal("Pop on empty scoreboard succeeded")
	}
	// wrap around a few times, then grow past the initial size.
	next, want := uint64(0), uint64(0)
	for i := 0; i < 5; i++ {
		s.Push(next)
		next++
		s.Push(next)
		next++
		for j := 0; j < 2; j++ {
			v, ok := s.Pop()
			if !ok || v != want {
				t.Fatalf("Pop() = %d, %v, expected %d, true", v, ok, want)
			}
			want++
		}
	}
	s.Push(42)
	for i := uint64(0); i < 10; i++ {
		s.Push(i)
	}
	if s.Len() != 11 {
		t.Fatalf("Len() = %d, expected 11", s.Len())
	}
	if v, _ := s.Pop(); v != 42 {
		t.Fatalf("Pop() = %d, expected 42", v)
	}
	for i := uint64(0); i < 10; i++ {
		if v, _ := s.Pop(); v != i {
			t.Fatalf("Pop() = %d, expected %d", v, i)
		}
	}
	s.Push(1)
	s.Clear()
	if s.Len() != 0 {
		t.Fatalf("Len() = %d after Clear", s.Len())
	}
}
