package syncfifo_test

import (
	"testing"

	"github.com/db47h/syncfifo"
)

func TestRAM(t *testing.T) {
	r := syncfifo.NewRAM(4)
	if r.Size() != 4 {
		t.Fatalf("size = %d", r.Size())
	}
	r.Clock(syncfifo.StorageCmd{Write: true, WAddr: 1, WData: 42})
	if r.Q() != 0 {
		t.Fatalf("write must not change Q, got %d", r.Q())
	}
	if r.Peek(1) != 42 {
		t.Fatalf("Peek(1) = %d", r.Peek(1))
	}
	// read before write on the same address
	r.Clock(syncfifo.StorageCmd{Write: true, WAddr: 1, WData: 43, Read: true, RAddr: 1})
	if r.Q() != 42 {
		t.Fatalf("expected old word 42, got %d", r.Q())
	}
	// Q holds until the next read
	r.Clock(syncfifo.StorageCmd{Write: true, WAddr: 2, WData: 7})
	if r.Q() != 42 {
		t.Fatalf("Q changed without a read: %d", r.Q())
	}
	r.Clock(syncfifo.StorageCmd{Read: true, RAddr: 1})
	if r.Q() != 43 {
		t.Fatalf("expected 43, got %d", r.Q())
	}
}
