package syncfifo_test

import (
	"testing"
	"testing/quick"

	"github.com/db47h/syncfifo"
)

func TestAdmit(t *testing.T) {
	const capacity = 4
	for occ := 0; occ <= capacity; occ++ {
		for _, wr := range []bool{false, true} {
			for _, rd := range []bool{false, true} {
				d := syncfifo.Admit(occ, capacity, wr, rd)
				if d.Write != (wr && occ < capacity) {
					t.Errorf("occ=%d wr=%v rd=%v: write admitted=%v", occ, wr, rd, d.Write)
				}
				if d.Read != (rd && occ > 0) {
					t.Errorf("occ=%d wr=%v rd=%v: read admitted=%v", occ, wr, rd, d.Read)
				}
				if d.Overflow != (wr && occ == capacity) {
					t.Errorf("occ=%d wr=%v rd=%v: overflow=%v", occ, wr, rd, d.Overflow)
				}
				if d.Underflow != (rd && occ == 0) {
					t.Errorf("occ=%d wr=%v rd=%v: underflow=%v", occ, wr, rd, d.Underflow)
				}
				exp := occ
				if d.Write {
					exp++
				}
				if d.Read {
					exp--
				}
				if d.Occupancy != exp {
					t.Errorf("occ=%d wr=%v rd=%v: occupancy %d, expected %d", occ, wr, rd, d.Occupancy, exp)
				}
			}
		}
	}
}

func TestAdmit_full_simultaneous(t *testing.T) {
	// full: the write is rejected, the read goes through.
	d := syncfifo.Admit(8, 8, true, true)
	if d.Write || !d.Read || !d.Overflow || d.Underflow || d.Occupancy != 7 {
		t.Fatalf("unexpected decision when full: %+v", d)
	}
	// empty: the read is rejected, the write goes through.
	d = syncfifo.Admit(0, 8, true, true)
	if !d.Write || d.Read || d.Overflow || !d.Underflow || d.Occupancy != 1 {
		t.Fatalf("unexpected decision when empty: %+v", d)
	}
}

func TestAdmit_bounds(t *testing.T) {
	f := func(c, o uint16, wr, rd bool) bool {
		capacity := int(c%1024) + 1
		occ := int(o) % (capacity + 1)
		d := syncfifo.Admit(occ, capacity, wr, rd)
		if d.Occupancy < 0 || d.Occupancy > capacity {
			return false
		}
		if d.Write && d.Read {
			return d.Occupancy == occ
		}
		return true
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}
