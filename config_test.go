package syncfifo_test

import (
	"testing"
	"testing/quick"

	"github.com/db47h/syncfifo"
)

func TestConfig_Validate(t *testing.T) {
	data := []struct {
		name string
		cfg  syncfifo.Config
		err  string
	}{
		{"default", syncfifo.DefaultConfig(), ""},
		{"width0", syncfifo.Config{DataWidth: 0, Capacity: 4}, "data width 0 out of range [1, 64]"},
		{"width65", syncfifo.Config{DataWidth: 65, Capacity: 4}, "data width 65 out of range [1, 64]"},
		{"width64", syncfifo.Config{DataWidth: 64, Capacity: 4}, ""},
		{"cap0", syncfifo.Config{DataWidth: 8, Capacity: 0}, "invalid capacity 0"},
		{"cap1", syncfifo.Config{DataWidth: 8, Capacity: 1}, ""},
		{"cap5", syncfifo.Config{DataWidth: 8, Capacity: 5, AlmostFullOffset: 4, AlmostEmptyOffset: 4}, ""},
		{"af_neg", syncfifo.Config{DataWidth: 8, Capacity: 4, AlmostFullOffset: -1}, "almost full offset -1 out of range [0, 4)"},
		{"af_cap", syncfifo.Config{DataWidth: 8, Capacity: 4, AlmostFullOffset: 4}, "almost full offset 4 out of range [0, 4)"},
		{"ae_cap", syncfifo.Config{DataWidth: 8, Capacity: 4, AlmostEmptyOffset: 4}, "almost empty offset 4 out of range [0, 4)"},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			err := d.cfg.Validate()
			if err == nil && d.err != "" || err != nil && err.Error() != d.err {
				t.Errorf("Got error %q, expected %q", err, d.err)
			}
		})
	}
}

func TestConfig_widths(t *testing.T) {
	data := []struct {
		capacity    int
		addr, count uint
	}{
		{1, 0, 1},
		{2, 1, 2},
		{3, 2, 3},
		{4, 2, 3},
		{5, 3, 4},
		{16, 4, 5},
		{17, 5, 6},
		{1024, 10, 11},
	}
	for _, d := range data {
		cfg := syncfifo.Config{DataWidth: 8, Capacity: d.capacity}
		if a, c := cfg.AddrWidth(), cfg.CountWidth(); a != d.addr || c != d.count {
			t.Errorf("capacity %d: got addr/count widths %d/%d, expected %d/%d", d.capacity, a, c, d.addr, d.count)
		}
		// the counter must be able to hold Capacity
		if uint64(d.capacity) >= 1<<cfg.CountWidth() {
			t.Errorf("capacity %d does not fit in %d bits", d.capacity, cfg.CountWidth())
		}
	}
}

func TestConfig_DataMask(t *testing.T) {
	for _, d := range []struct {
		w    uint
		mask uint64
	}{{1, 1}, {8, 0xff}, {12, 0xfff}, {63, 1<<63 - 1}, {64, ^uint64(0)}} {
		if m := (syncfifo.Config{DataWidth: d.w}).DataMask(); m != d.mask {
			t.Errorf("width %d: got mask %x, expected %x", d.w, m, d.mask)
		}
	}
}

func TestConfig_FlagsFor(t *testing.T) {
	f := func(capacity, af, ae, count uint8) bool {
		cfg := syncfifo.Config{DataWidth: 8, Capacity: int(capacity%64) + 1}
		cfg.AlmostFullOffset = int(af) % cfg.Capacity
		cfg.AlmostEmptyOffset = int(ae) % cfg.Capacity
		n := int(count) % (cfg.Capacity + 1)
		fl := cfg.FlagsFor(n)
		if fl.Empty != (n == 0) || fl.Full != (n == cfg.Capacity) {
			return false
		}
		if fl.AlmostEmpty != (n > 0 && n <= cfg.AlmostEmptyOffset) {
			return false
		}
		if fl.AlmostFull != (n >= cfg.Capacity-cfg.AlmostFullOffset && n < cfg.Capacity) {
			return false
		}
		// never both full and almost full, or empty and almost empty
		return !(fl.Full && fl.AlmostFull) && !(fl.Empty && fl.AlmostEmpty)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestConfig_FlagsFor_thresholds(t *testing.T) {
	cfg := syncfifo.DefaultConfig() // 16 words, offsets 2
	for n := 0; n <= cfg.Capacity; n++ {
		fl := cfg.FlagsFor(n)
		wantAE := n == 1 || n == 2
		wantAF := n == 14 || n == 15
		if fl.AlmostEmpty != wantAE || fl.AlmostFull != wantAF {
			t.Errorf("count %d: almost_empty=%v almost_full=%v, expected %v %v", n, fl.AlmostEmpty, fl.AlmostFull, wantAE, wantAF)
		}
	}
}
