package hwlib_test

import (
	"testing"

	"github.com/db47h/syncfifo"
	"github.com/db47h/syncfifo/circuit"
	hl "github.com/db47h/syncfifo/hwlib"
)

const testTPC = 8

func TestInputN(t *testing.T) {
	var in, out uint64
	c, err := circuit.NewCircuit(0, testTPC,
		hl.InputN(16, func() uint64 { return in })("out[0..15]= t[0..15]"),
		hl.OutputN(16, func(n uint64) { out = n })("in = t"),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	in = 0x80a2
	c.TickTock()
	if out != in {
		t.Fatalf("Expected %x, got %x", in, out)
	}
}

func TestFIFO_invalid(t *testing.T) {
	if _, err := hl.FIFO(syncfifo.Config{DataWidth: 8}); err == nil {
		t.Fatal("expected error")
	}
}

// Mount a FIFO part by hand and drive it directly with Tock/Tick. rst is left
// unconnected and must not hold the FIFO in reset.
func TestFIFO_part(t *testing.T) {
	cfg := syncfifo.Config{DataWidth: 4, Capacity: 2}
	fifo, err := hl.FIFO(cfg)
	if err != nil {
		t.Fatal(err)
	}
	var (
		wr, rd      bool
		din, dout   uint64
		count       uint64
		full, empty bool
		ovf         bool
	)
	c, err := circuit.NewCircuit(0, testTPC,
		hl.Input(func() bool { return wr })("out=we"),
		hl.Input(func() bool { return rd })("out=re"),
		hl.InputN(4, func() uint64 { return din })("out=d"),
		fifo("wr_en=we, rd_en=re, din=d, dout=q, count=n, full=full, empty=empty, overflow=ovf"),
		hl.OutputN(4, func(v uint64) { dout = v })("in=q"),
		hl.OutputN(int(cfg.CountWidth()), func(v uint64) { count = v })("in=n"),
		hl.Output(func(v bool) { full = v })("in=full"),
		hl.Output(func(v bool) { empty = v })("in=empty"),
		hl.Output(func(v bool) { ovf = v })("in=ovf"),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	c.Tick()
	if !empty || count != 0 {
		t.Fatalf("expected empty FIFO, got empty=%v count=%d", empty, count)
	}

	step := func() {
		c.Tock()
		c.Tick()
	}

	wr, din = true, 0x5
	step()
	din = 0xa
	step()
	if !full || count != 2 || ovf {
		t.Fatalf("expected full: full=%v count=%d overflow=%v", full, count, ovf)
	}
	step()
	if !ovf || count != 2 {
		t.Fatalf("expected overflow: overflow=%v count=%d", ovf, count)
	}
	wr, rd = false, true
	step()
	if ovf || count != 1 {
		t.Fatalf("overflow must clear: overflow=%v count=%d", ovf, count)
	}
	step()
	if dout != 0x5 || !empty {
		t.Fatalf("got dout=%x empty=%v, expected 5 true", dout, empty)
	}
	rd = false
	step()
	if dout != 0xa {
		t.Fatalf("got dout=%x, expected a", dout)
	}
}

func TestFIFOCircuit_reset(t *testing.T) {
	fc, err := hl.NewFIFOCircuit(syncfifo.DefaultConfig(), testTPC)
	if err != nil {
		t.Fatal(err)
	}
	defer fc.Dispose()
	for i := 0; i < 3; i++ {
		fc.Tick(syncfifo.Inputs{Write: true, Data: uint64(i)})
	}
	out := fc.Tick(syncfifo.Inputs{Reset: true, Write: true})
	if out.Count != 0 || !out.Empty {
		t.Fatalf("bad outputs after reset: %v", out)
	}
	if cyc := fc.Circuit().Cycles(); cyc != 5 {
		t.Fatalf("expected 5 clock cycles, got %d", cyc)
	}
}
