// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package harness

import "github.com/db47h/syncfifo"

const (
	sFull        = syncfifo.SigFull
	sEmpty       = syncfifo.SigEmpty
	sAlmostFull  = syncfifo.SigAlmostFull
	sAlmostEmpty = syncfifo.SigAlmostEmpty
	sOverflow    = syncfifo.SigOverflow
	sUnderflow   = syncfifo.SigUnderflow
)

// DefaultRandomTicks is the default length of the "random" built-in scenario.
//
const DefaultRandomTicks = 10000

// Builtins returns the directed and randomized scenarios for a FIFO with the
// given configuration. randomTicks is the length of the "random" scenario; if
// <= 0, DefaultRandomTicks is used.
//
// Scenarios that cannot be expressed for the given capacity are omitted.
//
func Builtins(cfg syncfifo.Config, randomTicks int) []Scenario {
	if randomTicks <= 0 {
		randomTicks = DefaultRandomTicks
	}
	ss := []Scenario{
		resetScenario(cfg),
		fillDrain(cfg),
	}
	if cfg.Capacity > 1 {
		ss = append(ss, simultaneous(cfg))
	}
	ss = append(ss,
		resetMid(cfg),
		roundTrip(cfg),
		thresholds(cfg),
		bursts(cfg),
		NewScenario("random").AutoCheck(true).RandomMix(randomTicks, 97).Build(),
	)
	return ss
}

func resetScenario(cfg syncfifo.Config) Scenario {
	n := cfg.Capacity
	return NewScenario("reset").
		ExpectCount(0).
		ExpectFlag(sEmpty, true).
		ExpectFlag(sFull, false).
		ExpectFlag(sOverflow, false).
		ExpectFlag(sUnderflow, false).
		// reset from full with a pending overflow pulse
		WriteBurst(n, 0).
		Write(0).
		ExpectFlag(sOverflow, true).
		AssertReset().
		ExpectCount(0).
		ExpectFlag(sEmpty, true).
		ExpectFlag(sFull, false).
		ExpectFlag(sOverflow, false).
		// and from empty with a pending underflow pulse
		Read().
		ExpectFlag(sUnderflow, true).
		Reset().
		ExpectCount(0).
		ExpectFlag(sUnderflow, false).
		Build()
}

// write capacity values, overflow, drain, underflow.
func fillDrain(cfg syncfifo.Config) Scenario {
	n := cfg.Capacity
	return NewScenario("fill_drain").
		WriteBurst(n, 1).
		ExpectFlag(sFull, true).
		ExpectFlag(sOverflow, false).
		ExpectCount(n).
		Write(0).
		ExpectFlag(sOverflow, true).
		ExpectFlag(sFull, true).
		ExpectCount(n).
		Read().
		ExpectFlag(sOverflow, false).
		ReadBurst(n-1).
		ExpectFlag(sEmpty, true).
		ExpectFlag(sUnderflow, false).
		ExpectCount(0).
		Read().
		ExpectFlag(sUnderflow, true).
		ExpectCount(0).
		Idle(1).
		ExpectFlag(sUnderflow, false).
		Build()
}

// simultaneous write and read never change the word count.
func simultaneous(cfg syncfifo.Config) Scenario {
	k := 4
	if k >= cfg.Capacity {
		k = cfg.Capacity - 1
	}
	b := NewScenario("simultaneous").WriteBurst(k, 0).ExpectCount(k)
	for i := 0; i < 8; i++ {
		b.WriteRead(100 + uint64(i)).ExpectCount(k)
	}
	return b.ReadBurst(k).
		ExpectFlag(sEmpty, true).
		Build()
}

func resetMid(cfg syncfifo.Config) Scenario {
	k := 8
	if k > cfg.Capacity {
		k = cfg.Capacity
	}
	m := 2
	if m > cfg.Capacity {
		m = cfg.Capacity
	}
	return NewScenario("reset_mid").
		WriteBurst(k, 0x10).
		ExpectCount(k).
		AssertReset().
		ExpectCount(0).
		ExpectFlag(sEmpty, true).
		ExpectFlag(sFull, false).
		Idle(1).
		ExpectCount(0).
		ExpectFlag(sEmpty, true).
		// the pointers start over
		WriteBurst(m, 0x20).
		ReadBurst(m).
		Flush().
		ExpectFlag(sEmpty, true).
		Build()
}

func roundTrip(cfg syncfifo.Config) Scenario {
	b := NewScenario("round_trip")
	for _, n := range []int{1, cfg.Capacity / 2, cfg.Capacity} {
		if n == 0 {
			continue
		}
		b.WriteRandom(n).
			ExpectCount(n).
			ReadBurst(n).
			Flush().
			ExpectFlag(sEmpty, true)
	}
	return b.Build()
}

func thresholds(cfg syncfifo.Config) Scenario {
	b := NewScenario("thresholds")
	check := func(k int) {
		f := cfg.FlagsFor(k)
		b.ExpectCount(k).
			ExpectFlag(sAlmostFull, f.AlmostFull).
			ExpectFlag(sAlmostEmpty, f.AlmostEmpty).
			ExpectFlag(sFull, f.Full).
			ExpectFlag(sEmpty, f.Empty)
	}
	for k := 1; k <= cfg.Capacity; k++ {
		b.Write(uint64(k))
		check(k)
	}
	for k := cfg.Capacity - 1; k >= 0; k-- {
		b.Read()
		check(k)
	}
	return b.Build()
}

// back to back bursts running into overflow and underflow.
func bursts(cfg syncfifo.Config) Scenario {
	b := NewScenario("bursts").AutoCheck(true)
	for i := 0; i < 4; i++ {
		b.WriteRandom(cfg.Capacity + 1).
			ReadBurst(cfg.Capacity + 1)
	}
	return b.Build()
}
