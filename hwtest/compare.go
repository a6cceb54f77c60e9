// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwtest provides utility functions for testing FIFO implementations.
//
package hwtest

import (
	"math/rand"
	"testing"
	"time"

	"github.com/db47h/syncfifo"
)

// RandomInputs returns random FIFO inputs. Reset is asserted with a
// probability of 1/resetOdds, never if resetOdds <= 0.
//
func RandomInputs(rnd *rand.Rand, cfg syncfifo.Config, resetOdds int) syncfifo.Inputs {
	return syncfifo.Inputs{
		Reset: resetOdds > 0 && rnd.Intn(resetOdds) == 0,
		Write: rnd.Int63()&(1<<62) != 0,
		Read:  rnd.Int63()&(1<<62) != 0,
		Data:  rnd.Uint64() & cfg.DataMask(),
	}
}

// CompareTickers drives two FIFO implementations with the same random inputs
// for the given number of ticks and fails the test on the first tick where
// their outputs differ.
//
func CompareTickers(t *testing.T, cfg syncfifo.Config, ticks int, a, b syncfifo.Ticker) {
	t.Helper()

	seed := time.Now().UnixNano()
	rnd := rand.New(rand.NewSource(seed))

	start := time.Now()
	for i := 0; i < ticks; i++ {
		in := RandomInputs(rnd, cfg, 64)
		oa, ob := a.Tick(in), b.Tick(in)
		if oa != ob {
			t.Fatalf("seed %d, tick %d, inputs %+v:\nExpected %v\nGot      %v", seed, i, in, oa, ob)
		}
	}
	elapsed := time.Since(start)
	t.Logf("%d ticks in %v => %.2f Hz", ticks, elapsed, float64(ticks)/(float64(elapsed)/float64(time.Second)))
}
