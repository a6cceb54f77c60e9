package hwtest_test

import (
	"testing"

	"github.com/db47h/syncfifo"
	"github.com/db47h/syncfifo/hwlib"
	"github.com/db47h/syncfifo/hwtest"
)

func TestCompareTickers(t *testing.T) {
	for _, cfg := range []syncfifo.Config{
		syncfifo.DefaultConfig(),
		{DataWidth: 3, Capacity: 5, AlmostFullOffset: 1, AlmostEmptyOffset: 3},
		{DataWidth: 1, Capacity: 1},
		{DataWidth: 64, Capacity: 4, AlmostFullOffset: 1, AlmostEmptyOffset: 1},
	} {
		cfg := cfg
		t.Run("", func(t *testing.T) {
			ref, err := syncfifo.New(cfg)
			if err != nil {
				t.Fatal(err)
			}
			fc, err := hwlib.NewFIFOCircuit(cfg, 4)
			if err != nil {
				t.Fatal(err)
			}
			defer fc.Dispose()
			hwtest.CompareTickers(t, cfg, 2000, ref, fc)
		})
	}
}
