// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package script_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/db47h/syncfifo"
	"github.com/db47h/syncfifo/harness"
	"github.com/db47h/syncfifo/script"
	"github.com/stretchr/testify/require"
)

const fillDrain = `
write_burst(CAPACITY, 1)
expect_flag("full", true)
expect_count(CAPACITY)
write(0)
expect_flag("overflow", true)
for i = 1, CAPACITY do
	read()
	expect_count(CAPACITY - i)
end
expect_flag("empty", true)
read()
expect_flag("underflow", true)
idle()
expect_flag("underflow", false)
`

func run(t *testing.T, cfg syncfifo.Config, s harness.Scenario) *harness.RunReport {
	t.Helper()
	c, err := syncfifo.New(cfg)
	require.NoError(t, err)
	h, err := harness.New(c, cfg)
	require.NoError(t, err)
	return h.Run(s)
}

func TestLoad(t *testing.T) {
	cfg := syncfifo.DefaultConfig()
	s, err := script.Load("fill_drain", fillDrain, cfg)
	require.NoError(t, err)
	require.Equal(t, "fill_drain", s.Name)
	require.False(t, s.AutoCheck)
	require.Equal(t, harness.Directive{Op: harness.OpWriteBurst, N: cfg.Capacity, Data: 1}, s.Directives[0])
	// 5 + 2 per read + 5
	require.Len(t, s.Directives, 10+2*cfg.Capacity)

	r := run(t, cfg, s)
	require.True(t, r.Passed(), "%v %v", r, r.Entries)
	require.Equal(t, 3+cfg.Capacity+1+cfg.Capacity+1+1, int(r.Ticks))
}

func TestLoad_values(t *testing.T) {
	cfg := syncfifo.Config{DataWidth: 64, Capacity: 4}
	s, err := script.Load("values", `
		auto_check(true)
		write("0xffffffffffffffff")
		write(-1)
		write_read(42)
		write_burst(2)
		random_mix(10, 3)
		idle(0)
	`, cfg)
	require.NoError(t, err)
	require.True(t, s.AutoCheck)
	require.Equal(t, []harness.Directive{
		{Op: harness.OpWrite, Data: 1<<64 - 1},
		{Op: harness.OpWrite, Data: 1<<64 - 1},
		{Op: harness.OpWriteRead, Data: 42},
		{Op: harness.OpWriteBurst, N: 2},
		{Op: harness.OpRandomMix, N: 10, Data: 3},
		{Op: harness.OpIdle},
	}, s.Directives)
	r := run(t, cfg, s)
	require.True(t, r.Passed(), "%v %v", r, r.Entries)
}

func TestLoad_errors(t *testing.T) {
	cfg := syncfifo.DefaultConfig()
	td := []struct {
		name, src, err string
	}{
		{"syntax", "write(", "syntax"},
		{"signal", `expect_flag("fool", true)`, `unknown signal "fool"`},
		{"count", "read_burst(-1)", "negative count"},
		{"value", `write("zz")`, `invalid value "zz"`},
		{"type", "write({})", "number expected"},
		{"runtime", `error("boom")`, "boom"},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			_, err := script.Load(d.name, d.src, cfg)
			require.Error(t, err)
			require.True(t, strings.HasPrefix(err.Error(), d.name+": "), err.Error())
			require.Contains(t, err.Error(), d.err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	cfg := syncfifo.Config{DataWidth: 4, Capacity: 3, AlmostFullOffset: 1, AlmostEmptyOffset: 1}
	path := filepath.Join(t.TempDir(), "thresholds.lua")
	src := `
for k = 1, CAPACITY do
	write(k)
	expect_flag("almost_full", k >= CAPACITY - ALMOST_FULL_OFFSET and k < CAPACITY)
	expect_flag("almost_empty", k <= ALMOST_EMPTY_OFFSET)
end
read_burst(CAPACITY)
flush()
expect_count(0)
expect_flag("empty", DATA_WIDTH == 4)
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	s, err := script.LoadFile(path, cfg)
	require.NoError(t, err)
	require.Equal(t, "thresholds", s.Name)
	r := run(t, cfg, s)
	require.True(t, r.Passed(), "%v %v", r, r.Entries)

	_, err = script.LoadFile(filepath.Join(t.TempDir(), "missing.lua"), cfg)
	require.Error(t, err)
	require.True(t, strings.HasPrefix(err.Error(), "load script: "), err.Error())
}
