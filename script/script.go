// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package script loads harness scenarios written in Lua.
//
// A script is run once, at load time. Its calls to the functions below append
// directives to the scenario; they do not drive a FIFO directly.
//
//	reset()                 reset sequence
//	assert_reset()          single reset tick
//	write(v)                write request
//	read()                  read request
//	write_read(v)           simultaneous write and read
//	idle([n])               n idle ticks (default 1)
//	write_burst(n, [start]) n writes of start, start+1, ...
//	read_burst(n)           n reads
//	write_random(n)         n writes of random values
//	random_mix(n, [odds])   n random ticks, reset about every odds ticks
//	flush()                 complete a pending read data compare
//	expect_flag(name, b)    check a status flag
//	expect_count(n)         check the word count
//	auto_check(b)           check against the reference model every tick
//
// Values are Lua numbers or strings parsed with Go integer literal syntax
// ("0xffffffffffffffff"), for values that do not fit in a float64 mantissa.
//
// The globals CAPACITY, DATA_WIDTH, ALMOST_FULL_OFFSET and
// ALMOST_EMPTY_OFFSET hold the configuration of the FIFO under test.
//
package script

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/db47h/syncfifo"
	"github.com/db47h/syncfifo/harness"
	"github.com/pkg/errors"
	lua "github.com/yuin/gopher-lua"
)

// Load runs the Lua script src and returns the scenario it describes. The
// scenario is named after name.
//
func Load(name, src string, cfg syncfifo.Config) (harness.Scenario, error) {
	L := lua.NewState()
	defer L.Close()

	b := harness.NewScenario(name)
	register(L, b, cfg)

	fn, err := L.Load(strings.NewReader(src), name)
	if err != nil {
		return harness.Scenario{}, errors.Wrap(err, name)
	}
	L.Push(fn)
	if err = L.PCall(0, 0, nil); err != nil {
		return harness.Scenario{}, errors.Wrap(err, name)
	}
	return b.Build(), nil
}

// LoadFile loads the script in the named file. The scenario name is the base
// name of the file without its extension.
//
func LoadFile(path string, cfg syncfifo.Config) (harness.Scenario, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return harness.Scenario{}, errors.Wrap(err, "load script")
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Load(name, string(src), cfg)
}

func register(L *lua.LState, b *harness.Builder, cfg syncfifo.Config) {
	L.SetGlobal("CAPACITY", lua.LNumber(cfg.Capacity))
	L.SetGlobal("DATA_WIDTH", lua.LNumber(cfg.DataWidth))
	L.SetGlobal("ALMOST_FULL_OFFSET", lua.LNumber(cfg.AlmostFullOffset))
	L.SetGlobal("ALMOST_EMPTY_OFFSET", lua.LNumber(cfg.AlmostEmptyOffset))

	fns := map[string]lua.LGFunction{
		"reset":        func(L *lua.LState) int { b.Reset(); return 0 },
		"assert_reset": func(L *lua.LState) int { b.AssertReset(); return 0 },
		"write":        func(L *lua.LState) int { b.Write(checkValue(L, 1)); return 0 },
		"read":         func(L *lua.LState) int { b.Read(); return 0 },
		"write_read":   func(L *lua.LState) int { b.WriteRead(checkValue(L, 1)); return 0 },
		"idle":         func(L *lua.LState) int { b.Idle(optCount(L, 1, 1)); return 0 },
		"write_burst": func(L *lua.LState) int {
			n := checkCount(L, 1)
			var start uint64
			if L.GetTop() >= 2 {
				start = checkValue(L, 2)
			}
			b.WriteBurst(n, start)
			return 0
		},
		"read_burst":   func(L *lua.LState) int { b.ReadBurst(checkCount(L, 1)); return 0 },
		"write_random": func(L *lua.LState) int { b.WriteRandom(checkCount(L, 1)); return 0 },
		"random_mix": func(L *lua.LState) int {
			b.RandomMix(checkCount(L, 1), optCount(L, 2, 0))
			return 0
		},
		"flush": func(L *lua.LState) int { b.Flush(); return 0 },
		"expect_flag": func(L *lua.LState) int {
			name := L.CheckString(1)
			if !isSignal(name) {
				L.ArgError(1, "unknown signal "+strconv.Quote(name))
			}
			b.ExpectFlag(name, L.CheckBool(2))
			return 0
		},
		"expect_count": func(L *lua.LState) int { b.ExpectCount(checkCount(L, 1)); return 0 },
		"auto_check":   func(L *lua.LState) int { b.AutoCheck(L.CheckBool(1)); return 0 },
	}
	for name, fn := range fns {
		L.SetGlobal(name, L.NewFunction(fn))
	}
}

func isSignal(name string) bool {
	for _, n := range syncfifo.SignalNames {
		if n == name {
			return true
		}
	}
	return false
}

func checkValue(L *lua.LState, n int) uint64 {
	switch v := L.CheckAny(n).(type) {
	case lua.LNumber:
		if v < 0 {
			return uint64(int64(v))
		}
		return uint64(v)
	case lua.LString:
		x, err := strconv.ParseUint(string(v), 0, 64)
		if err != nil {
			L.ArgError(n, "invalid value "+strconv.Quote(string(v)))
		}
		return x
	default:
		L.TypeError(n, lua.LTNumber)
	}
	return 0
}

func checkCount(L *lua.LState, n int) int {
	v := L.CheckInt(n)
	if v < 0 {
		L.ArgError(n, "negative count")
	}
	return v
}

func optCount(L *lua.LState, n, def int) int {
	if L.GetTop() < n {
		return def
	}
	return checkCount(L, n)
}
