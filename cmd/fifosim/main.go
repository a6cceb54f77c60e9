// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command fifosim runs verification scenarios against a synchronous FIFO.
//
// Usage:
//
//	fifosim [flags] [script.lua ...]
//
// Without -run, all built-in scenarios and the given Lua scripts are run.
// The exit status is 1 if any scenario fails, 2 on usage or setup errors.
//
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"regexp"

	"github.com/db47h/syncfifo"
	"github.com/db47h/syncfifo/harness"
	"github.com/db47h/syncfifo/hwlib"
	"github.com/db47h/syncfifo/script"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

const (
	colorRed   = "\x1b[31m"
	colorGreen = "\x1b[32m"
	colorReset = "\x1b[0m"
)

type options struct {
	cfg      syncfifo.Config
	seed     int64
	ticks    int
	parallel int
	run      string
	circuit  bool
	logFmt   string
	verbose  bool
	scripts  []string
}

func main() {
	var o options
	def := syncfifo.DefaultConfig()
	flag.UintVar(&o.cfg.DataWidth, "width", def.DataWidth, "data width in bits")
	flag.IntVar(&o.cfg.Capacity, "capacity", def.Capacity, "FIFO capacity in words")
	flag.IntVar(&o.cfg.AlmostFullOffset, "af", def.AlmostFullOffset, "almost full offset")
	flag.IntVar(&o.cfg.AlmostEmptyOffset, "ae", def.AlmostEmptyOffset, "almost empty offset")
	flag.Int64Var(&o.seed, "seed", 1, "random stimulus seed")
	flag.IntVar(&o.ticks, "ticks", harness.DefaultRandomTicks, "length of the random scenario")
	flag.IntVar(&o.parallel, "parallel", 4, "maximum number of scenarios run concurrently")
	flag.StringVar(&o.run, "run", "", "run only scenarios matching this regular expression")
	flag.BoolVar(&o.circuit, "circuit", false, "run against the circuit simulation of the FIFO")
	flag.StringVar(&o.logFmt, "log", "text", "log format: text or json")
	flag.BoolVar(&o.verbose, "v", false, "log every tick")
	flag.Parse()
	o.scripts = flag.Args()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ok, err := run(ctx, &o, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fifosim:", err)
		os.Exit(2)
	}
	if !ok {
		os.Exit(1)
	}
}

func newLogger(w io.Writer, format string, verbose bool) (*slog.Logger, error) {
	hopts := &slog.HandlerOptions{Level: slog.LevelWarn}
	if verbose {
		hopts.Level = slog.LevelDebug
	}
	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(w, hopts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, hopts)), nil
	}
	return nil, errors.Errorf("unknown log format %q", format)
}

func circuitFactory(cfg syncfifo.Config) (syncfifo.Ticker, func(), error) {
	f, err := hwlib.NewFIFOCircuit(cfg, 0)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Dispose, nil
}

func scenarios(o *options) ([]harness.Scenario, error) {
	var re *regexp.Regexp
	if o.run != "" {
		var err error
		if re, err = regexp.Compile(o.run); err != nil {
			return nil, errors.Wrap(err, "-run")
		}
	}
	all := harness.Builtins(o.cfg, o.ticks)
	for _, path := range o.scripts {
		s, err := script.LoadFile(path, o.cfg)
		if err != nil {
			return nil, err
		}
		all = append(all, s)
	}
	if re == nil {
		return all, nil
	}
	var ss []harness.Scenario
	for _, s := range all {
		if re.MatchString(s.Name) {
			ss = append(ss, s)
		}
	}
	return ss, nil
}

// run runs the selected scenarios and prints the reports to stdout. It
// returns false if any scenario failed.
//
func run(ctx context.Context, o *options, stdout, stderr *os.File) (bool, error) {
	if err := o.cfg.Validate(); err != nil {
		return false, err
	}
	log, err := newLogger(stderr, o.logFmt, o.verbose)
	if err != nil {
		return false, err
	}
	ss, err := scenarios(o)
	if err != nil {
		return false, err
	}
	newDUT := harness.ControllerFactory
	if o.circuit {
		newDUT = circuitFactory
	}
	log.Info("running", "scenarios", len(ss), "config", fmt.Sprintf("%+v", o.cfg), "circuit", o.circuit)

	reports, err := harness.RunAll(ctx, o.cfg, ss, newDUT, o.parallel,
		harness.WithLogger(log), harness.WithSeed(o.seed))

	color := term.IsTerminal(int(stdout.Fd()))
	failed := 0
	for _, r := range reports {
		if r == nil {
			continue
		}
		status := r.String()
		if !r.Passed() {
			failed++
		}
		if color {
			c := colorGreen
			if !r.Passed() {
				c = colorRed
			}
			status = c + status + colorReset
		}
		fmt.Fprintln(stdout, status)
		for _, f := range r.Entries {
			fmt.Fprintln(stdout, "    "+f.String())
		}
	}
	if err != nil {
		return false, err
	}
	fmt.Fprintf(stdout, "%d scenarios, %d failed\n", len(reports), failed)
	return failed == 0, nil
}
