// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package harness

import (
	"context"

	"github.com/db47h/syncfifo"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// A Factory returns a new FIFO under test in its reset state and a function
// releasing its resources. release may be nil.
//
type Factory func(cfg syncfifo.Config) (dut syncfifo.Ticker, release func(), err error)

// ControllerFactory is a Factory for syncfifo.Controller.
//
func ControllerFactory(cfg syncfifo.Config) (syncfifo.Ticker, func(), error) {
	c, err := syncfifo.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	return c, nil, nil
}

// RunAll runs each scenario against its own FIFO obtained from newDUT, with
// at most parallel scenarios running concurrently (no limit if <= 0).
//
// Reports are returned in scenario order. A scenario that has started always
// runs to completion; once ctx is done, scenarios not yet started are skipped
// and ctx.Err() is returned.
//
func RunAll(ctx context.Context, cfg syncfifo.Config, scenarios []Scenario, newDUT Factory, parallel int, opts ...Option) ([]*RunReport, error) {
	reports := make([]*RunReport, len(scenarios))
	g, ctx := errgroup.WithContext(ctx)
	if parallel > 0 {
		g.SetLimit(parallel)
	}
	for i := range scenarios {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s := scenarios[i]
			dut, release, err := newDUT(cfg)
			if err != nil {
				return errors.Wrapf(err, "scenario %s", s.Name)
			}
			if release != nil {
				defer release()
			}
			h, err := New(dut, cfg, opts...)
			if err != nil {
				return err
			}
			reports[i] = h.Run(s)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return reports, err
	}
	return reports, nil
}
