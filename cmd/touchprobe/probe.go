// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"context"
	"time"

	"touchutil.org/app/remote"
	"touchutil.org/gesture"
	"touchutil.org/io/input"
	"touchutil.org/io/mode"
)

// probe advances the feeds once per frame and logs the gesture.
type probe struct {
	local  input.Source
	remote *remote.Server
	// advance closes the frame of the local feed.
	advance func()
	quiet   bool

	last gesture.Phase
}

// loop polls at a fixed interval until ctx is done.
func (p *probe) loop(ctx context.Context, sel *mode.Selector, interval time.Duration) error {
	tr := p.newTracker(sel)
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
			p.frame(tr)
		}
	}
}

func (p *probe) frame(tr *gesture.Tracker) {
	p.advance()
	p.remote.Frame()
	p.report(tr.Poll())
}

func (p *probe) report(f gesture.Frame) {
	defer func() { p.last = f.Phase }()
	switch f.Phase {
	case gesture.Began, gesture.Ended, gesture.Canceled:
		logger.Infof("%-10v count=%d pos=%v move=%v", f.Phase, f.Count, f.Position, f.Move)
	case gesture.Moved, gesture.Stationary:
		logger.Debugf("%-10v count=%d pos=%v delta=%v move=%v", f.Phase, f.Count, f.Position, f.Delta, f.Move)
	case gesture.None:
		if !p.quiet || p.last != gesture.None {
			logger.Debugf("%-10v count=%d", f.Phase, f.Count)
		}
	}
}
