// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"context"
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"touchutil.org/app/ebitensrc"
	"touchutil.org/gesture"
	"touchutil.org/io/mode"
)

// game drives the probe from ebiten's update loop. It draws nothing.
type game struct {
	ctx     context.Context
	p       *probe
	sel     *mode.Selector
	tracker *gesture.Tracker
}

func runEbiten(ctx context.Context, p *probe, sel *mode.Selector) error {
	src := new(ebitensrc.Source)
	p.local = src
	p.advance = func() { src.Update() }
	g := &game{
		ctx:     ctx,
		p:       p,
		sel:     sel,
		tracker: p.newTracker(sel),
	}
	ebiten.SetWindowTitle("touchprobe")
	ebiten.SetWindowSize(640, 480)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func (g *game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		on := g.sel.ToggleRemote()
		logger.Infof("remote touch toggled, touch mode: %v (remote %v)", g.sel.TouchMode(), on)
	}
	g.p.frame(g.tracker)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
