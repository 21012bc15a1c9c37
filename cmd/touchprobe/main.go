// SPDX-License-Identifier: Unlicense OR MIT

// Command touchprobe logs the gesture of the primary pointer every
// frame. It reads the mouse and touch screen through an ebiten window,
// the desktop mouse through a global hook, or touches streamed from a
// companion device, and serves the remote touch toggle over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/kataras/golog"
	"golang.org/x/sync/errgroup"

	"touchutil.org/app/desktop"
	"touchutil.org/app/remote"
	"touchutil.org/gesture"
	"touchutil.org/internal/config"
	"touchutil.org/io/input"
	"touchutil.org/io/mode"
)

var (
	configPath = flag.String("config", defaultConfigPath(), "settings file.")
	feed       = flag.String("feed", "", "input feed (ebiten, desktop, remote). Overrides probe.feed.")
	listen     = flag.String("listen", "", "remote touch server address. Overrides remote.listen.")
	remoteOn   = flag.Bool("remote", false, "start with remote touch enabled.")
	verbose    = flag.Bool("v", false, "log every frame.")
)

var logger = golog.Child("[probe]")

func main() {
	flag.Parse()
	if err := mainErr(); err != nil {
		fmt.Fprintf(os.Stderr, "touchprobe: %v\n", err)
		os.Exit(1)
	}
}

func mainErr() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	golog.SetLevel(cfg.Log.Level)

	var sel *mode.Selector
	if cfg.Mode.NoDetect {
		sel = mode.NewSelector(false, cfg.Mode.Remote)
	} else {
		sel = mode.Detect(cfg.Mode.Remote)
	}
	logger.Infof("native touch: %v, remote touch: %v", sel.Native(), sel.Remote())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	srv := remote.NewServer(cfg.Remote, sel)
	g.Go(func() error {
		return srv.ListenAndServe(ctx)
	})

	p := &probe{
		remote: srv,
		quiet:  cfg.Probe.Quiet,
	}
	switch cfg.Probe.Feed {
	case "ebiten":
		err = runEbiten(ctx, p, sel)
	case "desktop":
		d := desktop.Start()
		defer d.Close()
		p.local = d
		p.advance = func() { d.Frame() }
		err = p.loop(ctx, sel, cfg.Probe.FrameInterval())
	case "remote":
		// Companion touches only.
		sel.SetRemote(true)
		p.local = input.Snapshot{}
		p.advance = func() {}
		err = p.loop(ctx, sel, cfg.Probe.FrameInterval())
	}
	stop()
	if werr := g.Wait(); err == nil {
		err = werr
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return cfg, err
	}
	if *feed != "" {
		cfg.Probe.Feed = *feed
	}
	if *listen != "" {
		cfg.Remote.Listen = *listen
	}
	if *remoteOn {
		cfg.Mode.Remote = true
	}
	if *verbose {
		cfg.Log.Level = "debug"
		cfg.Probe.Quiet = false
	}
	return cfg, cfg.Validate()
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "touchutil", "touchprobe.toml")
}

// newTracker tracks the local source, or the companion while the
// remote toggle is on.
func (p *probe) newTracker(sel *mode.Selector) *gesture.Tracker {
	mux := &input.Mux{
		Local:     p.local,
		Remote:    p.remote,
		UseRemote: sel.Remote,
	}
	return gesture.NewTracker(sel, mux)
}
