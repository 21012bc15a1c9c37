// SPDX-License-Identifier: Unlicense OR MIT

// Package config loads the TOML settings shared by the touchutil
// commands.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the decoded settings file.
type Config struct {
	Mode   Mode   `toml:"mode"`
	Remote Remote `toml:"remote"`
	Log    Log    `toml:"log"`
	Probe  Probe  `toml:"probe"`
}

// Mode configures input mode selection.
type Mode struct {
	// Remote is the initial state of the remote touch toggle.
	Remote bool `toml:"remote"`
	// NoDetect skips native touch detection and assumes a
	// mouse-only device.
	NoDetect bool `toml:"no_detect"`
}

// Remote configures the remote touch server.
type Remote struct {
	Listen string `toml:"listen"`
	// Path is the websocket endpoint companion devices connect to.
	Path string `toml:"path"`
	// Queue bounds the number of touch frames buffered between
	// host frames.
	Queue int `toml:"queue"`
	// Origins lists the origins allowed to connect. Empty allows
	// any origin.
	Origins []string `toml:"origins"`
}

type Log struct {
	Level string `toml:"level"`
}

// Probe configures the touchprobe command.
type Probe struct {
	// Feed is one of "ebiten", "desktop" or "remote".
	Feed string `toml:"feed"`
	// FPS is the poll rate of feeds without their own frame loop.
	FPS int `toml:"fps"`
	// Quiet suppresses logging of frames without an active pointer.
	Quiet bool `toml:"quiet"`
}

var logLevels = []string{"disable", "fatal", "error", "warn", "info", "debug"}

var feeds = []string{"ebiten", "desktop", "remote"}

// Default returns the settings used when no file exists.
func Default() Config {
	return Config{
		Remote: Remote{
			Listen: "127.0.0.1:7201",
			Path:   "/remote",
			Queue:  64,
		},
		Log: Log{
			Level: "info",
		},
		Probe: Probe{
			Feed:  "ebiten",
			FPS:   60,
			Quiet: true,
		},
	}
}

// Load reads the settings file at path over the defaults. A missing
// file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Remote.Listen == "" {
		return errors.New("remote.listen is empty")
	}
	if !strings.HasPrefix(c.Remote.Path, "/") {
		return fmt.Errorf("remote.path %q must start with /", c.Remote.Path)
	}
	if c.Remote.Queue < 1 {
		return fmt.Errorf("remote.queue %d must be positive", c.Remote.Queue)
	}
	if !oneOf(c.Log.Level, logLevels) {
		return fmt.Errorf("log.level %q is not one of %s", c.Log.Level, strings.Join(logLevels, ", "))
	}
	if !oneOf(c.Probe.Feed, feeds) {
		return fmt.Errorf("probe.feed %q is not one of %s", c.Probe.Feed, strings.Join(feeds, ", "))
	}
	if c.Probe.FPS < 1 || c.Probe.FPS > 1000 {
		return fmt.Errorf("probe.fps %d out of range", c.Probe.FPS)
	}
	return nil
}

// FrameInterval is the poll period derived from Probe.FPS.
func (p Probe) FrameInterval() time.Duration {
	return time.Second / time.Duration(p.FPS)
}

func oneOf(s string, set []string) bool {
	for _, v := range set {
		if s == v {
			return true
		}
	}
	return false
}
