// SPDX-License-Identifier: Unlicense OR MIT

/*
Package mode selects between touch and mouse input.

Input is touch-like when the device has native touch hardware, or
when the remote touch toggle is enabled so that touches are streamed
from a companion device.
*/
package mode

import (
	"sync/atomic"

	"touchutil.org/internal/hwtouch"
)

// MenuPath is the settings path of the remote touch toggle.
const MenuPath = "Tools/TouchControls/UseRemote"

// Selector combines native touch detection with the remote
// touch toggle. The toggle may be flipped from any goroutine.
type Selector struct {
	native bool
	remote atomic.Bool
}

// Item is the display state of the remote touch toggle.
type Item struct {
	Path    string
	Checked bool
}

// NewSelector returns a selector for a device with or without
// native touch hardware.
func NewSelector(native, remote bool) *Selector {
	s := &Selector{native: native}
	s.remote.Store(remote)
	return s
}

// Detect is like NewSelector but probes the device for touch
// hardware.
func Detect(remote bool) *Selector {
	return NewSelector(hwtouch.Present(), remote)
}

// TouchMode reports whether input is touch-like.
func (s *Selector) TouchMode() bool {
	return s.native || s.remote.Load()
}

// Native reports whether touch hardware was detected.
func (s *Selector) Native() bool {
	return s.native
}

// Remote reports whether the remote touch toggle is enabled.
func (s *Selector) Remote() bool {
	return s.remote.Load()
}

// SetRemote sets the remote touch toggle.
func (s *Selector) SetRemote(enabled bool) {
	s.remote.Store(enabled)
}

// ToggleRemote flips the remote touch toggle and returns its new
// value.
func (s *Selector) ToggleRemote() bool {
	for {
		old := s.remote.Load()
		if s.remote.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// MenuItem returns the label and checked state of the toggle.
func (s *Selector) MenuItem() Item {
	return Item{Path: MenuPath, Checked: s.Remote()}
}
