// SPDX-License-Identifier: Unlicense OR MIT

package pointer

import (
	"fmt"
	"strings"
	"time"

	"touchutil.org/f32"
)

// Event is a pointer event as delivered by event driven hosts.
// Package input turns a frame's worth of events into samples.
type Event struct {
	Kind   Kind
	Source Source
	// PointerID is the id for the pointer and can be used
	// to track a particular pointer from Press to
	// Release or Cancel.
	PointerID ID
	// Time is when the event was received. The
	// timestamp is relative to an undefined base.
	Time time.Duration
	// Buttons are the set of pressed mouse buttons for this event.
	Buttons Buttons
	// Position is the coordinates of the event in screen space.
	Position f32.Point
}

// Touch is the state of one touch in one frame, as reported by
// touch hardware.
type Touch struct {
	ID    ID
	Phase Phase
	// Position of the touch.
	Position f32.Point
	// Delta is the movement since the previous frame.
	Delta f32.Point
}

// Button is the state of the primary mouse button in one frame.
// Down and Up are edges, true for exactly one frame. Held is
// the level and is true for the Down frame as well.
type Button struct {
	Down, Held, Up bool
	Position       f32.Point
}

// ID identifies a pointer. It is wide enough for host touch ids,
// which are plain ints.
type ID int

// Kind of an Event.
type Kind uint

// Source of an Event.
type Source uint8

// Buttons is a set of mouse buttons
type Buttons uint8

// Phase is the hardware phase of a touch within a frame.
type Phase uint8

const (
	// A Cancel event is generated when the current gesture is
	// interrupted by the system.
	Cancel Kind = 1 << iota
	// Press of a pointer.
	Press
	// Release of a pointer.
	Release
	// Move of a pointer.
	Move
	// Drag of a pointer.
	Drag
)

const (
	// SourceMouse marks mouse generated events.
	SourceMouse Source = iota
	// SourceTouch marks touch generated events.
	SourceTouch
)

const (
	// ButtonPrimary is the primary button, usually the left button for a
	// right-handed user.
	ButtonPrimary Buttons = 1 << iota
	// ButtonSecondary is the secondary button, usually the right button for a
	// right-handed user.
	ButtonSecondary
	// ButtonTertiary is the tertiary button, usually the middle button.
	ButtonTertiary
)

const (
	// Began is reported in the frame a finger touched the screen.
	Began Phase = iota
	// Moved is reported when the finger moved since the previous frame.
	Moved
	// Stationary is reported when the finger is down but did not move.
	Stationary
	// Ended is reported in the frame the finger was lifted.
	Ended
	// Canceled is reported when the system stopped tracking the touch.
	Canceled
)

// Pressed reports whether the button is down, held or released
// in this frame.
func (b Button) Pressed() bool {
	return b.Down || b.Held || b.Up
}

func (t Kind) String() string {
	if t == Cancel {
		return "Cancel"
	}
	var buf strings.Builder
	for tt := Kind(1); tt > 0 && tt <= Drag; tt <<= 1 {
		if t&tt > 0 {
			if buf.Len() > 0 {
				buf.WriteByte('|')
			}
			buf.WriteString((t & tt).string())
		}
	}
	return buf.String()
}

func (t Kind) string() string {
	switch t {
	case Press:
		return "Press"
	case Release:
		return "Release"
	case Cancel:
		return "Cancel"
	case Move:
		return "Move"
	case Drag:
		return "Drag"
	default:
		panic("unknown Type")
	}
}

func (s Source) String() string {
	switch s {
	case SourceMouse:
		return "Mouse"
	case SourceTouch:
		return "Touch"
	default:
		panic("unknown source")
	}
}

// Contain reports whether the set b contains
// all of the buttons.
func (b Buttons) Contain(buttons Buttons) bool {
	return b&buttons == buttons
}

func (b Buttons) String() string {
	var strs []string
	if b.Contain(ButtonPrimary) {
		strs = append(strs, "ButtonPrimary")
	}
	if b.Contain(ButtonSecondary) {
		strs = append(strs, "ButtonSecondary")
	}
	if b.Contain(ButtonTertiary) {
		strs = append(strs, "ButtonTertiary")
	}
	return strings.Join(strs, "|")
}

var phaseNames = [...]string{
	Began:      "began",
	Moved:      "moved",
	Stationary: "stationary",
	Ended:      "ended",
	Canceled:   "canceled",
}

func (p Phase) String() string {
	if int(p) >= len(phaseNames) {
		panic("unknown phase")
	}
	return phaseNames[p]
}

// Active reports whether the touch is still on the screen.
func (p Phase) Active() bool {
	return p == Began || p == Moved || p == Stationary
}

func (p Phase) MarshalText() ([]byte, error) {
	if int(p) >= len(phaseNames) {
		return nil, fmt.Errorf("pointer: invalid phase %d", uint8(p))
	}
	return []byte(phaseNames[p]), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	name := strings.ToLower(string(text))
	for i, n := range phaseNames {
		if n == name {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("pointer: unknown phase %q", text)
}

func (Event) ImplementsEvent() {}
