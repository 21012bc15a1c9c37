// SPDX-License-Identifier: Unlicense OR MIT

/*
Package gesture tracks the primary pointer and reduces it to a
single gesture: touch count, phase, position, delta and the vector
moved since the gesture began.

A Tracker reads raw frames from an input.Source and answers the
same questions whether the source is a touch screen or a mouse,
depending only on its Mode. Only the first touch, or the primary
mouse button, is tracked.

Out of range conditions never fail: with no active pointer the
phase is None and every vector is zero.
*/
package gesture

import (
	"touchutil.org/f32"
	"touchutil.org/io/input"
	"touchutil.org/io/pointer"
)

// Mode reports whether input is currently touch-like. It is
// consulted on every query.
type Mode interface {
	TouchMode() bool
}

// Tracker derives the gesture of the primary pointer.
//
// The query methods each re-read the source and re-derive the phase,
// and they may be called in any order. Phase has side effects: it
// captures the start of a gesture. DeltaPosition has side effects in
// mouse mode: it advances the previous position, so a second call in
// the same frame returns the zero vector. Use Poll to query all values
// at once per frame.
//
// A Tracker must only be used from the goroutine that advances its
// source.
type Tracker struct {
	mode Mode
	src  input.Source

	// start is the position where the current gesture began.
	start f32.Point
	// prev is the mouse position at the previous delta query.
	prev f32.Point
	// finger is the id of the tracked touch. Only meaningful
	// between Began and Ended or Canceled.
	finger pointer.ID
}

// Frame is the gesture state of one frame as computed by Poll.
type Frame struct {
	Count    int
	Phase    Phase
	Position f32.Point
	Delta    f32.Point
	// Move is the vector from the start of the gesture to
	// Position.
	Move f32.Point
}

// NewTracker returns a tracker reading src in the mode reported by m.
func NewTracker(m Mode, src input.Source) *Tracker {
	return &Tracker{mode: m, src: src}
}

// SetSource replaces the raw input source. Tracked state is kept.
func (t *Tracker) SetSource(src input.Source) {
	t.src = src
}

// Count returns the number of active touches in touch mode. In mouse
// mode it is 1 if the primary button is pressed, held or released in
// this frame, and 0 otherwise.
func (t *Tracker) Count() int {
	if t.mode.TouchMode() {
		return t.src.TouchCount()
	}
	if t.src.Button().Pressed() {
		return 1
	}
	return 0
}

// Phase returns the phase of the primary pointer. A Began phase
// starts a new gesture and records its start position.
func (t *Tracker) Phase() Phase {
	if t.mode.TouchMode() {
		if t.src.TouchCount() == 0 {
			return None
		}
		tt := t.src.Touch(0)
		if tt.Phase == pointer.Began {
			t.start = tt.Position
			t.finger = tt.ID
		}
		return phaseOf(tt.Phase)
	}
	b := t.src.Button()
	switch {
	case b.Down:
		t.start = b.Position
		t.prev = b.Position
		return Began
	case b.Held:
		// Mouse input never reports Stationary.
		return Moved
	case b.Up:
		return Ended
	default:
		return None
	}
}

// Position returns the position of the primary pointer, or the zero
// vector when there is none. In touch mode the zero vector is also
// returned when the first touch is not the tracked finger.
func (t *Tracker) Position() f32.Point {
	if t.Phase() == None {
		return f32.Point{}
	}
	return t.position()
}

// DeltaPosition returns the movement of the primary pointer since
// the previous frame. In mouse mode the movement is measured from the
// previous call, see Tracker.
func (t *Tracker) DeltaPosition() f32.Point {
	if t.Phase() == None {
		return f32.Point{}
	}
	return t.delta()
}

// MoveVector returns the vector from the start of the gesture to the
// current position of the primary pointer.
func (t *Tracker) MoveVector() f32.Point {
	if t.Phase() == None {
		return f32.Point{}
	}
	return t.move()
}

// Poll derives the phase once and returns every value of the frame.
// Its side effects equal one call of each query method. Poll should
// be called at most once per frame.
func (t *Tracker) Poll() Frame {
	f := Frame{
		Count: t.Count(),
		Phase: t.Phase(),
	}
	if f.Phase == None {
		return f
	}
	f.Position = t.position()
	f.Delta = t.delta()
	f.Move = t.move()
	return f
}

// Active reports whether the frame has an active pointer.
func (f Frame) Active() bool {
	return f.Phase != None
}

// tracked returns the first touch if it belongs to the tracked finger.
func (t *Tracker) tracked() (pointer.Touch, bool) {
	tt := t.src.Touch(0)
	return tt, tt.ID == t.finger
}

func (t *Tracker) position() f32.Point {
	if !t.mode.TouchMode() {
		return t.src.Button().Position
	}
	if tt, ok := t.tracked(); ok {
		return tt.Position
	}
	return f32.Point{}
}

func (t *Tracker) delta() f32.Point {
	if !t.mode.TouchMode() {
		cur := t.src.Button().Position
		d := cur.Sub(t.prev)
		t.prev = cur
		return d
	}
	if tt, ok := t.tracked(); ok {
		return tt.Delta
	}
	return f32.Point{}
}

func (t *Tracker) move() f32.Point {
	if !t.mode.TouchMode() {
		return t.src.Button().Position.Sub(t.start)
	}
	if tt, ok := t.tracked(); ok {
		return tt.Position.Sub(t.start)
	}
	return f32.Point{}
}
