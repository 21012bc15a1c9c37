// SPDX-License-Identifier: Unlicense OR MIT

package input

import (
	"sync"

	"golang.org/x/exp/slices"

	"touchutil.org/f32"
	"touchutil.org/io/event"
	"touchutil.org/io/pointer"
)

// Router converts the pointer events of an event driven host into
// per-frame snapshots. Events are queued with Queue, possibly from
// other goroutines, and folded into the next snapshot by Frame.
//
// A pointer reports at most one edge (press, release or cancel) per
// frame. A second edge, and every later event of the same pointer, is
// carried over to the following frame.
//
// The Source methods and Frame must be called from the goroutine
// that polls the router.
type Router struct {
	mu      sync.Mutex
	pending []pointer.Event

	touches []touchState
	mouse   mouseState
	snap    Snapshot
}

type touchState struct {
	id    pointer.ID
	phase pointer.Phase
	pos   f32.Point
	delta f32.Point
	// edge is set when the touch began or ended in the current frame.
	edge bool
}

type mouseState struct {
	pressed  bool
	down, up bool
	pos      f32.Point
}

// Queue events for the next frame. Events other than pointer.Event
// are ignored.
func (q *Router) Queue(events ...event.Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, e := range events {
		if pe, ok := e.(pointer.Event); ok {
			q.pending = append(q.pending, pe)
		}
	}
}

// Frame closes the current frame and returns its snapshot. The
// snapshot is also what the Source methods of q report until the
// next call to Frame.
func (q *Router) Frame() Snapshot {
	q.mu.Lock()
	defer q.mu.Unlock()

	// Touches that ended in the previous frame are gone.
	q.touches = slices.DeleteFunc(q.touches, func(t touchState) bool {
		return !t.phase.Active()
	})
	for i := range q.touches {
		t := &q.touches[i]
		t.phase = pointer.Stationary
		t.delta = f32.Point{}
		t.edge = false
	}
	q.mouse.down, q.mouse.up = false, false

	var carry []pointer.Event
	for _, e := range q.pending {
		deferred := slices.ContainsFunc(carry, func(c pointer.Event) bool {
			return samePointer(c, e)
		})
		if deferred || !q.processEvent(e) {
			carry = append(carry, e)
		}
	}
	q.pending = carry

	touches := make([]pointer.Touch, len(q.touches))
	for i, t := range q.touches {
		touches[i] = pointer.Touch{
			ID:       t.id,
			Phase:    t.phase,
			Position: t.pos,
			Delta:    t.delta,
		}
	}
	q.snap = Snapshot{
		Touches: touches,
		Mouse: pointer.Button{
			Down:     q.mouse.down,
			Held:     q.mouse.pressed,
			Up:       q.mouse.up,
			Position: q.mouse.pos,
		},
	}
	return q.snap
}

func (q *Router) TouchCount() int {
	return q.snap.TouchCount()
}

func (q *Router) Touch(i int) pointer.Touch {
	return q.snap.Touch(i)
}

func (q *Router) Button() pointer.Button {
	return q.snap.Button()
}

// processEvent applies e to the current frame. It returns false if e
// must wait for the next frame.
func (q *Router) processEvent(e pointer.Event) bool {
	if e.Source == pointer.SourceTouch {
		return q.processTouch(e)
	}
	return q.processMouse(e)
}

func (q *Router) processTouch(e pointer.Event) bool {
	idx := slices.IndexFunc(q.touches, func(t touchState) bool {
		return t.id == e.PointerID
	})
	switch e.Kind {
	case pointer.Press:
		if idx != -1 {
			// A touch that ended this frame can't begin again until
			// the next one; a press of an active touch is a duplicate.
			return q.touches[idx].phase.Active()
		}
		q.touches = append(q.touches, touchState{
			id:    e.PointerID,
			phase: pointer.Began,
			pos:   e.Position,
			edge:  true,
		})
	case pointer.Move, pointer.Drag:
		if idx == -1 || !q.touches[idx].phase.Active() {
			break
		}
		t := &q.touches[idx]
		t.delta = t.delta.Add(e.Position.Sub(t.pos))
		t.pos = e.Position
		if t.phase == pointer.Stationary {
			t.phase = pointer.Moved
		}
	case pointer.Release, pointer.Cancel:
		if idx == -1 || !q.touches[idx].phase.Active() {
			break
		}
		t := &q.touches[idx]
		if t.edge {
			return false
		}
		t.delta = t.delta.Add(e.Position.Sub(t.pos))
		t.pos = e.Position
		t.edge = true
		t.phase = pointer.Ended
		if e.Kind == pointer.Cancel {
			t.phase = pointer.Canceled
		}
	}
	return true
}

func (q *Router) processMouse(e pointer.Event) bool {
	m := &q.mouse
	switch e.Kind {
	case pointer.Press:
		if m.pressed || !e.Buttons.Contain(pointer.ButtonPrimary) {
			break
		}
		if m.up {
			return false
		}
		m.pressed = true
		m.down = true
	case pointer.Release, pointer.Cancel:
		if !m.pressed {
			break
		}
		// Release reports the buttons still pressed.
		if e.Kind == pointer.Release && e.Buttons.Contain(pointer.ButtonPrimary) {
			break
		}
		if m.down {
			return false
		}
		m.pressed = false
		m.up = true
	}
	m.pos = e.Position
	return true
}

func samePointer(a, b pointer.Event) bool {
	if a.Source != b.Source {
		return false
	}
	return a.Source == pointer.SourceMouse || a.PointerID == b.PointerID
}
