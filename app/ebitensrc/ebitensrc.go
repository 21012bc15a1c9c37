// SPDX-License-Identifier: Unlicense OR MIT

/*
Package ebitensrc reads pointer input from an ebiten game loop.

Call Source.Update once at the start of every Game.Update; the source
then reports that tick's touches and mouse button until the next
Update.
*/
package ebitensrc

import (
	"cmp"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/exp/slices"

	"touchutil.org/f32"
	"touchutil.org/io/input"
	"touchutil.org/io/pointer"
)

// Source is an input.Source backed by ebiten's input state.
type Source struct {
	snap input.Snapshot

	// Scratch slices reused across ticks.
	active   []ebiten.TouchID
	pressed  []ebiten.TouchID
	released []ebiten.TouchID
}

// Update samples the input of the current tick.
func (s *Source) Update() input.Snapshot {
	s.active = ebiten.AppendTouchIDs(s.active[:0])
	s.pressed = inpututil.AppendJustPressedTouchIDs(s.pressed[:0])
	s.released = inpututil.AppendJustReleasedTouchIDs(s.released[:0])

	var touches []pointer.Touch
	for _, id := range s.active {
		x, y := ebiten.TouchPosition(id)
		px, py := inpututil.TouchPositionInPreviousTick(id)
		touches = append(touches, touchSample(id, f32.Pt(float32(x), float32(y)), f32.Pt(float32(px), float32(py)), slices.Contains(s.pressed, id)))
	}
	for _, id := range s.released {
		x, y := inpututil.TouchPositionInPreviousTick(id)
		touches = append(touches, pointer.Touch{
			ID:       pointer.ID(id),
			Phase:    pointer.Ended,
			Position: f32.Pt(float32(x), float32(y)),
		})
	}
	// Ebiten reports touches in no particular order. Ordering by id
	// keeps the oldest touch first.
	slices.SortFunc(touches, func(a, b pointer.Touch) int {
		return cmp.Compare(a.ID, b.ID)
	})

	mx, my := ebiten.CursorPosition()
	s.snap = input.Snapshot{
		Touches: touches,
		Mouse: pointer.Button{
			Down:     inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
			Held:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
			Up:       inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
			Position: f32.Pt(float32(mx), float32(my)),
		},
	}
	return s.snap
}

func (s *Source) TouchCount() int {
	return s.snap.TouchCount()
}

func (s *Source) Touch(i int) pointer.Touch {
	return s.snap.Touch(i)
}

func (s *Source) Button() pointer.Button {
	return s.snap.Button()
}

// touchSample classifies an active touch from its current and
// previous tick positions.
func touchSample(id ebiten.TouchID, pos, prev f32.Point, justPressed bool) pointer.Touch {
	t := pointer.Touch{
		ID:       pointer.ID(id),
		Position: pos,
	}
	switch {
	case justPressed:
		t.Phase = pointer.Began
	case pos != prev:
		t.Phase = pointer.Moved
		t.Delta = pos.Sub(prev)
	default:
		t.Phase = pointer.Stationary
	}
	return t
}
