// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"testing"

	"touchutil.org/f32"
	"touchutil.org/io/input"
	"touchutil.org/io/mode"
	"touchutil.org/io/pointer"
)

type fixedMode bool

func (m fixedMode) TouchMode() bool { return bool(m) }

func touchFrame(touches ...pointer.Touch) *input.Snapshot {
	return &input.Snapshot{Touches: touches}
}

func mouseFrame(b pointer.Button) *input.Snapshot {
	return &input.Snapshot{Mouse: b}
}

func TestMouseIdle(t *testing.T) {
	tr := NewTracker(fixedMode(false), mouseFrame(pointer.Button{Position: f32.Pt(40, 40)}))
	if got := tr.Count(); got != 0 {
		t.Errorf("Count: got %d, want 0", got)
	}
	if got := tr.Phase(); got != None {
		t.Errorf("Phase: got %v, want None", got)
	}
	for name, got := range map[string]f32.Point{
		"Position":      tr.Position(),
		"DeltaPosition": tr.DeltaPosition(),
		"MoveVector":    tr.MoveVector(),
	} {
		if !got.IsZero() {
			t.Errorf("%s: got %v, want zero", name, got)
		}
	}
}

func TestMouseGesture(t *testing.T) {
	src := mouseFrame(pointer.Button{Down: true, Held: true, Position: f32.Pt(10, 10)})
	tr := NewTracker(fixedMode(false), src)

	if got := tr.Phase(); got != Began {
		t.Fatalf("down frame: got phase %v, want Began", got)
	}
	if got, want := tr.start, f32.Pt(10, 10); got != want {
		t.Errorf("start: got %v, want %v", got, want)
	}
	if got := tr.Count(); got != 1 {
		t.Errorf("down frame: got count %d, want 1", got)
	}

	*src = input.Snapshot{Mouse: pointer.Button{Held: true, Position: f32.Pt(15, 12)}}
	if got := tr.Phase(); got != Moved {
		t.Errorf("held frame: got phase %v, want Moved", got)
	}
	if got, want := tr.DeltaPosition(), f32.Pt(5, 2); got != want {
		t.Errorf("delta: got %v, want %v", got, want)
	}
	// The second call in a frame sees the position stored by the first.
	if got := tr.DeltaPosition(); !got.IsZero() {
		t.Errorf("second delta: got %v, want zero", got)
	}
	if got, want := tr.MoveVector(), f32.Pt(5, 2); got != want {
		t.Errorf("move: got %v, want %v", got, want)
	}
	if got, want := tr.Position(), f32.Pt(15, 12); got != want {
		t.Errorf("position: got %v, want %v", got, want)
	}

	*src = input.Snapshot{Mouse: pointer.Button{Up: true, Position: f32.Pt(20, 12)}}
	if got := tr.Phase(); got != Ended {
		t.Errorf("up frame: got phase %v, want Ended", got)
	}
	if got, want := tr.MoveVector(), f32.Pt(10, 2); got != want {
		t.Errorf("move at end: got %v, want %v", got, want)
	}

	*src = input.Snapshot{}
	if got := tr.Phase(); got != None {
		t.Errorf("idle frame: got phase %v, want None", got)
	}
}

func TestMouseCount(t *testing.T) {
	for _, tc := range []struct {
		label string
		b     pointer.Button
		count int
		phase Phase
	}{
		{"idle", pointer.Button{}, 0, None},
		{"down", pointer.Button{Down: true, Held: true}, 1, Began},
		{"held", pointer.Button{Held: true}, 1, Moved},
		{"up", pointer.Button{Up: true}, 1, Ended},
		{"down and up", pointer.Button{Down: true, Up: true}, 1, Began},
	} {
		t.Run(tc.label, func(t *testing.T) {
			tr := NewTracker(fixedMode(false), mouseFrame(tc.b))
			if got := tr.Count(); got != tc.count {
				t.Errorf("Count: got %d, want %d", got, tc.count)
			}
			if got := tr.Phase(); got != tc.phase {
				t.Errorf("Phase: got %v, want %v", got, tc.phase)
			}
			// Count and Phase agree on whether a pointer is active.
			if (tr.Count() == 1) != (tr.Phase() != None) {
				t.Errorf("Count and Phase disagree")
			}
		})
	}
}

func TestTouchGesture(t *testing.T) {
	p0, p1 := f32.Pt(100, 200), f32.Pt(130, 180)
	src := touchFrame(pointer.Touch{ID: 3, Phase: pointer.Began, Position: p0})
	tr := NewTracker(fixedMode(true), src)

	if got := tr.Phase(); got != Began {
		t.Fatalf("got phase %v, want Began", got)
	}
	if got := tr.MoveVector(); !got.IsZero() {
		t.Errorf("move at start: got %v, want zero", got)
	}

	*src = input.Snapshot{Touches: []pointer.Touch{
		{ID: 3, Phase: pointer.Moved, Position: p1, Delta: f32.Pt(30, -20)},
	}}
	if got := tr.Phase(); got != Moved {
		t.Errorf("got phase %v, want Moved", got)
	}
	if got, want := tr.MoveVector(), p1.Sub(p0); got != want {
		t.Errorf("move: got %v, want %v", got, want)
	}
	if got := tr.Position(); got != p1 {
		t.Errorf("position: got %v, want %v", got, p1)
	}
	// Touch deltas come from the hardware and are stable within a frame.
	for i := 0; i < 2; i++ {
		if got, want := tr.DeltaPosition(), f32.Pt(30, -20); got != want {
			t.Errorf("delta call %d: got %v, want %v", i, got, want)
		}
	}

	*src = input.Snapshot{Touches: []pointer.Touch{
		{ID: 3, Phase: pointer.Ended, Position: p1},
	}}
	if got := tr.Phase(); got != Ended {
		t.Errorf("got phase %v, want Ended", got)
	}

	*src = input.Snapshot{}
	if got := tr.Phase(); got != None {
		t.Errorf("got phase %v, want None", got)
	}
	if got := tr.Count(); got != 0 {
		t.Errorf("got count %d, want 0", got)
	}
}

func TestTouchFingerMismatch(t *testing.T) {
	src := touchFrame(pointer.Touch{ID: 1, Phase: pointer.Began, Position: f32.Pt(1, 1)})
	tr := NewTracker(fixedMode(true), src)
	tr.Phase()

	*src = input.Snapshot{Touches: []pointer.Touch{
		{ID: 2, Phase: pointer.Moved, Position: f32.Pt(9, 9), Delta: f32.Pt(1, 1)},
	}}
	if got := tr.Phase(); got == None {
		t.Fatalf("got phase None, want an active phase")
	}
	for name, got := range map[string]f32.Point{
		"Position":      tr.Position(),
		"DeltaPosition": tr.DeltaPosition(),
		"MoveVector":    tr.MoveVector(),
	} {
		if !got.IsZero() {
			t.Errorf("%s: got %v, want zero for foreign finger", name, got)
		}
	}
}

func TestTouchNewGestureOverwritesState(t *testing.T) {
	src := touchFrame(pointer.Touch{ID: 1, Phase: pointer.Began, Position: f32.Pt(1, 1)})
	tr := NewTracker(fixedMode(true), src)
	tr.Phase()
	*src = input.Snapshot{Touches: []pointer.Touch{{ID: 1, Phase: pointer.Canceled, Position: f32.Pt(2, 2)}}}
	if got := tr.Phase(); got != Canceled {
		t.Errorf("got phase %v, want Canceled", got)
	}
	*src = input.Snapshot{Touches: []pointer.Touch{{ID: 5, Phase: pointer.Began, Position: f32.Pt(50, 50)}}}
	tr.Phase()
	*src = input.Snapshot{Touches: []pointer.Touch{{ID: 5, Phase: pointer.Stationary, Position: f32.Pt(50, 60)}}}
	if got := tr.Phase(); got != Stationary {
		t.Errorf("got phase %v, want Stationary", got)
	}
	if got, want := tr.MoveVector(), f32.Pt(0, 10); got != want {
		t.Errorf("move: got %v, want %v", got, want)
	}
}

func TestTouchCount(t *testing.T) {
	tr := NewTracker(fixedMode(true), touchFrame(
		pointer.Touch{ID: 1, Phase: pointer.Moved},
		pointer.Touch{ID: 2, Phase: pointer.Began},
	))
	if got := tr.Count(); got != 2 {
		t.Errorf("got count %d, want 2", got)
	}
}

func TestPoll(t *testing.T) {
	src := mouseFrame(pointer.Button{Down: true, Held: true, Position: f32.Pt(10, 10)})
	tr := NewTracker(fixedMode(false), src)
	f := tr.Poll()
	if want := (Frame{Count: 1, Phase: Began, Position: f32.Pt(10, 10)}); f != want {
		t.Errorf("down frame: got %+v, want %+v", f, want)
	}

	*src = input.Snapshot{Mouse: pointer.Button{Held: true, Position: f32.Pt(15, 12)}}
	f = tr.Poll()
	want := Frame{
		Count:    1,
		Phase:    Moved,
		Position: f32.Pt(15, 12),
		Delta:    f32.Pt(5, 2),
		Move:     f32.Pt(5, 2),
	}
	if f != want {
		t.Errorf("held frame: got %+v, want %+v", f, want)
	}
	if !f.Active() {
		t.Error("held frame not active")
	}

	*src = input.Snapshot{}
	if f := tr.Poll(); f.Active() || f != (Frame{}) {
		t.Errorf("idle frame: got %+v, want zero", f)
	}
}

func TestPollMatchesQueries(t *testing.T) {
	frames := []input.Snapshot{
		{Touches: []pointer.Touch{{ID: 4, Phase: pointer.Began, Position: f32.Pt(0, 0)}}},
		{Touches: []pointer.Touch{{ID: 4, Phase: pointer.Moved, Position: f32.Pt(3, 4), Delta: f32.Pt(3, 4)}}},
		{Touches: []pointer.Touch{{ID: 4, Phase: pointer.Stationary, Position: f32.Pt(3, 4)}}},
		{Touches: []pointer.Touch{{ID: 4, Phase: pointer.Ended, Position: f32.Pt(3, 4)}}},
		{},
	}
	var polled, queried input.Snapshot
	pt := NewTracker(fixedMode(true), &polled)
	qt := NewTracker(fixedMode(true), &queried)
	for i, fr := range frames {
		polled, queried = fr, fr
		got := pt.Poll()
		want := Frame{
			Count:    qt.Count(),
			Phase:    qt.Phase(),
			Position: qt.Position(),
			Delta:    qt.DeltaPosition(),
			Move:     qt.MoveVector(),
		}
		if got != want {
			t.Errorf("frame %d: Poll %+v, queries %+v", i, got, want)
		}
	}
}

func TestModeSwitch(t *testing.T) {
	sel := mode.NewSelector(false, false)
	src := &input.Snapshot{
		Touches: []pointer.Touch{{ID: 1, Phase: pointer.Began, Position: f32.Pt(7, 7)}},
	}
	tr := NewTracker(sel, src)
	if got := tr.Phase(); got != None {
		t.Errorf("mouse mode: got phase %v, want None", got)
	}
	sel.ToggleRemote()
	if got := tr.Phase(); got != Began {
		t.Errorf("remote mode: got phase %v, want Began", got)
	}
	if got, want := tr.Position(), f32.Pt(7, 7); got != want {
		t.Errorf("remote mode: got position %v, want %v", got, want)
	}
}

func TestPhaseTable(t *testing.T) {
	for _, tc := range []struct {
		hw   pointer.Phase
		want Phase
	}{
		{pointer.Began, Began},
		{pointer.Moved, Moved},
		{pointer.Stationary, Stationary},
		{pointer.Ended, Ended},
		{pointer.Canceled, Canceled},
		{pointer.Canceled + 1, None},
	} {
		if got := phaseOf(tc.hw); got != tc.want {
			t.Errorf("phaseOf(%d) = %v, want %v", tc.hw, got, tc.want)
		}
	}
	if None.String() != "None" || Canceled.String() != "Canceled" {
		t.Error("unexpected Phase names")
	}
}
