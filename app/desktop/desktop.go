// SPDX-License-Identifier: Unlicense OR MIT

/*
Package desktop reads the global desktop mouse.

Button presses and releases are received from a system wide hook,
so the feed works without a window of its own. The cursor location
is sampled once per frame.
*/
package desktop

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-vgo/robotgo"
	"github.com/kataras/golog"
	hook "github.com/robotn/gohook"

	"touchutil.org/f32"
	"touchutil.org/io/input"
	"touchutil.org/io/pointer"
)

var logger = golog.Child("[desktop]")

// leftButton is the hook's code for the primary button.
const leftButton = 1

// Feed is an input.Source of the desktop mouse. Feeds never report
// touches.
type Feed struct {
	r     input.Router
	start time.Time
	done  chan struct{}
	once  sync.Once
}

// Start installs the global hook and starts receiving events.
// There can be only one running Feed per process.
func Start() *Feed {
	f := &Feed{
		start: time.Now(),
		done:  make(chan struct{}),
	}
	events := hook.Start()
	go f.run(events)
	logger.Info("mouse hook started")
	return f
}

func (f *Feed) run(events chan hook.Event) {
	for {
		select {
		case <-f.done:
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			if pe, ok := pointerEvent(e, time.Since(f.start)); ok {
				logger.Debug(describe(pe))
				f.r.Queue(pe)
			}
		}
	}
}

// Frame samples the cursor and closes the current frame.
func (f *Feed) Frame() input.Snapshot {
	x, y := robotgo.Location()
	f.r.Queue(pointer.Event{
		Kind:     pointer.Move,
		Source:   pointer.SourceMouse,
		Time:     time.Since(f.start),
		Position: f32.Pt(float32(x), float32(y)),
	})
	return f.r.Frame()
}

// Close removes the hook.
func (f *Feed) Close() {
	f.once.Do(func() {
		close(f.done)
		hook.End()
		logger.Info("mouse hook stopped")
	})
}

func (f *Feed) TouchCount() int {
	return 0
}

func (f *Feed) Touch(i int) pointer.Touch {
	return pointer.Touch{}
}

func (f *Feed) Button() pointer.Button {
	return f.r.Button()
}

// pointerEvent converts a hook event. The hook numbers mouse events
// after libuiohook: MouseHold is the press, MouseDown the release and
// MouseUp the click reported after it.
func pointerEvent(e hook.Event, t time.Duration) (pointer.Event, bool) {
	pe := pointer.Event{
		Source:   pointer.SourceMouse,
		Time:     t,
		Position: f32.Pt(float32(e.X), float32(e.Y)),
	}
	switch e.Kind {
	case hook.MouseHold:
		if e.Button != leftButton {
			return pointer.Event{}, false
		}
		pe.Kind = pointer.Press
		pe.Buttons = pointer.ButtonPrimary
	case hook.MouseDown:
		if e.Button != leftButton {
			return pointer.Event{}, false
		}
		pe.Kind = pointer.Release
	case hook.MouseMove:
		pe.Kind = pointer.Move
	case hook.MouseDrag:
		pe.Kind = pointer.Drag
	default:
		return pointer.Event{}, false
	}
	return pe, true
}

// describe formats a hook event for the debug log.
func describe(e pointer.Event) string {
	return fmt.Sprintf("%v %v at %v buttons=%v t=%v", e.Source, e.Kind, e.Position, e.Buttons, e.Time)
}
