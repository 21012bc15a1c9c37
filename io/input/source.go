// SPDX-License-Identifier: Unlicense OR MIT

package input

import (
	"touchutil.org/io/pointer"
)

// Source is the raw input of one frame.
type Source interface {
	// TouchCount returns the number of touches in the frame,
	// including touches that ended or were canceled in it.
	TouchCount() int
	// Touch returns touch i, or the zero Touch if i is out of
	// range.
	Touch(i int) pointer.Touch
	// Button returns the state of the primary mouse button.
	Button() pointer.Button
}

// Snapshot is a Source holding a single frame.
type Snapshot struct {
	// Touches in the order the host reports them. Index 0 is
	// the primary touch.
	Touches []pointer.Touch
	Mouse   pointer.Button
}

// Mux is a Source that reads touches from Remote while UseRemote
// reports true, and from Local otherwise. The mouse is always read
// from Local.
type Mux struct {
	Local     Source
	Remote    Source
	UseRemote func() bool
}

func (s Snapshot) TouchCount() int {
	return len(s.Touches)
}

func (s Snapshot) Touch(i int) pointer.Touch {
	if i < 0 || i >= len(s.Touches) {
		return pointer.Touch{}
	}
	return s.Touches[i]
}

func (s Snapshot) Button() pointer.Button {
	return s.Mouse
}

func (m *Mux) touches() Source {
	if m.Remote != nil && m.UseRemote != nil && m.UseRemote() {
		return m.Remote
	}
	return m.Local
}

func (m *Mux) TouchCount() int {
	return m.touches().TouchCount()
}

func (m *Mux) Touch(i int) pointer.Touch {
	return m.touches().Touch(i)
}

func (m *Mux) Button() pointer.Button {
	return m.Local.Button()
}
