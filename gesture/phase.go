// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"fmt"

	"touchutil.org/io/pointer"
)

// Phase is the phase of the primary pointer in a frame.
type Phase uint8

const (
	// None means there is no active pointer.
	None Phase = iota
	// Began is reported in the frame a gesture starts.
	Began
	// Moved is reported while the pointer moves. Mouse input
	// reports Moved for every frame the button is held.
	Moved
	// Stationary is reported while a touch rests on the screen.
	Stationary
	// Ended is reported in the frame the gesture ends.
	Ended
	// Canceled is reported when the system interrupted the
	// gesture.
	Canceled
)

// touchPhases maps every hardware touch phase to its gesture phase.
var touchPhases = [...]Phase{
	pointer.Began:      Began,
	pointer.Moved:      Moved,
	pointer.Stationary: Stationary,
	pointer.Ended:      Ended,
	pointer.Canceled:   Canceled,
}

func init() {
	if len(touchPhases) != int(pointer.Canceled)+1 {
		panic("gesture: touch phase table out of sync with pointer.Phase")
	}
}

func phaseOf(p pointer.Phase) Phase {
	if int(p) >= len(touchPhases) {
		return None
	}
	return touchPhases[p]
}

func (p Phase) String() string {
	switch p {
	case None:
		return "None"
	case Began:
		return "Began"
	case Moved:
		return "Moved"
	case Stationary:
		return "Stationary"
	case Ended:
		return "Ended"
	case Canceled:
		return "Canceled"
	default:
		panic(fmt.Sprintf("invalid Phase %d", uint8(p)))
	}
}
