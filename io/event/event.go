// SPDX-License-Identifier: Unlicense OR MIT

// Package event contains the marker type for host input events.
package event

// Event is the marker interface for events.
type Event interface {
	ImplementsEvent()
}
