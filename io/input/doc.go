// SPDX-License-Identifier: Unlicense OR MIT

/*
Package input models the raw per-frame pointer state a host supplies.

A [Source] is a read-only view of one frame: the list of touches
reported by touch hardware and the state of the primary mouse
button. Sources are advanced by their host once per frame, and
readers see a stable snapshot in between.

[Snapshot] is a plain frame value. [Router] builds snapshots from
the pointer events of event driven hosts. [Mux] selects between a
local and a remote source of touches.
*/
package input
