// SPDX-License-Identifier: Unlicense OR MIT

// Package hwtouch detects native touch screen hardware.
package hwtouch

import "sync"

var (
	once    sync.Once
	present bool
)

// Present reports whether the device has a touch screen. The probe
// runs once per process.
func Present() bool {
	once.Do(func() {
		present = probe()
	})
	return present
}
