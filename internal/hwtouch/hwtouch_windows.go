// SPDX-License-Identifier: Unlicense OR MIT

package hwtouch

import (
	"golang.org/x/sys/windows"
)

const _SM_MAXIMUMTOUCHES = 95

var (
	user32            = windows.NewLazySystemDLL("user32.dll")
	_GetSystemMetrics = user32.NewProc("GetSystemMetrics")
)

func probe() bool {
	if err := _GetSystemMetrics.Find(); err != nil {
		return false
	}
	n, _, _ := _GetSystemMetrics.Call(_SM_MAXIMUMTOUCHES)
	return n > 0
}
