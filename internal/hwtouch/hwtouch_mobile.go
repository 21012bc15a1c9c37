// SPDX-License-Identifier: Unlicense OR MIT

//go:build android || ios
// +build android ios

package hwtouch

func probe() bool {
	return true
}
