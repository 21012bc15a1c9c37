// SPDX-License-Identifier: Unlicense OR MIT

//go:build linux && !android
// +build linux,!android

package hwtouch

import (
	"path/filepath"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Linux input constants, from linux/input-event-codes.h.
const (
	_EV_ABS            = 0x03
	_ABS_X             = 0x00
	_ABS_MT_POSITION_X = 0x35
	_ABS_CNT           = 0x40

	_INPUT_PROP_DIRECT = 0x01
	_INPUT_PROP_CNT    = 0x20
)

// ioctl request encoding, from linux/ioctl.h.
const (
	iocNRShift   = 0
	iocTypeShift = iocNRShift + 8
	iocSizeShift = iocTypeShift + 8
	iocDirShift  = iocSizeShift + 14

	iocRead = 2
)

func ioc(dir, typ, nr, size uintptr) uintptr {
	return dir<<iocDirShift | typ<<iocTypeShift | nr<<iocNRShift | size<<iocSizeShift
}

// evioCGProp is EVIOCGPROP(len).
func evioCGProp(n int) uintptr { return ioc(iocRead, 'E', 0x09, uintptr(n)) }

// evioCGBit is EVIOCGBIT(ev, len).
func evioCGBit(ev, n int) uintptr { return ioc(iocRead, 'E', 0x20+uintptr(ev), uintptr(n)) }

func probe() bool {
	devs, _ := filepath.Glob("/dev/input/event*")
	for _, dev := range devs {
		if isTouchscreen(dev) {
			return true
		}
	}
	return false
}

// isTouchscreen reports whether the device is a direct input device
// with absolute positions, which is how the kernel describes touch
// screens as opposed to touch pads.
func isTouchscreen(dev string) bool {
	fd, err := unix.Open(dev, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return false
	}
	defer unix.Close(fd)
	props := make([]byte, _INPUT_PROP_CNT/8)
	if ioctlBits(fd, evioCGProp(len(props)), props) != nil {
		return false
	}
	abs := make([]byte, _ABS_CNT/8)
	if ioctlBits(fd, evioCGBit(_EV_ABS, len(abs)), abs) != nil {
		return false
	}
	return hasTouchAxes(props, abs)
}

func hasTouchAxes(props, abs []byte) bool {
	return testBit(props, _INPUT_PROP_DIRECT) &&
		(testBit(abs, _ABS_MT_POSITION_X) || testBit(abs, _ABS_X))
}

func ioctlBits(fd int, req uintptr, buf []byte) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(unsafe.Pointer(&buf[0])))
	if errno != 0 {
		return errno
	}
	return nil
}

func testBit(bits []byte, n int) bool {
	if n/8 >= len(bits) {
		return false
	}
	return bits[n/8]&(1<<(uint(n)%8)) != 0
}
