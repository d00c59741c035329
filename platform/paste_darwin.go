//go:build darwin && cgo

package platform

/*
#cgo LDFLAGS: -framework ApplicationServices -framework CoreFoundation
#include <ApplicationServices/ApplicationServices.h>
*/
import "C"

import (
	"errors"
	"time"
)

// Virtual key code for 'V' on macOS.
const keyCodeV = 9

// darwinPaster posts a Cmd+V keystroke through the HID event tap. Requires
// Accessibility permission.
type darwinPaster struct{}

// NewPaster creates the macOS paste keystroke binding.
func NewPaster() Paster {
	return &darwinPaster{}
}

func (p *darwinPaster) Paste() error {
	down := C.CGEventCreateKeyboardEvent(nil, C.CGKeyCode(keyCodeV), C.bool(true))
	if down == nil {
		return errors.New("failed to create key down event")
	}
	C.CGEventSetFlags(down, C.CGEventFlags(C.kCGEventFlagMaskCommand))
	C.CGEventPost(C.kCGHIDEventTap, down)
	C.CFRelease(C.CFTypeRef(down))

	time.Sleep(10 * time.Millisecond)

	up := C.CGEventCreateKeyboardEvent(nil, C.CGKeyCode(keyCodeV), C.bool(false))
	if up == nil {
		return errors.New("failed to create key up event")
	}
	C.CGEventSetFlags(up, C.CGEventFlags(C.kCGEventFlagMaskCommand))
	C.CGEventPost(C.kCGHIDEventTap, up)
	C.CFRelease(C.CFTypeRef(up))

	return nil
}
