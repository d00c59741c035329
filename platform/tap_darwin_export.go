//go:build darwin && cgo

package platform

/*
#include <ApplicationServices/ApplicationServices.h>
*/
import "C"

import "unsafe"

//export pastepromptTapCallback
func pastepromptTapCallback(proxy C.CGEventTapProxy, eventType C.CGEventType, event C.CGEventRef, refcon unsafe.Pointer) C.CGEventRef {
	if eventType != C.kCGEventKeyDown {
		return event
	}

	code := uint16(C.CGEventGetIntegerValueField(event, C.kCGKeyboardEventKeycode))
	flags := uint64(C.CGEventGetFlags(event))

	if dispatchKeyDown(code, flags) {
		// Returning NULL consumes the event.
		return nil
	}
	return event
}
