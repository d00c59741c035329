//go:build darwin && cgo

package platform

/*
#cgo LDFLAGS: -framework ApplicationServices -framework CoreFoundation
#include <ApplicationServices/ApplicationServices.h>

CGEventRef pastepromptTapCallback(CGEventTapProxy proxy, CGEventType type, CGEventRef event, void *refcon);

static CFMachPortRef pasteprompt_create_tap(void) {
	return CGEventTapCreate(kCGSessionEventTap, kCGHeadInsertEventTap,
		kCGEventTapOptionDefault, CGEventMaskBit(kCGEventKeyDown),
		pastepromptTapCallback, NULL);
}
*/
import "C"

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"
)

// Only one Quartz event tap may be active per process; the exported C
// callback routes through this registration.
var (
	tapMu     sync.Mutex
	activeTap *darwinEventTap
)

func dispatchKeyDown(code uint16, flags uint64) bool {
	tapMu.Lock()
	t := activeTap
	tapMu.Unlock()
	if t == nil {
		return false
	}
	return t.handler(KeyEvent{Code: code, Flags: flags})
}

// darwinEventTap installs a session-level Quartz event tap on a dedicated
// OS thread and pumps its run loop until stopped.
type darwinEventTap struct {
	handler func(KeyEvent) bool
	tap     C.CFMachPortRef
	runLoop C.CFRunLoopRef
	stopped chan struct{}
}

// NewEventTap creates the macOS event tap binding.
func NewEventTap() EventTap {
	return &darwinEventTap{}
}

func (t *darwinEventTap) Start(handler func(KeyEvent) bool) error {
	tapMu.Lock()
	if activeTap != nil {
		tapMu.Unlock()
		return errors.New("event tap already installed")
	}
	t.handler = handler
	t.stopped = make(chan struct{})
	activeTap = t
	tapMu.Unlock()

	errCh := make(chan error, 1)
	go t.run(errCh)

	if err := <-errCh; err != nil {
		tapMu.Lock()
		activeTap = nil
		tapMu.Unlock()
		return err
	}
	return nil
}

func (t *darwinEventTap) run(errCh chan<- error) {
	// The run loop and the tap's mach port must live on the same thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	tap := C.pasteprompt_create_tap()
	if tap == nil {
		errCh <- fmt.Errorf("failed to create event tap; grant Accessibility permission in System Settings > Privacy & Security > Accessibility")
		close(t.stopped)
		return
	}

	source := C.CFMachPortCreateRunLoopSource(C.kCFAllocatorDefault, tap, 0)

	tapMu.Lock()
	t.tap = tap
	t.runLoop = C.CFRunLoopGetCurrent()
	tapMu.Unlock()

	C.CFRunLoopAddSource(t.runLoop, source, C.kCFRunLoopCommonModes)
	C.CGEventTapEnable(tap, C.bool(true))

	errCh <- nil

	// Blocks until CFRunLoopStop from Stop.
	C.CFRunLoopRun()

	C.CFRelease(C.CFTypeRef(source))
	C.CFRelease(C.CFTypeRef(tap))
	close(t.stopped)
}

func (t *darwinEventTap) Stop() {
	tapMu.Lock()
	if activeTap != t {
		tapMu.Unlock()
		return
	}
	activeTap = nil
	tap := t.tap
	runLoop := t.runLoop
	t.tap = nil
	t.runLoop = nil
	tapMu.Unlock()

	if tap != nil {
		C.CGEventTapEnable(tap, C.bool(false))
	}
	if runLoop != nil {
		C.CFRunLoopStop(runLoop)
	}

	select {
	case <-t.stopped:
	case <-time.After(time.Second):
	}
}
