//go:build windows

package platform

import (
	"fmt"
	"runtime"
	"sync"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	setWindowsHookEx    = user32.NewProc("SetWindowsHookExW")
	callNextHookEx      = user32.NewProc("CallNextHookEx")
	unhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	peekMessage         = user32.NewProc("PeekMessageW")
	getAsyncKeyState    = user32.NewProc("GetAsyncKeyState")
)

const (
	whKeyboardLL = 13
	wmKeydown    = 0x0100
	wmSyskeydown = 0x0104
	pmRemove     = 0x0001
)

const (
	vkShift = 0x10
	vkCtrl  = 0x11
	vkAlt   = 0x12
	vkLwin  = 0x5B
	vkRwin  = 0x5C
)

type kbdllhookstruct struct {
	vkCode      uint32
	scanCode    uint32
	flags       uint32
	time        uint32
	dwExtraInfo uintptr
}

type msg struct {
	hwnd    uintptr
	message uint32
	wParam  uintptr
	lParam  uintptr
	time    uint32
	pt      struct{ x, y int32 }
}

// vkToKeyCode translates Windows virtual key codes into the canonical key
// codes used by the hotkey tables.
var vkToKeyCode = map[uint32]uint16{
	0x41: 0, 0x42: 11, 0x43: 8, 0x44: 2, 0x45: 14, 0x46: 3, 0x47: 5,
	0x48: 4, 0x49: 34, 0x4A: 38, 0x4B: 40, 0x4C: 37, 0x4D: 46, 0x4E: 45,
	0x4F: 31, 0x50: 35, 0x51: 12, 0x52: 15, 0x53: 1, 0x54: 17, 0x55: 32,
	0x56: 9, 0x57: 13, 0x58: 7, 0x59: 16, 0x5A: 6,
	0x31: 18, 0x32: 19, 0x33: 20, 0x34: 21, 0x35: 23, 0x36: 22, 0x37: 26,
	0x38: 28, 0x39: 25, 0x30: 29,
	0x20: 49, 0x0D: 36, 0x09: 48, 0x1B: 53,
	0x26: 126, 0x28: 125, 0x25: 123, 0x27: 124,
	0x08: 51, 0x2E: 117,
	0x70: 122, 0x71: 120, 0x72: 99, 0x73: 118, 0x74: 96, 0x75: 97,
	0x76: 98, 0x77: 100, 0x78: 101, 0x79: 109, 0x7A: 103, 0x7B: 111,
}

// Only one low-level hook is installed per process; the hook procedure
// routes through this registration.
var (
	tapMu     sync.Mutex
	activeTap *windowsEventTap
)

// windowsEventTap installs a low-level keyboard hook and pumps its message
// loop on a dedicated OS thread.
type windowsEventTap struct {
	handler func(KeyEvent) bool
	hook    uintptr
	done    chan struct{}
	stopped chan struct{}
}

// NewEventTap creates the Windows event tap binding.
func NewEventTap() EventTap {
	return &windowsEventTap{}
}

func (t *windowsEventTap) Start(handler func(KeyEvent) bool) error {
	tapMu.Lock()
	if activeTap != nil {
		tapMu.Unlock()
		return fmt.Errorf("keyboard hook already installed")
	}
	t.handler = handler
	t.done = make(chan struct{})
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

func (t *windowsEventTap) run(errCh chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	hookProc := func(nCode int32, wParam uintptr, lParam uintptr) uintptr {
		if nCode >= 0 && (wParam == wmKeydown || wParam == wmSyskeydown) {
			kbInfo := (*kbdllhookstruct)(unsafe.Pointer(lParam))
			if code, ok := vkToKeyCode[kbInfo.vkCode]; ok {
				if t.handler(KeyEvent{Code: code, Flags: currentModifierFlags()}) {
					return 1 // consume
				}
			}
		}
		r, _, _ := callNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
		return r
	}

	hook, _, err := setWindowsHookEx.Call(
		whKeyboardLL,
		windows.NewCallback(hookProc),
		0,
		0,
	)
	if hook == 0 {
		errCh <- fmt.Errorf("SetWindowsHookEx failed: %w", err)
		close(t.stopped)
		return
	}

	tapMu.Lock()
	t.hook = hook
	tapMu.Unlock()

	errCh <- nil

	var m msg
	for {
		select {
		case <-t.done:
			close(t.stopped)
			return
		default:
			r, _, _ := peekMessage.Call(
				uintptr(unsafe.Pointer(&m)),
				0,
				0,
				0,
				pmRemove,
			)
			if r != 0 {
				continue
			}
			runtime.Gosched()
		}
	}
}

func (t *windowsEventTap) Stop() {
	tapMu.Lock()
	if activeTap != t {
		tapMu.Unlock()
		return
	}
	activeTap = nil
	hook := t.hook
	t.hook = 0
	tapMu.Unlock()

	if hook != 0 {
		unhookWindowsHookEx.Call(hook)
	}
	close(t.done)

	select {
	case <-t.stopped:
	case <-time.After(time.Second):
	}
}

// currentModifierFlags synthesizes the canonical modifier mask from the
// async key state. The Windows key stands in for command.
func currentModifierFlags() uint64 {
	var flags uint64
	if keyPressed(vkShift) {
		flags |= FlagShift
	}
	if keyPressed(vkCtrl) {
		flags |= FlagControl
	}
	if keyPressed(vkAlt) {
		flags |= FlagOption
	}
	if keyPressed(vkLwin) || keyPressed(vkRwin) {
		flags |= FlagCommand
	}
	return flags
}

func keyPressed(vk int) bool {
	r, _, _ := getAsyncKeyState.Call(uintptr(vk))
	return r&0x8000 != 0
}

// AccessibilityTrusted always reports true: low-level hooks need no special
// permission on Windows.
func AccessibilityTrusted() bool { return true }

// RequestAccessibility is a no-op on Windows.
func RequestAccessibility() {}
