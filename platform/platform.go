// Package platform provides OS bindings for the clipboard, paste keystroke
// simulation, and system-wide keyboard event interception. Each capability
// has a functional binding selected at compile time and a no-op fallback for
// unsupported builds.
package platform

import "errors"

// Canonical modifier flag bits, matching CGEventFlags masks. Non-darwin
// bindings translate their native modifier state into these values.
const (
	FlagShift   uint64 = 0x20000
	FlagControl uint64 = 0x40000
	FlagOption  uint64 = 0x80000
	FlagCommand uint64 = 0x100000
)

// ModifierMask covers only the four tracked modifiers; other event flags
// (caps lock, fn, device-dependent bits) are ignored when matching hotkeys.
const ModifierMask = FlagShift | FlagControl | FlagOption | FlagCommand

// KeyEvent is a key-down observed by an event tap.
type KeyEvent struct {
	Code  uint16 // virtual key code
	Flags uint64 // raw modifier flags, unmasked
}

// EventTap intercepts system-wide key-down events before they reach any
// application. The handler returns true to consume the event and stop its
// propagation; unmatched events pass through unchanged.
type EventTap interface {
	// Start installs the interception point and begins delivering events on
	// a dedicated background thread. It blocks until the tap is installed or
	// installation fails.
	Start(handler func(KeyEvent) bool) error
	// Stop disables the tap and unwinds its event loop, joining with a
	// bounded timeout. The tap is restartable afterwards.
	Stop()
}

// Clipboard provides text clipboard access.
type Clipboard interface {
	Get() (string, error)
	Set(text string) error
}

// Paster simulates the platform paste keystroke.
type Paster interface {
	Paste() error
}

// ErrUnsupported is returned by fallback bindings on platforms without a
// functional implementation.
var ErrUnsupported = errors.New("not supported on this platform")
