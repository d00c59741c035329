// Package hotkey registers global keyboard shortcuts over a system-wide
// event tap.
package hotkey

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/mjenior/pasteprompt/platform"
)

// Combo is a canonical (key code, modifier mask) pair. The pairing is unique
// as a map key; registering the same combination twice overwrites silently.
type Combo struct {
	Code uint16
	Mods uint64
}

// keyCodes maps key names to macOS virtual key codes, the canonical codes
// used throughout; other platform bindings translate into them.
var keyCodes = map[string]uint16{
	"a": 0, "b": 11, "c": 8, "d": 2, "e": 14, "f": 3, "g": 5, "h": 4,
	"i": 34, "j": 38, "k": 40, "l": 37, "m": 46, "n": 45, "o": 31,
	"p": 35, "q": 12, "r": 15, "s": 1, "t": 17, "u": 32, "v": 9,
	"w": 13, "x": 7, "y": 16, "z": 6,
	"1": 18, "2": 19, "3": 20, "4": 21, "5": 23, "6": 22, "7": 26,
	"8": 28, "9": 25, "0": 29,
	"space": 49, "return": 36, "tab": 48, "escape": 53,
	"up": 126, "down": 125, "left": 123, "right": 124,
	"delete": 51, "forwarddelete": 117,
	"f1": 122, "f2": 120, "f3": 99, "f4": 118, "f5": 96, "f6": 97,
	"f7": 98, "f8": 100, "f9": 101, "f10": 109, "f11": 103, "f12": 111,
}

var modifierFlags = map[string]uint64{
	"cmd":     platform.FlagCommand,
	"command": platform.FlagCommand,
	"shift":   platform.FlagShift,
	"ctrl":    platform.FlagControl,
	"control": platform.FlagControl,
	"alt":     platform.FlagOption,
	"option":  platform.FlagOption,
	"opt":     platform.FlagOption,
}

var modifierSymbols = map[string]string{
	"cmd": "⌘", "command": "⌘",
	"shift": "⇧",
	"ctrl":  "⌃", "control": "⌃",
	"alt": "⌥", "option": "⌥", "opt": "⌥",
}

// ErrUnknownToken reports a combo token matching neither the key nor the
// modifier table.
var ErrUnknownToken = errors.New("unknown key or modifier")

// ErrNoKey reports a combo that contains only modifiers.
var ErrNoKey = errors.New("no key specified")

// Parse converts a human-readable combination like "cmd+shift+p" into a
// canonical Combo. Parsing is case-insensitive and whitespace-tolerant.
func Parse(combo string) (Combo, error) {
	parts := strings.Split(strings.ReplaceAll(strings.ToLower(combo), " ", ""), "+")

	var result Combo
	haveKey := false
	for _, part := range parts {
		if mod, ok := modifierFlags[part]; ok {
			result.Mods |= mod
			continue
		}
		if code, ok := keyCodes[part]; ok {
			result.Code = code
			haveKey = true
			continue
		}
		return Combo{}, fmt.Errorf("%w: %q in hotkey %q", ErrUnknownToken, part, combo)
	}
	if !haveKey {
		return Combo{}, fmt.Errorf("%w in hotkey %q", ErrNoKey, combo)
	}
	return result, nil
}

// Format renders a combo string with macOS symbols, e.g. "cmd+shift+p" to
// "⌘⇧P".
func Format(combo string) string {
	parts := strings.Split(strings.ReplaceAll(strings.ToLower(combo), " ", ""), "+")

	var b strings.Builder
	key := ""
	for _, part := range parts {
		if sym, ok := modifierSymbols[part]; ok {
			b.WriteString(sym)
			continue
		}
		key = strings.ToUpper(part)
	}
	b.WriteString(key)
	return b.String()
}

// Manager owns the registration map and the event tap lifecycle. The map is
// read by the interception path concurrently with Register/Unregister, so
// every access goes through the mutex.
type Manager struct {
	mu      sync.Mutex
	tap     platform.EventTap
	hotkeys map[Combo]func()
	running bool
}

// NewManager creates a manager over the given event tap.
func NewManager(tap platform.EventTap) *Manager {
	return &Manager{
		tap:     tap,
		hotkeys: make(map[Combo]func()),
	}
}

// Register parses the combo string and binds callback to it, overwriting any
// existing registration for the same combination.
func (m *Manager) Register(combo string, callback func()) error {
	parsed, err := Parse(combo)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.hotkeys[parsed] = callback
	m.mu.Unlock()

	slog.Info("Registered hotkey", "combo", combo, "display", Format(combo))
	return nil
}

// Unregister removes the combo's registration. Unknown or unregistered
// combos are a no-op.
func (m *Manager) Unregister(combo string) {
	parsed, err := Parse(combo)
	if err != nil {
		return
	}

	m.mu.Lock()
	delete(m.hotkeys, parsed)
	m.mu.Unlock()
}

// Start installs the event tap. It returns false when no hotkeys are
// registered or when installation fails (typically missing Accessibility
// permission); callers must offer a non-hotkey fallback in that case.
func (m *Manager) Start() bool {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return true
	}
	if len(m.hotkeys) == 0 {
		m.mu.Unlock()
		slog.Warn("No hotkeys registered, not starting listener")
		return false
	}
	m.mu.Unlock()

	if err := m.tap.Start(m.onKeyDown); err != nil {
		slog.Error("Failed to install event tap", "error", err)
		return false
	}

	m.mu.Lock()
	m.running = true
	m.mu.Unlock()

	slog.Info("Hotkey listener started")
	return true
}

// onKeyDown matches an observed key-down against the registrations. On a
// match the callback runs on its own goroutine so the interception path is
// never blocked, and the event is consumed.
func (m *Manager) onKeyDown(evt platform.KeyEvent) bool {
	combo := Combo{Code: evt.Code, Mods: evt.Flags & platform.ModifierMask}

	m.mu.Lock()
	callback, ok := m.hotkeys[combo]
	m.mu.Unlock()

	if !ok {
		return false
	}

	slog.Debug("Hotkey triggered", "keycode", combo.Code, "modifiers", fmt.Sprintf("0x%x", combo.Mods))
	go callback()
	return true
}

// Stop disables the tap and joins its event loop. The manager keeps its
// registrations and can be started again.
func (m *Manager) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	m.mu.Unlock()

	m.tap.Stop()
	slog.Info("Hotkey listener stopped")
}

// Running reports whether the listener is active.
func (m *Manager) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}
