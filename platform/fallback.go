//go:build (darwin && !cgo) || (!darwin && !windows)

package platform

// Fallback bindings for builds without a functional keyboard integration.
// Callers detect the condition through the returned errors and fall back to
// non-hotkey interaction.

type fallbackEventTap struct{}

// NewEventTap creates a no-op event tap binding.
func NewEventTap() EventTap {
	return &fallbackEventTap{}
}

func (t *fallbackEventTap) Start(handler func(KeyEvent) bool) error {
	return ErrUnsupported
}

func (t *fallbackEventTap) Stop() {}

type fallbackPaster struct{}

// NewPaster creates a no-op paste keystroke binding.
func NewPaster() Paster {
	return &fallbackPaster{}
}

func (p *fallbackPaster) Paste() error {
	return ErrUnsupported
}

// AccessibilityTrusted reports true so callers do not prompt for a
// permission that does not exist on this build.
func AccessibilityTrusted() bool { return true }

// RequestAccessibility is a no-op on this build.
func RequestAccessibility() {}
