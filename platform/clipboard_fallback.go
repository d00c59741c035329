//go:build !darwin && !windows

package platform

type fallbackClipboard struct{}

// NewClipboard creates a no-op clipboard binding.
func NewClipboard() Clipboard {
	return &fallbackClipboard{}
}

func (c *fallbackClipboard) Get() (string, error) {
	return "", ErrUnsupported
}

func (c *fallbackClipboard) Set(text string) error {
	return ErrUnsupported
}
