//go:build darwin

package platform

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
)

// darwinClipboard shells out to pbcopy/pbpaste, which handle pasteboard
// ownership and type negotiation without requiring any permissions.
type darwinClipboard struct{}

// NewClipboard creates the macOS clipboard binding.
func NewClipboard() Clipboard {
	return &darwinClipboard{}
}

func utf8Env() []string {
	return append(os.Environ(), "LANG=en_US.UTF-8")
}

func (c *darwinClipboard) Get() (string, error) {
	cmd := exec.Command("pbpaste")
	cmd.Env = utf8Env()
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pbpaste failed: %w", err)
	}
	return string(out), nil
}

func (c *darwinClipboard) Set(text string) error {
	cmd := exec.Command("pbcopy")
	cmd.Env = utf8Env()
	cmd.Stdin = bytes.NewReader([]byte(text))
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("pbcopy failed: %w", err)
	}
	return nil
}
