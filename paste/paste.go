// Package paste delivers text to the focused application by staging it on
// the clipboard and simulating the paste keystroke.
package paste

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mjenior/pasteprompt/platform"
)

const (
	// settleDelay lets the clipboard write propagate before the keystroke.
	settleDelay = 50 * time.Millisecond
	// restoreDelay gives the target application time to consume the pasted
	// value before the original clipboard comes back.
	restoreDelay = 300 * time.Millisecond
)

// Sequencer orchestrates save-clipboard, write-snippet, paste-keystroke,
// restore-clipboard. A single Sequencer is safe for sequential use; there is
// no cancellation for an in-flight sequence.
type Sequencer struct {
	clipboard    platform.Clipboard
	paster       platform.Paster
	restore      bool
	settleDelay  time.Duration
	restoreDelay time.Duration
}

// NewSequencer creates a sequencer. When restore is set, the clipboard's
// prior content is put back after each paste.
func NewSequencer(clipboard platform.Clipboard, paster platform.Paster, restore bool) *Sequencer {
	return &Sequencer{
		clipboard:    clipboard,
		paster:       paster,
		restore:      restore,
		settleDelay:  settleDelay,
		restoreDelay: restoreDelay,
	}
}

// PasteText writes text to the clipboard and simulates the paste keystroke.
//
// With restoration enabled the clipboard ends up holding its original
// content once the restore delay has elapsed; until then it transiently
// holds text, and an observer racing the deferred restore may see either
// value. Returns nil on success.
func (s *Sequencer) PasteText(text string) error {
	var original string
	hadOriginal := false
	if s.restore {
		content, err := s.clipboard.Get()
		if err != nil {
			slog.Warn("Failed to read clipboard, nothing to restore", "error", err)
		} else {
			original = content
			hadOriginal = true
		}
	}

	if err := s.clipboard.Set(text); err != nil {
		return fmt.Errorf("failed to set clipboard: %w", err)
	}

	time.Sleep(s.settleDelay)

	if err := s.paster.Paste(); err != nil {
		if hadOriginal {
			if restoreErr := s.clipboard.Set(original); restoreErr != nil {
				slog.Warn("Failed to restore clipboard", "error", restoreErr)
			}
		}
		return fmt.Errorf("failed to simulate paste: %w", err)
	}

	if s.restore && hadOriginal {
		// Deferred so the caller (a menu click handler) returns immediately.
		time.AfterFunc(s.restoreDelay, func() {
			if err := s.clipboard.Set(original); err != nil {
				slog.Warn("Failed to restore clipboard", "error", err)
				return
			}
			slog.Debug("Restored original clipboard content")
		})
	}

	return nil
}
