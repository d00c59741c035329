package paste

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClipboard struct {
	mu      sync.Mutex
	content string
	getErr  error
	setErr  error
	sets    []string
}

func (f *fakeClipboard) Get() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return "", f.getErr
	}
	return f.content, nil
}

func (f *fakeClipboard) Set(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.content = text
	f.sets = append(f.sets, text)
	return nil
}

func (f *fakeClipboard) current() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.content
}

type fakePaster struct {
	mu     sync.Mutex
	err    error
	pastes int
	seen   string
}

func (f *fakePaster) paste(clip *fakeClipboard) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.pastes++
	f.seen = clip.current()
	return nil
}

// pasterFunc adapts a closure to the Paster interface.
type pasterFunc func() error

func (fn pasterFunc) Paste() error { return fn() }

func newTestSequencer(clip *fakeClipboard, paster *fakePaster, restore bool) *Sequencer {
	s := NewSequencer(clip, pasterFunc(func() error { return paster.paste(clip) }), restore)
	s.settleDelay = time.Millisecond
	s.restoreDelay = 5 * time.Millisecond
	return s
}

func TestPasteText_RestoresOriginal(t *testing.T) {
	clip := &fakeClipboard{content: "original"}
	paster := &fakePaster{}
	s := newTestSequencer(clip, paster, true)

	require.NoError(t, s.PasteText("snippet"))

	// The keystroke fired while the snippet was on the clipboard.
	assert.Equal(t, 1, paster.pastes)
	assert.Equal(t, "snippet", paster.seen)

	require.Eventually(t, func() bool {
		return clip.current() == "original"
	}, time.Second, time.Millisecond, "original clipboard content never came back")
}

func TestPasteText_NoRestore(t *testing.T) {
	clip := &fakeClipboard{content: "original"}
	paster := &fakePaster{}
	s := newTestSequencer(clip, paster, false)

	require.NoError(t, s.PasteText("snippet"))

	// The snippet stays on the clipboard.
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, "snippet", clip.current())
}

func TestPasteText_ClipboardReadFailureStillPastes(t *testing.T) {
	clip := &fakeClipboard{getErr: errors.New("pbpaste unavailable")}
	paster := &fakePaster{}
	s := newTestSequencer(clip, paster, true)

	require.NoError(t, s.PasteText("snippet"))
	assert.Equal(t, 1, paster.pastes)

	// Nothing to restore; the snippet remains.
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, "snippet", clip.current())
}

func TestPasteText_ClipboardWriteFailureAborts(t *testing.T) {
	clip := &fakeClipboard{setErr: errors.New("pbcopy unavailable")}
	paster := &fakePaster{}
	s := newTestSequencer(clip, paster, true)

	err := s.PasteText("snippet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to set clipboard")
	assert.Zero(t, paster.pastes)
}

func TestPasteText_KeystrokeFailureRestoresImmediately(t *testing.T) {
	clip := &fakeClipboard{content: "original"}
	paster := &fakePaster{err: errors.New("event post rejected")}
	s := newTestSequencer(clip, paster, true)

	err := s.PasteText("snippet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to simulate paste")

	// Restore happens synchronously on the failure path.
	assert.Equal(t, "original", clip.current())
}

func TestPasteText_SequentialUse(t *testing.T) {
	clip := &fakeClipboard{content: "original"}
	paster := &fakePaster{}
	s := newTestSequencer(clip, paster, true)

	require.NoError(t, s.PasteText("first"))
	require.Eventually(t, func() bool {
		return clip.current() == "original"
	}, time.Second, time.Millisecond)

	require.NoError(t, s.PasteText("second"))
	assert.Equal(t, 2, paster.pastes)
	require.Eventually(t, func() bool {
		return clip.current() == "original"
	}, time.Second, time.Millisecond)
}
