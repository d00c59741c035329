//go:build windows

package platform

import (
	"fmt"
	"time"
	"unsafe"
)

var (
	sendInput      = user32.NewProc("SendInput")
	mapVirtualKeyW = user32.NewProc("MapVirtualKeyW")
)

const (
	inputKeyboard  = 1
	keyeventfKeyup = 0x0002
	mapvkVkToVsc   = 0
	vkControl      = 0x11
	vkV            = 0x56
)

type keyboardInput struct {
	wVk         uint16
	wScan       uint16
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

type input struct {
	inputType uint32
	ki        keyboardInput
	padding   [8]byte // pad to the C INPUT struct size
}

type windowsPaster struct{}

// NewPaster creates the Windows paste keystroke binding.
func NewPaster() Paster {
	return &windowsPaster{}
}

// Paste simulates Ctrl+V. Scan codes are included for compatibility with
// elevated applications.
func (p *windowsPaster) Paste() error {
	ctrlScan, _, _ := mapVirtualKeyW.Call(vkControl, mapvkVkToVsc)
	vScan, _, _ := mapVirtualKeyW.Call(vkV, mapvkVkToVsc)

	inputs := []input{
		{inputType: inputKeyboard, ki: keyboardInput{wVk: vkControl, wScan: uint16(ctrlScan)}},
		{inputType: inputKeyboard, ki: keyboardInput{wVk: vkV, wScan: uint16(vScan)}},
		{inputType: inputKeyboard, ki: keyboardInput{wVk: vkV, wScan: uint16(vScan), dwFlags: keyeventfKeyup}},
		{inputType: inputKeyboard, ki: keyboardInput{wVk: vkControl, wScan: uint16(ctrlScan), dwFlags: keyeventfKeyup}},
	}

	ret, _, err := sendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)
	if ret == 0 {
		return fmt.Errorf("SendInput failed: %w", err)
	}

	time.Sleep(20 * time.Millisecond)
	return nil
}
