//go:build darwin && cgo

package platform

/*
#cgo LDFLAGS: -framework ApplicationServices
#include <ApplicationServices/ApplicationServices.h>
*/
import "C"

import "os/exec"

// AccessibilityTrusted reports whether the process may intercept and post
// keyboard events.
func AccessibilityTrusted() bool {
	return bool(C.AXIsProcessTrusted())
}

// RequestAccessibility opens System Settings at the Accessibility privacy
// pane so the user can grant permission.
func RequestAccessibility() {
	exec.Command("open",
		"x-apple.systempreferences:com.apple.preference.security?Privacy_Accessibility").Run()
}
