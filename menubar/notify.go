package menubar

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
)

// notify shows a user-facing notification when enabled, falling back to the
// log on platforms without a notification command.
func (a *App) notify(title, message string) {
	if !a.opts.ShowNotifications {
		return
	}

	switch runtime.GOOS {
	case "darwin":
		script := fmt.Sprintf("display notification %q with title %q", message, title)
		if err := exec.Command("osascript", "-e", script).Run(); err != nil {
			slog.Warn("Failed to show notification", "error", err)
		}
	case "linux":
		if err := exec.Command("notify-send", title, message).Run(); err != nil {
			slog.Warn("Failed to show notification", "error", err)
		}
	default:
		slog.Info("Notification", "title", title, "message", message)
	}
}
