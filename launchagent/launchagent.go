// Package launchagent installs a per-user LaunchAgent that starts the tray
// application on login.
package launchagent

import (
	"fmt"
	"html"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// Label identifies the agent to launchd.
const Label = "com.mjenior.pasteprompt"

// Dir returns the per-user LaunchAgents directory.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, "Library", "LaunchAgents")
}

// PlistPath returns the installed agent's plist location.
func PlistPath() string {
	return filepath.Join(Dir(), Label+".plist")
}

func logDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, "Library", "Logs")
}

// Options configure the generated agent.
type Options struct {
	// Invoker is the absolute path to the pasteprompt executable.
	Invoker string
	// ConfigPath pins an explicit prompts file when non-empty.
	ConfigPath string
	// Hotkey is the tray application's global hotkey combo.
	Hotkey string
	// RestoreClipboard mirrors the tray's restore-after-paste setting.
	RestoreClipboard bool
}

// Plist renders the LaunchAgent document: run at load, restart on crash,
// logs under ~/Library/Logs, GUI session only (the tray needs Accessibility
// and a window server).
func Plist(opts Options) string {
	args := []string{opts.Invoker, "menubar", "start"}
	if opts.ConfigPath != "" {
		args = append(args, "--config", opts.ConfigPath)
	}
	args = append(args, "--hotkey", opts.Hotkey)
	if !opts.RestoreClipboard {
		args = append(args, "--no-restore-clipboard")
	}

	var argStrings strings.Builder
	for _, arg := range args {
		argStrings.WriteString("        <string>" + html.EscapeString(arg) + "</string>\n")
	}

	logs := logDir()
	return `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>` + Label + `</string>
    <key>ProgramArguments</key>
    <array>
` + argStrings.String() + `    </array>
    <key>RunAtLoad</key>
    <true/>
    <key>KeepAlive</key>
    <dict>
        <key>SuccessfulExit</key>
        <false/>
    </dict>
    <key>StandardOutPath</key>
    <string>` + html.EscapeString(filepath.Join(logs, "pasteprompt.log")) + `</string>
    <key>StandardErrorPath</key>
    <string>` + html.EscapeString(filepath.Join(logs, "pasteprompt.error.log")) + `</string>
    <key>ProcessType</key>
    <string>Interactive</string>
    <key>LimitLoadToSessionType</key>
    <string>Aqua</string>
</dict>
</plist>`
}

// Install writes and loads the agent, replacing any existing installation.
// Returns the plist path.
func Install(opts Options) (string, error) {
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return "", fmt.Errorf("failed to create LaunchAgents directory: %w", err)
	}
	if err := os.MkdirAll(logDir(), 0o755); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}

	path := PlistPath()

	// Unload a previous installation first so launchd picks up the new
	// arguments.
	if _, err := os.Stat(path); err == nil {
		exec.Command("launchctl", "unload", path).Run()
	}

	if err := os.WriteFile(path, []byte(Plist(opts)), 0o644); err != nil {
		return "", fmt.Errorf("failed to write LaunchAgent plist: %w", err)
	}
	slog.Info("Created LaunchAgent", "path", path)

	out, err := exec.Command("launchctl", "load", path).CombinedOutput()
	if err != nil {
		slog.Warn("launchctl load returned non-zero", "output", strings.TrimSpace(string(out)))
	}

	return path, nil
}

// Uninstall unloads and removes the agent. Returns false when it was not
// installed.
func Uninstall() (bool, error) {
	path := PlistPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false, nil
	}

	out, err := exec.Command("launchctl", "unload", path).CombinedOutput()
	if err != nil {
		slog.Warn("launchctl unload returned non-zero", "output", strings.TrimSpace(string(out)))
	}

	if err := os.Remove(path); err != nil {
		return false, fmt.Errorf("failed to remove LaunchAgent plist: %w", err)
	}
	slog.Info("Removed LaunchAgent", "path", path)
	return true, nil
}

// Status describes the agent's installation and runtime state.
type Status struct {
	Installed bool
	PlistPath string
	Running   bool
	PID       int
}

// GetStatus inspects launchd (with a process-list fallback) for the agent.
func GetStatus() Status {
	status := Status{}

	path := PlistPath()
	if _, err := os.Stat(path); err == nil {
		status.Installed = true
		status.PlistPath = path
	}

	if out, err := exec.Command("launchctl", "list", Label).Output(); err == nil {
		for _, line := range strings.Split(string(out), "\n") {
			fields := strings.Fields(line)
			if len(fields) == 0 {
				continue
			}
			if pid, err := strconv.Atoi(fields[0]); err == nil {
				status.Running = true
				status.PID = pid
				break
			}
		}
	}

	if !status.Running {
		if out, err := exec.Command("pgrep", "-f", "pasteprompt.*menubar").Output(); err == nil {
			pids := strings.Fields(strings.TrimSpace(string(out)))
			if len(pids) > 0 {
				if pid, err := strconv.Atoi(pids[0]); err == nil {
					status.Running = true
					status.PID = pid
				}
			}
		}
	}

	return status
}
