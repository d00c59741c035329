package launchagent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlist_ProgramArguments(t *testing.T) {
	plist := Plist(Options{
		Invoker:          "/usr/local/bin/pasteprompt",
		Hotkey:           "cmd+shift+p",
		RestoreClipboard: true,
	})

	assert.Contains(t, plist, "<string>"+Label+"</string>")
	assert.Contains(t, plist, "<string>/usr/local/bin/pasteprompt</string>")
	assert.Contains(t, plist, "<string>menubar</string>")
	assert.Contains(t, plist, "<string>start</string>")
	assert.Contains(t, plist, "<string>cmd+shift+p</string>")
	assert.NotContains(t, plist, "--config")
	assert.NotContains(t, plist, "--no-restore-clipboard")
}

func TestPlist_OptionalArguments(t *testing.T) {
	plist := Plist(Options{
		Invoker:          "/usr/local/bin/pasteprompt",
		ConfigPath:       "/home/me/prompts.yaml",
		Hotkey:           "ctrl+alt+v",
		RestoreClipboard: false,
	})

	assert.Contains(t, plist, "<string>--config</string>")
	assert.Contains(t, plist, "<string>/home/me/prompts.yaml</string>")
	assert.Contains(t, plist, "<string>--no-restore-clipboard</string>")

	// --config must come before --hotkey so the argument order matches the
	// command's flag parsing in logs and ps output.
	assert.Less(t, strings.Index(plist, "--config"), strings.Index(plist, "--hotkey"))
}

func TestPlist_SessionConstraints(t *testing.T) {
	plist := Plist(Options{Invoker: "/bin/x", Hotkey: "cmd+shift+p"})

	assert.Contains(t, plist, "<key>RunAtLoad</key>\n    <true/>")
	assert.Contains(t, plist, "<key>SuccessfulExit</key>")
	assert.Contains(t, plist, "<string>Interactive</string>")
	assert.Contains(t, plist, "<string>Aqua</string>")
	assert.Contains(t, plist, "pasteprompt.log")
	assert.Contains(t, plist, "pasteprompt.error.log")
}

func TestPlist_EscapesArguments(t *testing.T) {
	plist := Plist(Options{
		Invoker: "/path/with <angle> & ampersand/pasteprompt",
		Hotkey:  "cmd+shift+p",
	})

	assert.Contains(t, plist, "&lt;angle&gt;")
	assert.Contains(t, plist, "&amp;")
	assert.NotContains(t, plist, "<angle>")
}

func TestPlistPath(t *testing.T) {
	assert.True(t, strings.HasSuffix(PlistPath(), "Library/LaunchAgents/"+Label+".plist"))
}
