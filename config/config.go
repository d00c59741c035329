// Package config resolves file locations and holds the tray application
// settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/mjenior/pasteprompt/prompts"
)

// EnvConfig overrides the prompts file location when set.
const EnvConfig = "PASTEPROMPT_CONFIG"

// EnvDebug enables verbose diagnostic logging when set to a truthy value.
const EnvDebug = "PASTEPROMPT_DEBUG"

// Dir returns the configuration directory (~/.config/pasteprompt).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", "pasteprompt")
}

// DefaultPromptsPath returns the default prompts.yaml location.
func DefaultPromptsPath() string {
	return filepath.Join(Dir(), "prompts.yaml")
}

// ServicesDir returns the directory the OS scans for service bundles.
func ServicesDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, "Library", "Services")
}

// ResolvePromptsPath locates the prompts configuration file.
//
// Precedence: the explicit argument (CLI flag), then PASTEPROMPT_CONFIG, then
// ~/.config/pasteprompt/prompts.yaml, then ./prompts.yaml. A location that is
// named explicitly but missing is an error rather than a fall-through.
func ResolvePromptsPath(explicit string) (string, error) {
	if explicit != "" {
		if fileExists(explicit) {
			return explicit, nil
		}
		return "", &prompts.ConfigNotFoundError{Path: explicit}
	}

	if envPath := os.Getenv(EnvConfig); envPath != "" {
		if fileExists(envPath) {
			return envPath, nil
		}
		return "", &prompts.ConfigNotFoundError{Path: envPath}
	}

	if path := DefaultPromptsPath(); fileExists(path) {
		return path, nil
	}

	if cwd, err := os.Getwd(); err == nil {
		if path := filepath.Join(cwd, "prompts.yaml"); fileExists(path) {
			return path, nil
		}
	}

	return "", &prompts.ConfigNotFoundError{Path: DefaultPromptsPath()}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureDir creates the configuration directory if it does not exist.
func EnsureDir() (string, error) {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return dir, nil
}

// EnsureServicesDir creates the services directory if it does not exist.
func EnsureServicesDir() (string, error) {
	dir := ServicesDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create services directory: %w", err)
	}
	return dir, nil
}

// DebugEnabled reports whether verbose logging was requested via env.
func DebugEnabled() bool {
	switch strings.ToLower(os.Getenv(EnvDebug)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// Settings are the tray application preferences, kept separate from the
// prompts document so user prompt files stay portable.
type Settings struct {
	Hotkey  HotkeySettings  `toml:"hotkey"`
	Paste   PasteSettings   `toml:"paste"`
	Tray    TraySettings    `toml:"tray"`
	History HistorySettings `toml:"history"`
	Web     WebSettings     `toml:"web"`
}

type HotkeySettings struct {
	Combo string `toml:"combo"`
}

type PasteSettings struct {
	RestoreClipboard bool `toml:"restore_clipboard"`
}

type TraySettings struct {
	ShowNotifications bool `toml:"show_notifications"`
}

type HistorySettings struct {
	Enabled bool `toml:"enabled"`
}

type WebSettings struct {
	Enabled bool `toml:"enabled"`
	Port    int  `toml:"port"`
}

func defaultSettings() *Settings {
	return &Settings{
		Hotkey:  HotkeySettings{Combo: "cmd+shift+p"},
		Paste:   PasteSettings{RestoreClipboard: true},
		Tray:    TraySettings{ShowNotifications: true},
		History: HistorySettings{Enabled: true},
		Web:     WebSettings{Enabled: false, Port: 8649},
	}
}

// SettingsPath returns the path to the tray settings file.
func SettingsPath() string {
	return filepath.Join(Dir(), "settings.toml")
}

// LoadSettings loads the tray settings, creating the file with defaults on
// first use.
func LoadSettings() (*Settings, error) {
	if _, err := EnsureDir(); err != nil {
		return nil, err
	}

	path := SettingsPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		settings := defaultSettings()
		if err := saveSettings(path, settings); err != nil {
			return nil, fmt.Errorf("failed to create default settings: %w", err)
		}
		return settings, nil
	}

	settings := defaultSettings()
	if _, err := toml.DecodeFile(path, settings); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	return settings, nil
}

func saveSettings(path string, settings *Settings) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(settings)
}
