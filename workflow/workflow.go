// Package workflow generates Automator .workflow bundles that expose prompts
// in the macOS Services menu.
package workflow

import (
	"fmt"
	"html"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/mjenior/pasteprompt/prompts"
)

// Extension is the bundle directory suffix recognized by the Services
// dispatcher.
const Extension = ".workflow"

// GenerationError reports a filesystem failure while materializing a bundle,
// named by the offending prompt key.
type GenerationError struct {
	Key string
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("failed to generate workflow for '%s': %v", e.Key, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Options configure bundle generation.
type Options struct {
	// OutputDir is the destination directory (~/Library/Services).
	OutputDir string
	// Invoker is the absolute path to the pasteprompt executable embedded in
	// the generated shell command.
	Invoker string
	// Prefix is prepended to every bundle's menu label.
	Prefix string
	// ConfigPath, when non-empty, pins an explicit prompts file via --config.
	ConfigPath string
	// IncludeKey prefixes menu names with the bracketed prompt key.
	IncludeKey bool
}

func escapeXML(text string) string {
	return html.EscapeString(text)
}

// DisplayName returns the prompt's menu name with filesystem-unsafe
// characters replaced by hyphens and repeated spaces collapsed. This is the
// form ListInstalled reports.
func DisplayName(p prompts.Prompt, includeKey bool) string {
	safe := p.MenuNameWithKey(includeKey)
	for _, c := range []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|"} {
		safe = strings.ReplaceAll(safe, c, "-")
	}
	for strings.Contains(safe, "  ") {
		safe = strings.ReplaceAll(safe, "  ", " ")
	}
	return safe
}

// Name returns the bundle directory name for a prompt, wrapped as
// "<prefix> - <name>.workflow".
func Name(p prompts.Prompt, prefix string, includeKey bool) string {
	return prefix + " - " + DisplayName(p, includeKey) + Extension
}

// infoPlist declares the Services menu entry. NSSendTypes is empty so the
// service appears without a text selection; NSRequiredContext restricts it to
// editable text contexts; NSReturnTypes makes the output text inserted at the
// cursor.
func infoPlist(p prompts.Prompt, prefix string, includeKey bool) string {
	fullName := escapeXML(prefix + " - " + p.MenuNameWithKey(includeKey))
	return `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>NSServices</key>
    <array>
        <dict>
            <key>NSMenuItem</key>
            <dict>
                <key>default</key>
                <string>` + fullName + `</string>
            </dict>
            <key>NSMessage</key>
            <string>runWorkflowAsService</string>
            <key>NSRequiredContext</key>
            <dict>
                <key>NSTextContent</key>
                <array>
                    <string>Text</string>
                </array>
            </dict>
            <key>NSSendTypes</key>
            <array/>
            <key>NSReturnTypes</key>
            <array>
                <string>NSStringPboardType</string>
            </array>
        </dict>
    </array>
</dict>
</plist>`
}

// documentWflow describes the single Run Shell Script step that invokes
// "pasteprompt paste <key>" and emits the prompt body on stdout.
func documentWflow(key, invoker, configPath string) string {
	inputUUID := strings.ToUpper(uuid.New().String())
	outputUUID := strings.ToUpper(uuid.New().String())

	command := fmt.Sprintf("%s paste %q", invoker, key)
	if configPath != "" {
		command += fmt.Sprintf(" --config %q", configPath)
	}
	command = escapeXML(command)

	return `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>AMApplicationBuild</key>
    <string>523</string>
    <key>AMApplicationVersion</key>
    <string>2.10</string>
    <key>AMDocumentVersion</key>
    <string>2</string>
    <key>actions</key>
    <array>
        <dict>
            <key>action</key>
            <dict>
                <key>AMAccepts</key>
                <dict>
                    <key>Container</key>
                    <string>List</string>
                    <key>Optional</key>
                    <true/>
                    <key>Types</key>
                    <array>
                        <string>com.apple.cocoa.string</string>
                    </array>
                </dict>
                <key>AMActionVersion</key>
                <string>2.0.3</string>
                <key>AMApplication</key>
                <array>
                    <string>Automator</string>
                </array>
                <key>AMCategory</key>
                <string>AMCategoryUtilities</string>
                <key>AMIconName</key>
                <string>Run Shell Script</string>
                <key>AMName</key>
                <string>Run Shell Script</string>
                <key>AMParameterProperties</key>
                <dict>
                    <key>COMMAND_STRING</key>
                    <dict/>
                    <key>CheckedForUserDefaultShell</key>
                    <dict/>
                    <key>inputMethod</key>
                    <dict/>
                    <key>shell</key>
                    <dict/>
                    <key>source</key>
                    <dict/>
                </dict>
                <key>AMProvides</key>
                <dict>
                    <key>Container</key>
                    <string>List</string>
                    <key>Types</key>
                    <array>
                        <string>com.apple.cocoa.string</string>
                    </array>
                </dict>
                <key>AMRequiredResources</key>
                <array/>
                <key>ActionBundlePath</key>
                <string>/System/Library/Automator/Run Shell Script.action</string>
                <key>ActionName</key>
                <string>Run Shell Script</string>
                <key>ActionParameters</key>
                <dict>
                    <key>COMMAND_STRING</key>
                    <string>` + command + `</string>
                    <key>CheckedForUserDefaultShell</key>
                    <true/>
                    <key>inputMethod</key>
                    <integer>1</integer>
                    <key>shell</key>
                    <string>/bin/zsh</string>
                    <key>source</key>
                    <string></string>
                </dict>
                <key>BundleIdentifier</key>
                <string>com.apple.RunShellScript</string>
                <key>CFBundleVersion</key>
                <string>2.0.3</string>
                <key>CanShowSelectedItemsWhenRun</key>
                <false/>
                <key>CanShowWhenRun</key>
                <true/>
                <key>GroupRecordsInOutput</key>
                <false/>
                <key>InputUUID</key>
                <string>` + inputUUID + `</string>
                <key>OutputUUID</key>
                <string>` + outputUUID + `</string>
            </dict>
        </dict>
    </array>
    <key>connectors</key>
    <dict/>
    <key>workflowMetaData</key>
    <dict>
        <key>workflowTypeIdentifier</key>
        <string>com.apple.Automator.servicesMenu</string>
    </dict>
</dict>
</plist>`
}

// Generate materializes the bundle for a single prompt and returns its path.
// An existing bundle of the same name is removed first, so regeneration is
// idempotent and never leaves stale content behind.
func Generate(p prompts.Prompt, opts Options) (string, error) {
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return "", &GenerationError{Key: p.Key, Err: err}
	}

	bundlePath := filepath.Join(opts.OutputDir, Name(p, opts.Prefix, opts.IncludeKey))

	if err := os.RemoveAll(bundlePath); err != nil {
		return "", &GenerationError{Key: p.Key, Err: err}
	}

	contentsDir := filepath.Join(bundlePath, "Contents")
	if err := os.MkdirAll(contentsDir, 0o755); err != nil {
		return "", &GenerationError{Key: p.Key, Err: err}
	}

	// Reserved for future thumbnail assets.
	if err := os.MkdirAll(filepath.Join(contentsDir, "QuickLook"), 0o755); err != nil {
		return "", &GenerationError{Key: p.Key, Err: err}
	}

	plist := infoPlist(p, opts.Prefix, opts.IncludeKey)
	if err := os.WriteFile(filepath.Join(contentsDir, "Info.plist"), []byte(plist), 0o644); err != nil {
		return "", &GenerationError{Key: p.Key, Err: err}
	}

	document := documentWflow(p.Key, opts.Invoker, opts.ConfigPath)
	if err := os.WriteFile(filepath.Join(contentsDir, "document.wflow"), []byte(document), 0o644); err != nil {
		return "", &GenerationError{Key: p.Key, Err: err}
	}

	return bundlePath, nil
}

// GenerateAll generates a bundle per prompt in key order. Generation is
// fail-fast: on the first failure the bundles created so far are returned
// together with the error, so callers can report partial results.
func GenerateAll(collection map[string]prompts.Prompt, opts Options) ([]string, error) {
	created := make([]string, 0, len(collection))
	for _, key := range prompts.SortedKeys(collection) {
		path, err := Generate(collection[key], opts)
		if err != nil {
			return created, err
		}
		created = append(created, path)
	}
	return created, nil
}

// Cleanup removes every bundle under dir whose name carries the prefix.
// It returns the number removed and the names it could not remove.
func Cleanup(dir, prefix string) (int, []string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, nil
	}

	pattern := prefix + " - "
	removed := 0
	var failed []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, pattern) || !strings.HasSuffix(name, Extension) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(dir, name)); err != nil {
			failed = append(failed, name)
			continue
		}
		removed++
	}
	return removed, failed
}

// ListInstalled returns the display names of installed bundles matching the
// prefix, with the prefix and extension stripped, sorted lexicographically.
func ListInstalled(dir, prefix string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	pattern := prefix + " - "
	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, pattern) && strings.HasSuffix(name, Extension) {
			names = append(names, name[len(pattern):len(name)-len(Extension)])
		}
	}
	sort.Strings(names)
	return names
}

// RefreshServicesMenu asks the pasteboard server to rescan installed
// services. Returns false when the refresh could not be performed; the
// Services menu then updates on next login instead.
func RefreshServicesMenu() bool {
	cmd := exec.Command("/System/Library/CoreServices/pbs", "-update")
	return cmd.Run() == nil
}
