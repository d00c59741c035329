// Package prompts loads and validates the prompts.yaml document.
package prompts

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Prompt is a single user-defined snippet. Records are built fresh on every
// load and never mutated afterwards.
type Prompt struct {
	Key         string
	Content     string
	DisplayName string
	Description string
	Category    string
}

// MenuName returns the display name, or a title-cased key with underscores
// replaced by spaces ("save_plan" -> "Save Plan").
func (p Prompt) MenuName() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	words := strings.Split(strings.ReplaceAll(p.Key, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// MenuNameWithKey returns the menu name, prefixed with the bracketed key when
// includeKey is set (e.g. "[investigate] Investigate").
func (p Prompt) MenuNameWithKey(includeKey bool) string {
	if includeKey {
		return fmt.Sprintf("[%s] %s", p.Key, p.MenuName())
	}
	return p.MenuName()
}

// Settings are the optional top-level "settings" of the prompts document.
type Settings struct {
	Prefix           string
	IncludeKeyInName bool
}

// DefaultPrefix is used when the document carries no settings.prefix.
const DefaultPrefix = "PastePrompt"

func defaultSettings() Settings {
	return Settings{Prefix: DefaultPrefix}
}

// Load reads and parses the prompts document at path.
//
// A missing file yields *ConfigNotFoundError. Malformed YAML or any
// structural validation failure yields *ConfigError; validation problems are
// aggregated, and no collection is produced when any exist.
func Load(path string) (map[string]Prompt, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ConfigNotFoundError{Path: path}
		}
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &ConfigError{Problems: []string{fmt.Sprintf("invalid YAML: %v", err)}}
	}
	if raw == nil {
		return nil, &ConfigError{Problems: []string{"configuration file is empty"}}
	}

	if problems := Validate(raw); len(problems) > 0 {
		return nil, &ConfigError{Problems: problems}
	}

	collection := make(map[string]Prompt)
	for key, value := range raw["prompts"].(map[string]any) {
		switch v := value.(type) {
		case string:
			collection[key] = Prompt{Key: key, Content: v}
		case map[string]any:
			collection[key] = Prompt{
				Key:         key,
				Content:     stringField(v, "content"),
				DisplayName: stringField(v, "display_name"),
				Description: stringField(v, "description"),
				Category:    stringField(v, "category"),
			}
		}
	}
	return collection, nil
}

func stringField(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

// Validate checks the structure of a parsed prompts document and returns
// every problem found. An empty result means the document is valid.
func Validate(data map[string]any) []string {
	var problems []string

	promptsRaw, ok := data["prompts"]
	if !ok {
		return []string{"missing required 'prompts' section"}
	}
	entries, ok := promptsRaw.(map[string]any)
	if !ok {
		return []string{"'prompts' must be a mapping"}
	}
	if len(entries) == 0 {
		return []string{"'prompts' section is empty"}
	}

	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		switch v := entries[key].(type) {
		case string:
			if strings.TrimSpace(v) == "" {
				problems = append(problems, fmt.Sprintf("prompt '%s' has empty content", key))
			}
		case map[string]any:
			content, present := v["content"]
			if !present {
				problems = append(problems, fmt.Sprintf("prompt '%s' missing required 'content' field", key))
				continue
			}
			s, isString := content.(string)
			switch {
			case !isString:
				problems = append(problems, fmt.Sprintf("prompt '%s' content must be a string", key))
			case strings.TrimSpace(s) == "":
				problems = append(problems, fmt.Sprintf("prompt '%s' has empty content", key))
			}
			for _, field := range []string{"display_name", "description", "category"} {
				if fv, present := v[field]; present {
					if _, isString := fv.(string); !isString {
						problems = append(problems, fmt.Sprintf("prompt '%s' field '%s' must be a string", key, field))
					}
				}
			}
		default:
			problems = append(problems, fmt.Sprintf("prompt '%s' must be a string or a mapping, got: %T", key, v))
		}
	}

	if settingsRaw, present := data["settings"]; present && settingsRaw != nil {
		settings, ok := settingsRaw.(map[string]any)
		if !ok {
			problems = append(problems, "'settings' must be a mapping")
		} else {
			if v, present := settings["prefix"]; present {
				if _, isString := v.(string); !isString {
					problems = append(problems, "'settings.prefix' must be a string")
				}
			}
			if v, present := settings["include_key_in_name"]; present {
				if _, isBool := v.(bool); !isBool {
					problems = append(problems, "'settings.include_key_in_name' must be a boolean")
				}
			}
		}
	}

	return problems
}

// GetContent returns the body text of the prompt registered under key.
// Absent keys yield *NotFoundError whose message enumerates the valid keys.
func GetContent(key, path string) (string, error) {
	collection, err := Load(path)
	if err != nil {
		return "", err
	}
	p, ok := collection[key]
	if !ok {
		available := make([]string, 0, len(collection))
		for k := range collection {
			available = append(available, k)
		}
		sort.Strings(available)
		return "", &NotFoundError{Key: key, Available: available}
	}
	return p.Content, nil
}

// GetSettings returns the document's settings with defaults applied. A
// missing or unreadable file yields the defaults; GetSettings never fails
// because callers use it after Load has already validated the document.
func GetSettings(path string) Settings {
	settings := defaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		return settings
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil || raw == nil {
		return settings
	}
	section, ok := raw["settings"].(map[string]any)
	if !ok {
		return settings
	}
	if prefix, ok := section["prefix"].(string); ok && prefix != "" {
		settings.Prefix = prefix
	}
	if include, ok := section["include_key_in_name"].(bool); ok {
		settings.IncludeKeyInName = include
	}
	return settings
}

// SortedKeys returns the collection's keys in lexicographic order.
func SortedKeys(collection map[string]Prompt) []string {
	keys := make([]string, 0, len(collection))
	for k := range collection {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
