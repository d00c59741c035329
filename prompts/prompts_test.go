package prompts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_ShortAndLongForm(t *testing.T) {
	path := writeConfig(t, `
prompts:
  quick: "Just the text"
  detailed:
    content: "Full prompt body"
    display_name: "My Prompt"
    description: "Does a thing"
    category: "Workflow"
`)

	collection, err := Load(path)
	require.NoError(t, err)
	require.Len(t, collection, 2)

	assert.Equal(t, "Just the text", collection["quick"].Content)
	assert.Empty(t, collection["quick"].DisplayName)

	detailed := collection["detailed"]
	assert.Equal(t, "Full prompt body", detailed.Content)
	assert.Equal(t, "My Prompt", detailed.DisplayName)
	assert.Equal(t, "Does a thing", detailed.Description)
	assert.Equal(t, "Workflow", detailed.Category)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))

	var notFound *ConfigNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Contains(t, notFound.Path, "absent.yaml")
}

func TestLoad_AggregatesAllProblems(t *testing.T) {
	path := writeConfig(t, `
prompts:
  empty: ""
  no_content:
    description: "body missing"
  bad_type:
    content: 42
`)

	_, err := Load(path)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)

	assert.Len(t, cfgErr.Problems, 3)
	assert.Contains(t, cfgErr.Problems, "prompt 'empty' has empty content")
	assert.Contains(t, cfgErr.Problems, "prompt 'no_content' missing required 'content' field")
	assert.Contains(t, cfgErr.Problems, "prompt 'bad_type' content must be a string")
}

func TestLoad_MissingPromptsSection(t *testing.T) {
	path := writeConfig(t, `settings: {prefix: "X"}`)

	_, err := Load(path)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, []string{"missing required 'prompts' section"}, cfgErr.Problems)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "prompts:\n\t\tbad indentation")

	_, err := Load(path)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	require.Len(t, cfgErr.Problems, 1)
	assert.Contains(t, cfgErr.Problems[0], "invalid YAML")
}

func TestValidate_SettingsTypes(t *testing.T) {
	problems := Validate(map[string]any{
		"prompts": map[string]any{"ok": "text"},
		"settings": map[string]any{
			"prefix":              7,
			"include_key_in_name": "yes",
		},
	})

	assert.Contains(t, problems, "'settings.prefix' must be a string")
	assert.Contains(t, problems, "'settings.include_key_in_name' must be a boolean")
}

func TestMenuName(t *testing.T) {
	tests := []struct {
		name     string
		prompt   Prompt
		expected string
	}{
		{
			name:     "Underscored key",
			prompt:   Prompt{Key: "save_plan"},
			expected: "Save Plan",
		},
		{
			name:     "Single word",
			prompt:   Prompt{Key: "investigate"},
			expected: "Investigate",
		},
		{
			name:     "Display name wins",
			prompt:   Prompt{Key: "save_plan", DisplayName: "Save The Plan"},
			expected: "Save The Plan",
		},
		{
			name:     "Mixed case key is normalized",
			prompt:   Prompt{Key: "FIX_bug"},
			expected: "Fix Bug",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.prompt.MenuName())
		})
	}
}

func TestMenuNameWithKey(t *testing.T) {
	p := Prompt{Key: "investigate"}
	assert.Equal(t, "[investigate] Investigate", p.MenuNameWithKey(true))
	assert.Equal(t, "Investigate", p.MenuNameWithKey(false))
}

func TestGetContent_UnknownKeyListsAvailable(t *testing.T) {
	path := writeConfig(t, `
prompts:
  alpha: "one"
  beta: "two"
`)

	_, err := GetContent("missing", path)

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "missing", notFound.Key)
	assert.Equal(t, []string{"alpha", "beta"}, notFound.Available)
	assert.Equal(t, `prompt "missing" not found. Available prompts: alpha, beta`, err.Error())
}

func TestGetContent_PreservesBody(t *testing.T) {
	path := writeConfig(t, "prompts:\n  multi: \"line one\\nline two\"\n")

	content, err := GetContent("multi", path)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", content)
}

func TestGetSettings(t *testing.T) {
	path := writeConfig(t, `
prompts:
  a: "text"
settings:
  prefix: "MyPrompts"
  include_key_in_name: true
`)

	settings := GetSettings(path)
	assert.Equal(t, "MyPrompts", settings.Prefix)
	assert.True(t, settings.IncludeKeyInName)
}

func TestGetSettings_DefaultsWhenAbsent(t *testing.T) {
	path := writeConfig(t, "prompts:\n  a: \"text\"\n")

	settings := GetSettings(path)
	assert.Equal(t, DefaultPrefix, settings.Prefix)
	assert.False(t, settings.IncludeKeyInName)
}

func TestGetSettings_DefaultsOnMissingFile(t *testing.T) {
	settings := GetSettings(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Equal(t, DefaultPrefix, settings.Prefix)
}

func TestSortedKeys(t *testing.T) {
	collection := map[string]Prompt{
		"zeta": {}, "alpha": {}, "mid": {},
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, SortedKeys(collection))
}

func TestConfigError_Message(t *testing.T) {
	err := &ConfigError{Problems: []string{"first", "second"}}
	assert.Equal(t, "configuration validation failed:\n  - first\n  - second", err.Error())
}
