package workflow

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjenior/pasteprompt/prompts"
)

func testOptions(dir string) Options {
	return Options{
		OutputDir: dir,
		Invoker:   "/usr/local/bin/pasteprompt",
		Prefix:    "PastePrompt",
	}
}

func TestDisplayName_Sanitization(t *testing.T) {
	tests := []struct {
		name     string
		prompt   prompts.Prompt
		expected string
	}{
		{
			name:     "Plain key",
			prompt:   prompts.Prompt{Key: "save_plan"},
			expected: "Save Plan",
		},
		{
			name:     "Unsafe characters become hyphens",
			prompt:   prompts.Prompt{Key: "x", DisplayName: `Fix/Debug: "now"?`},
			expected: "Fix-Debug- -now--",
		},
		{
			name:     "Repeated spaces collapse",
			prompt:   prompts.Prompt{Key: "x", DisplayName: "Too   many spaces"},
			expected: "Too many spaces",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DisplayName(tt.prompt, false))
		})
	}
}

func TestName(t *testing.T) {
	p := prompts.Prompt{Key: "investigate"}
	assert.Equal(t, "PastePrompt - Investigate.workflow", Name(p, "PastePrompt", false))
	assert.Equal(t, "My - [investigate] Investigate.workflow", Name(p, "My", true))
}

func TestGenerate_BundleLayout(t *testing.T) {
	dir := t.TempDir()
	p := prompts.Prompt{Key: "investigate", Content: "Dig in"}

	bundlePath, err := Generate(p, testOptions(dir))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "PastePrompt - Investigate.workflow"), bundlePath)

	info, err := os.ReadFile(filepath.Join(bundlePath, "Contents", "Info.plist"))
	require.NoError(t, err)
	assert.Contains(t, string(info), "<string>PastePrompt - Investigate</string>")
	assert.Contains(t, string(info), "<string>runWorkflowAsService</string>")
	assert.Contains(t, string(info), "<string>NSStringPboardType</string>")

	document, err := os.ReadFile(filepath.Join(bundlePath, "Contents", "document.wflow"))
	require.NoError(t, err)
	assert.Contains(t, string(document), `/usr/local/bin/pasteprompt paste &#34;investigate&#34;`)
	assert.Contains(t, string(document), "<string>/bin/zsh</string>")
	assert.NotContains(t, string(document), "--config")

	assert.DirExists(t, filepath.Join(bundlePath, "Contents", "QuickLook"))
}

func TestGenerate_EmbedsConfigPath(t *testing.T) {
	dir := t.TempDir()
	opts := testOptions(dir)
	opts.ConfigPath = "/home/me/my prompts.yaml"

	bundlePath, err := Generate(prompts.Prompt{Key: "a", Content: "x"}, opts)
	require.NoError(t, err)

	document, err := os.ReadFile(filepath.Join(bundlePath, "Contents", "document.wflow"))
	require.NoError(t, err)
	assert.Contains(t, string(document), `--config &#34;/home/me/my prompts.yaml&#34;`)
}

func TestGenerate_RegenerationReplacesBundle(t *testing.T) {
	dir := t.TempDir()
	p := prompts.Prompt{Key: "investigate", Content: "Dig in"}
	opts := testOptions(dir)

	bundlePath, err := Generate(p, opts)
	require.NoError(t, err)

	// A leftover from a previous layout must not survive regeneration.
	stale := filepath.Join(bundlePath, "Contents", "stale.txt")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))

	again, err := Generate(p, opts)
	require.NoError(t, err)
	assert.Equal(t, bundlePath, again)
	assert.NoFileExists(t, stale)
	assert.FileExists(t, filepath.Join(bundlePath, "Contents", "Info.plist"))
}

func TestGenerateAll_SortedAndComplete(t *testing.T) {
	dir := t.TempDir()
	collection := map[string]prompts.Prompt{
		"zeta":  {Key: "zeta", Content: "z"},
		"alpha": {Key: "alpha", Content: "a"},
	}

	created, err := GenerateAll(collection, testOptions(dir))
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, filepath.Join(dir, "PastePrompt - Alpha.workflow"), created[0])
	assert.Equal(t, filepath.Join(dir, "PastePrompt - Zeta.workflow"), created[1])
}

func TestCleanup_OnlyRemovesPrefixed(t *testing.T) {
	dir := t.TempDir()
	collection := map[string]prompts.Prompt{
		"alpha": {Key: "alpha", Content: "a"},
		"beta":  {Key: "beta", Content: "b"},
	}
	_, err := GenerateAll(collection, testOptions(dir))
	require.NoError(t, err)

	// A foreign service must survive.
	foreign := filepath.Join(dir, "Other Tool - Thing.workflow")
	require.NoError(t, os.MkdirAll(foreign, 0o755))

	removed, failed := Cleanup(dir, "PastePrompt")
	assert.Equal(t, 2, removed)
	assert.Empty(t, failed)
	assert.DirExists(t, foreign)
}

func TestCleanup_MissingDir(t *testing.T) {
	removed, failed := Cleanup(filepath.Join(t.TempDir(), "absent"), "PastePrompt")
	assert.Zero(t, removed)
	assert.Empty(t, failed)
}

func TestListInstalled(t *testing.T) {
	dir := t.TempDir()
	collection := map[string]prompts.Prompt{
		"save_plan":   {Key: "save_plan", Content: "s"},
		"investigate": {Key: "investigate", Content: "i"},
	}
	_, err := GenerateAll(collection, testOptions(dir))
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Other Tool - Thing.workflow"), 0o755))

	assert.Equal(t, []string{"Investigate", "Save Plan"}, ListInstalled(dir, "PastePrompt"))
	assert.Empty(t, ListInstalled(dir, "Nope"))
}

func TestGenerate_ErrorNamesPrompt(t *testing.T) {
	// Output under a file, not a directory, so MkdirAll fails.
	dir := t.TempDir()
	blocked := filepath.Join(dir, "blocked")
	require.NoError(t, os.WriteFile(blocked, []byte(""), 0o644))

	_, err := Generate(prompts.Prompt{Key: "alpha", Content: "a"}, testOptions(filepath.Join(blocked, "sub")))
	require.Error(t, err)

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, "alpha", genErr.Key)
	assert.Contains(t, err.Error(), "failed to generate workflow for 'alpha'")
}
