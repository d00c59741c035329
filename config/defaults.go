package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultPrompts = `# PastePrompt Configuration
# Location: ~/.config/pasteprompt/prompts.yaml
# Documentation: https://github.com/mjenior/pasteprompt

settings:
  prefix: "PastePrompt"
  include_key_in_name: false

prompts:
  # === Investigation & Analysis ===
  investigate:
    content: "Meticulously investigate the most likely collection of root causes for the following stdout logs. Return all possible causes ranked in terms of severity."
    display_name: "Investigate"
    category: "Analysis"

  analyze:
    content: "Painstakingly analyze the full code implementation of this plan to ensure that there are no missing components, potential improvements, lingering bugs, and silent errors. Implement any necessary changes identified in this search."
    display_name: "Analyze"
    category: "Analysis"

  # === Planning & Strategy ===
  strategize:
    content: "Analyze ALL related sections of the codebase to your findings and create a comprehensive and detailed strategy to address all related issues. Be sure to include peripheral code regions in your analysis which reference or import the impacted code regions."
    display_name: "Strategize"
    category: "Planning"

  save_plan:
    content: "Save this complete refined hybrid plan to a new text file. All changes will be implemented by an LLM downstream, therefore include relevant details and formatting accordingly."
    display_name: "Save Plan"
    category: "Planning"

  # === Implementation ===
  implement:
    content: "Thoroughly read and understand the provided implementation plan, only after which you may begin applying the highest priority listed refactors or upgrades."
    display_name: "Implement"
    category: "Implementation"

  complete:
    content: "Carefully review the planning document and implement any remaining or skipped updates now."
    display_name: "Complete"
    category: "Implementation"
`

// CreateDefaultPrompts writes an example prompts.yaml to path, or to the
// default location when path is empty.
func CreateDefaultPrompts(path string) (string, error) {
	if path == "" {
		if _, err := EnsureDir(); err != nil {
			return "", err
		}
		path = DefaultPromptsPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(defaultPrompts), 0o644); err != nil {
		return "", fmt.Errorf("failed to write default configuration: %w", err)
	}
	return path, nil
}
