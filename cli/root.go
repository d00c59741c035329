// Package cli implements the pasteprompt command surface.
package cli

import (
	"github.com/spf13/cobra"
)

var version = "0.3.0"

// flagConfig is the persistent --config override shared by every command.
var flagConfig string

var rootCmd = &cobra.Command{
	Use:   "pasteprompt",
	Short: "Paste reusable prompt snippets anywhere",
	Long: `PastePrompt turns a YAML file of prompt snippets into macOS Services
and a tray application, so any prompt is one right-click or hotkey away
in every app.

Typical workflow:
  pasteprompt init       create a starter prompts.yaml
  pasteprompt build      generate the Services from it
  pasteprompt menubar start   run the tray app with the global hotkey`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "path to the prompts YAML file")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
