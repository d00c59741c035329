package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mjenior/pasteprompt/config"
	"github.com/mjenior/pasteprompt/prompts"
)

var pasteCmd = &cobra.Command{
	Use:   "paste [key]",
	Short: "Print a prompt's content to stdout",
	Long: `Prints the prompt body for the given key, exactly as stored and with
no trailing newline. This is the command the generated Services invoke;
Automator replaces the current selection with its stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: runPaste,
}

func init() {
	rootCmd.AddCommand(pasteCmd)
}

func runPaste(cmd *cobra.Command, args []string) error {
	path, err := config.ResolvePromptsPath(flagConfig)
	if err != nil {
		return err
	}

	content, err := prompts.GetContent(args[0], path)
	if err != nil {
		return err
	}

	// Stdout is the paste payload; anything extra would end up in the
	// user's document.
	fmt.Fprint(cmd.OutOrStdout(), content)
	return nil
}
