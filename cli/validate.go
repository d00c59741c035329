package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mjenior/pasteprompt/config"
	"github.com/mjenior/pasteprompt/prompts"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the prompts file for problems",
	Long: `Parses the prompts file and reports every validation problem at
once: missing sections, empty content, wrong field types.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path, err := config.ResolvePromptsPath(flagConfig)
	if err != nil {
		return err
	}

	collection, err := prompts.Load(path)
	if err != nil {
		var cfgErr *prompts.ConfigError
		if errors.As(err, &cfgErr) {
			cmd.Printf("%s %s is invalid:\n", failMark(), path)
			for _, problem := range cfgErr.Problems {
				cmd.Printf("  %s %s\n", failMark(), problem)
			}
			return errors.New("validation failed")
		}
		return err
	}

	cmd.Printf("%s %s is valid (%d prompts)\n", okMark(), path, len(collection))
	return nil
}
