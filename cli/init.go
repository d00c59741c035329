package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mjenior/pasteprompt/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter prompts file",
	Long: `Writes a starter prompts.yaml with example prompts to the default
config location (or the --config path). Refuses to overwrite an existing
file unless --force is given.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	path := flagConfig
	if path == "" {
		if _, err := config.EnsureDir(); err != nil {
			return err
		}
		path = config.DefaultPromptsPath()
	}

	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	created, err := config.CreateDefaultPrompts(path)
	if err != nil {
		return err
	}

	cmd.Printf("%s Created %s\n", okMark(), created)
	cmd.Println("\nEdit the file, then run: pasteprompt build")
	return nil
}
