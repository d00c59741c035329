package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mjenior/pasteprompt/config"
	"github.com/mjenior/pasteprompt/prompts"
	"github.com/mjenior/pasteprompt/workflow"
)

var (
	cleanPrefix string
	cleanYes    bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove all generated services",
	Long: `Removes every Services bundle whose name carries the configured
prefix. Bundles without the prefix are never touched, so services
created by other tools are safe.`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().StringVar(&cleanPrefix, "prefix", "", "service name prefix to remove (defaults to the configured prefix)")
	cleanCmd.Flags().BoolVarP(&cleanYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	prefix := cleanPrefix
	if prefix == "" {
		prefix = currentPrefix()
	}

	servicesDir := config.ServicesDir()
	installed := workflow.ListInstalled(servicesDir, prefix)
	if len(installed) == 0 {
		cmd.Printf("No %q services installed in %s\n", prefix, servicesDir)
		return nil
	}

	cmd.Printf("This removes %d services from %s:\n", len(installed), servicesDir)
	for _, name := range installed {
		cmd.Printf("  %s\n", name)
	}

	if !cleanYes {
		cmd.Print("\nContinue? [y/N] ")
		reader := bufio.NewReader(cmd.InOrStdin())
		answer, _ := reader.ReadString('\n')
		if answer = strings.ToLower(strings.TrimSpace(answer)); answer != "y" && answer != "yes" {
			cmd.Println("Aborted.")
			return nil
		}
	}

	removed, failed := workflow.Cleanup(servicesDir, prefix)
	cmd.Printf("%s Removed %d services\n", okMark(), removed)
	if len(failed) > 0 {
		for _, name := range failed {
			cmd.Printf("  %s could not remove %s\n", failMark(), name)
		}
		return fmt.Errorf("failed to remove %d services", len(failed))
	}

	workflow.RefreshServicesMenu()
	return nil
}

// currentPrefix resolves the configured service prefix, falling back to the
// default when the prompts file is missing or broken. Clean must work even
// when the config is gone.
func currentPrefix() string {
	path, err := config.ResolvePromptsPath(flagConfig)
	if err != nil {
		return prompts.DefaultPrefix
	}
	return prompts.GetSettings(path).Prefix
}
