package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mjenior/pasteprompt/config"
	"github.com/mjenior/pasteprompt/prompts"
	"github.com/mjenior/pasteprompt/workflow"
)

var buildForce bool

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate macOS Services from the prompts file",
	Long: `Generates one Services workflow bundle per prompt into
~/Library/Services. Existing bundles for the same prompts are replaced,
so build is safe to run after every config edit. With --force, bundles
for renamed or deleted prompts are removed first.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().BoolVarP(&buildForce, "force", "f", false, "remove all existing generated services first")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	path, err := config.ResolvePromptsPath(flagConfig)
	if err != nil {
		return err
	}

	collection, err := prompts.Load(path)
	if err != nil {
		return err
	}
	settings := prompts.GetSettings(path)

	servicesDir, err := config.EnsureServicesDir()
	if err != nil {
		return err
	}

	invoker, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}

	// Pin the resolved path in every bundle. The Services dispatcher runs the
	// shell step without the user's environment, so the env override or a cwd
	// fallback chosen at build time would not resolve again at paste time.
	opts := workflow.Options{
		OutputDir:  servicesDir,
		Invoker:    invoker,
		Prefix:     settings.Prefix,
		ConfigPath: path,
		IncludeKey: settings.IncludeKeyInName,
	}

	if buildForce {
		removed, failed := workflow.Cleanup(servicesDir, settings.Prefix)
		if removed > 0 {
			cmd.Printf("Removed %d existing services\n", removed)
		}
		for _, name := range failed {
			cmd.Printf("  %s could not remove %s\n", failMark(), name)
		}
	}

	cmd.Printf("Building %d services from %s\n\n", len(collection), path)

	created, err := workflow.GenerateAll(collection, opts)
	for _, name := range created {
		cmd.Printf("  %s %s\n", okMark(), name)
	}
	if err != nil {
		var genErr *workflow.GenerationError
		if errors.As(err, &genErr) {
			cmd.Printf("  %s %s\n", failMark(), genErr.Key)
		}
		return err
	}

	cmd.Println()
	cmd.Printf("%s Generated %d services in %s\n", okMark(), len(created), servicesDir)
	if !workflow.RefreshServicesMenu() {
		cmd.Printf("%s Services menu refresh failed; log out and back in if services do not appear\n", warnMark())
	}
	return nil
}
