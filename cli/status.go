package cli

import (
	"github.com/spf13/cobra"

	"github.com/mjenior/pasteprompt/config"
	"github.com/mjenior/pasteprompt/launchagent"
	"github.com/mjenior/pasteprompt/prompts"
	"github.com/mjenior/pasteprompt/workflow"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show what is configured versus installed",
	Long: `Compares the prompts file against the installed services and reports
missing and stale entries, plus the state of the tray login item.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	path, err := config.ResolvePromptsPath(flagConfig)
	if err != nil {
		return err
	}

	collection, err := prompts.Load(path)
	if err != nil {
		return err
	}
	settings := prompts.GetSettings(path)

	cmd.Printf("Config:   %s (%d prompts)\n", path, len(collection))

	servicesDir := config.ServicesDir()
	installed := workflow.ListInstalled(servicesDir, settings.Prefix)
	cmd.Printf("Services: %d installed in %s\n", len(installed), servicesDir)

	expected := make(map[string]string, len(collection))
	for _, key := range prompts.SortedKeys(collection) {
		p := collection[key]
		expected[workflow.DisplayName(p, settings.IncludeKeyInName)] = key
	}

	installedSet := make(map[string]bool, len(installed))
	for _, name := range installed {
		installedSet[name] = true
	}

	missing := 0
	for _, key := range prompts.SortedKeys(collection) {
		p := collection[key]
		name := workflow.DisplayName(p, settings.IncludeKeyInName)
		if installedSet[name] {
			cmd.Printf("  %s %s\n", okMark(), name)
		} else {
			cmd.Printf("  %s %s (not built)\n", warnMark(), name)
			missing++
		}
	}
	stale := 0
	for _, name := range installed {
		if _, ok := expected[name]; !ok {
			cmd.Printf("  %s %s (no longer configured)\n", warnMark(), name)
			stale++
		}
	}

	if missing > 0 || stale > 0 {
		cmd.Printf("\nRun 'pasteprompt build' to update (%d missing, %d stale)\n", missing, stale)
	}

	agent := launchagent.GetStatus()
	switch {
	case agent.Running:
		cmd.Printf("\nMenubar:  %s running (pid %d), starts at login\n", okMark(), agent.PID)
	case agent.Installed:
		cmd.Printf("\nMenubar:  %s installed but not running\n", warnMark())
	default:
		cmd.Println("\nMenubar:  not installed (pasteprompt menubar install)")
	}
	return nil
}
