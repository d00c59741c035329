package cli

import (
	"github.com/spf13/cobra"

	"github.com/mjenior/pasteprompt/config"
	"github.com/mjenior/pasteprompt/storage"
)

var (
	historyLimit int
	historyDays  int
	historyStats bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent pastes and usage statistics",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of entries to show")
	historyCmd.Flags().IntVar(&historyDays, "days", 7, "statistics window in days")
	historyCmd.Flags().BoolVar(&historyStats, "stats", false, "show per-prompt statistics instead of entries")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	dir, err := config.EnsureDir()
	if err != nil {
		return err
	}
	db, err := storage.Open(dir)
	if err != nil {
		return err
	}
	defer db.Close()

	if historyStats {
		return printStats(cmd, db)
	}

	pastes, err := db.GetPastes(historyLimit, 0)
	if err != nil {
		return err
	}
	total, err := db.GetPasteCount()
	if err != nil {
		return err
	}

	if total == 0 {
		cmd.Println("No pastes recorded yet.")
		return nil
	}

	cmd.Printf("Showing %d of %d pastes\n\n", len(pastes), total)
	for _, p := range pastes {
		mark := okMark()
		if !p.Success {
			mark = failMark()
		}
		cmd.Printf("%s %s  %-20s %-7s %5d chars", mark,
			p.Timestamp.Format("2006-01-02 15:04"), p.PromptKey, p.Source, p.CharacterCount)
		if p.ErrorMessage != "" {
			cmd.Printf("  %s", dimStyle.Render(p.ErrorMessage))
		}
		cmd.Println()
	}
	return nil
}

func printStats(cmd *cobra.Command, db *storage.DB) error {
	overall, err := db.GetOverallStats(historyDays)
	if err != nil {
		return err
	}
	perPrompt, err := db.GetPromptStats(historyDays)
	if err != nil {
		return err
	}

	cmd.Printf("Last %d days: %d pastes, %d failed, %d characters\n",
		historyDays, overall.TotalPastes, overall.FailureCount, overall.TotalCharacters)

	if len(perPrompt) == 0 {
		return nil
	}

	cmd.Println()
	for _, s := range perPrompt {
		cmd.Printf("  %-20s %4d uses  %d failed  %d chars\n",
			s.PromptKey, s.TotalPastes, s.FailureCount, s.TotalCharacters)
	}
	return nil
}
