package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mjenior/pasteprompt/workflow"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Ask macOS to rescan the Services menu",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !workflow.RefreshServicesMenu() {
			return errors.New("services menu refresh failed; log out and back in to pick up changes")
		}
		cmd.Printf("%s Services menu refreshed\n", okMark())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}
