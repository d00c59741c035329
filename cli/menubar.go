package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mjenior/pasteprompt/config"
	"github.com/mjenior/pasteprompt/launchagent"
	"github.com/mjenior/pasteprompt/menubar"
)

var (
	menubarHotkey    string
	menubarNoRestore bool
)

var menubarCmd = &cobra.Command{
	Use:   "menubar",
	Short: "Run or manage the tray application",
}

var menubarStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the tray application in the foreground",
	Long: `Runs the tray application: a menu of all prompts, a global hotkey
that re-pastes the most recently used prompt, and automatic config
reload. Blocks until quit from the tray menu.`,
	RunE: runMenubarStart,
}

var menubarInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Start the tray application at login",
	RunE:  runMenubarInstall,
}

var menubarUninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the login item and stop the tray application",
	RunE:  runMenubarUninstall,
}

var menubarStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the tray application is installed and running",
	RunE:  runMenubarStatus,
}

func init() {
	menubarStartCmd.Flags().StringVar(&menubarHotkey, "hotkey", "", "global hotkey combo, e.g. cmd+shift+p")
	menubarStartCmd.Flags().BoolVar(&menubarNoRestore, "no-restore-clipboard", false, "leave the pasted prompt on the clipboard")
	menubarInstallCmd.Flags().StringVar(&menubarHotkey, "hotkey", "", "global hotkey combo passed to the login item")

	menubarCmd.AddCommand(menubarStartCmd)
	menubarCmd.AddCommand(menubarInstallCmd)
	menubarCmd.AddCommand(menubarUninstallCmd)
	menubarCmd.AddCommand(menubarStatusCmd)
	rootCmd.AddCommand(menubarCmd)
}

func runMenubarStart(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}

	hotkey := settings.Hotkey.Combo
	if menubarHotkey != "" {
		hotkey = menubarHotkey
	}
	restore := settings.Paste.RestoreClipboard
	if menubarNoRestore {
		restore = false
	}

	app := menubar.New(menubar.Options{
		ConfigPath:        flagConfig,
		Hotkey:            hotkey,
		RestoreClipboard:  restore,
		ShowNotifications: settings.Tray.ShowNotifications,
		Settings:          settings,
	})
	return app.Run()
}

func runMenubarInstall(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}

	hotkey := settings.Hotkey.Combo
	if menubarHotkey != "" {
		hotkey = menubarHotkey
	}

	invoker, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}

	plistPath, err := launchagent.Install(launchagent.Options{
		Invoker:          invoker,
		ConfigPath:       flagConfig,
		Hotkey:           hotkey,
		RestoreClipboard: settings.Paste.RestoreClipboard,
	})
	if err != nil {
		return err
	}

	cmd.Printf("%s Installed login item %s\n", okMark(), plistPath)
	cmd.Println("The tray application is now running and will start at login.")
	return nil
}

func runMenubarUninstall(cmd *cobra.Command, args []string) error {
	removed, err := launchagent.Uninstall()
	if err != nil {
		return err
	}
	if !removed {
		cmd.Println("No login item installed.")
		return nil
	}
	cmd.Printf("%s Removed login item\n", okMark())
	return nil
}

func runMenubarStatus(cmd *cobra.Command, args []string) error {
	status := launchagent.GetStatus()
	switch {
	case status.Running:
		cmd.Printf("%s Tray application running (pid %d)\n", okMark(), status.PID)
		cmd.Printf("  Login item: %s\n", status.PlistPath)
	case status.Installed:
		cmd.Printf("%s Login item installed but the tray application is not running\n", warnMark())
		cmd.Printf("  Login item: %s\n", status.PlistPath)
	default:
		cmd.Println("Tray application not installed. Run: pasteprompt menubar install")
	}
	return nil
}
