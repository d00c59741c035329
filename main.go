package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mjenior/pasteprompt/cli"
	"github.com/mjenior/pasteprompt/config"
)

func main() {
	// Logs go to stderr; stdout is reserved for command output, which the
	// paste command delivers verbatim into the user's document.
	level := slog.LevelInfo
	if config.DebugEnabled() {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
