package cmd

import (
	"fmt"
	"os"

	"github.com/hallgrim/blackbars/internal/config"
	"github.com/spf13/cobra"
)

var Version = "dev"

var rootCmd = &cobra.Command{
	Use:     "blackbars",
	Short:   "Black background behind a focused game window",
	Version: Version,
	Long: `blackbars watches for a target window (by exact title) to become the
foreground window. While it is focused and not minimized, an opaque black
overlay covers the rest of its monitor and the taskbar is hidden. Everything
is restored the moment focus is lost or blackbars exits.

Usage:
  blackbars watch                 Start monitoring (Ctrl+C to stop)
  blackbars watch --title Notepad Track a different window
  blackbars config init           Create default config file

Running blackbars with no arguments starts watching.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return watchCmd.RunE(cmd, args)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfigForCommand() (config.LoadResult, error) {
	return config.LoadWithSource()
}

func printConfigSourceDetails(cmd *cobra.Command, source config.SourceSelection) {
	switch source.Type {
	case config.SourceDefaults:
		fmt.Fprintf(cmd.ErrOrStderr(), "config: built-in defaults (%s)\n", source.Reason)
	default:
		fmt.Fprintf(cmd.ErrOrStderr(), "config: %s (%s)\n", source.Path, source.Reason)
	}
}
