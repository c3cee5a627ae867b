package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hallgrim/blackbars/internal/config"
	"github.com/hallgrim/blackbars/internal/logging"
	"github.com/hallgrim/blackbars/internal/overlay"
	"github.com/hallgrim/blackbars/internal/taskbar"
	"github.com/hallgrim/blackbars/internal/watcher"
	"github.com/hallgrim/blackbars/internal/winapi"
	"github.com/spf13/cobra"
)

var (
	watchTitle    string
	watchInterval int
)

var watchLoadConfig = loadConfigForCommand
var startWatch = runWatch

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Monitor the target window and manage black bars",
	Long: `Poll the foreground window and engage black-bars mode whenever the
target window is focused and not minimized: an opaque black overlay is
placed directly behind it covering its whole monitor, and the taskbar is
hidden. Focus loss, minimizing, Ctrl+C, or any error restores the desktop.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		loadResult, err := watchLoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		printConfigSourceDetails(cmd, loadResult.Source)
		cfg := loadResult.Config

		if watchTitle != "" {
			cfg.Target.Title = watchTitle
		}
		if watchInterval > 0 {
			cfg.Poll.IntervalMS = watchInterval
		}

		if err := config.Validate(cfg); err != nil {
			return err
		}

		initializeCommandLogging(cmd.ErrOrStderr(), cfg.Logging, logging.RoleWatch)

		return startWatch(cmd, cfg)
	},
}

func runWatch(cmd *cobra.Command, cfg config.Config) error {
	desktop, err := winapi.New()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	w := watcher.New(
		desktop,
		overlay.NewManager(desktop),
		taskbar.NewController(desktop),
		watcher.Options{
			Target:   cfg.Target.Title,
			Interval: cfg.Poll.Interval(),
			Out:      out,
		},
	)

	fmt.Fprintf(out, "Monitoring for window: %q\n", cfg.Target.Title)
	fmt.Fprintf(out, "Poll interval: %dms\n", cfg.Poll.IntervalMS)
	fmt.Fprintln(out, "Press Ctrl+C to exit")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Cleanup is deferred so the desktop is restored on every exit
	// path, signal or error alike.
	defer w.Cleanup()

	slog.Info("watch.started", "target", cfg.Target.Title, "interval_ms", cfg.Poll.IntervalMS)

	if err := w.Run(ctx); err != nil {
		slog.Error("watch.loop_failed", "error", err)
		return fmt.Errorf("watch loop: %w", err)
	}

	fmt.Fprintln(out, "Shutting down, restoring desktop")
	return nil
}

func init() {
	watchCmd.Flags().StringVarP(&watchTitle, "title", "t", "", "Window title to track (default from config)")
	watchCmd.Flags().IntVarP(&watchInterval, "interval", "i", 0, "Poll interval in milliseconds (default from config)")

	rootCmd.AddCommand(watchCmd)
}
