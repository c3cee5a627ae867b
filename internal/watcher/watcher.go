// Package watcher drives the focus-polling loop. Each tick it decides
// whether the target window is focused and unminimized, and engages or
// releases black-bars mode accordingly.
package watcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/hallgrim/blackbars/internal/overlay"
	"github.com/hallgrim/blackbars/internal/taskbar"
	"github.com/hallgrim/blackbars/internal/winapi"
)

// Query is the read-only view of the desktop the watcher samples.
// Implementations must degrade to zero values instead of erroring.
type Query interface {
	ForegroundWindow() winapi.Handle
	WindowTitle(winapi.Handle) string
	IsMinimized(winapi.Handle) bool
	MonitorRect(winapi.Handle) (winapi.Rect, bool)
}

type Options struct {
	// Target is the exact window title to track.
	Target string
	// Interval between focus samples.
	Interval time.Duration
	// Out receives human-readable status lines. Defaults to stdout.
	Out io.Writer
}

// Watcher holds the activation state machine. Not safe for concurrent
// use: Tick, Run and Cleanup belong to one goroutine.
type Watcher struct {
	target   string
	interval time.Duration
	out      io.Writer

	query   Query
	overlay *overlay.Manager
	taskbar *taskbar.Controller

	active bool
}

func New(query Query, overlay *overlay.Manager, taskbar *taskbar.Controller, opts Options) *Watcher {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}

	return &Watcher{
		target:   opts.Target,
		interval: interval,
		out:      out,
		query:    query,
		overlay:  overlay,
		taskbar:  taskbar,
	}
}

// Active reports whether black-bars mode is currently engaged.
func (w *Watcher) Active() bool { return w.active }

// Tick samples the foreground window once and transitions the state
// machine. A closed target window shows up as a foreground change, so
// no separate existence check is needed.
func (w *Watcher) Tick() {
	fg := w.query.ForegroundWindow()
	onTarget := fg != 0 && w.query.WindowTitle(fg) == w.target && !w.query.IsMinimized(fg)

	switch {
	case onTarget && !w.active:
		w.activate(fg)
	case !onTarget && w.active:
		w.deactivate()
	}
}

func (w *Watcher) activate(target winapi.Handle) {
	rect, ok := w.query.MonitorRect(target)
	if !ok {
		// Retry next tick rather than activating with unknown geometry.
		slog.Warn("watch.activate.monitor_unresolved", "target", w.target)
		fmt.Fprintln(w.out, "Warning: could not determine monitor for target window")
		return
	}

	if err := w.overlay.Ensure(rect); err != nil {
		slog.Warn("watch.activate.overlay_failed", "error", err)
		fmt.Fprintf(w.out, "Warning: could not create overlay: %v\n", err)
		return
	}

	if err := w.overlay.PlaceBehind(target); err != nil {
		slog.Warn("watch.activate.restack_failed", "error", err)
	}
	w.taskbar.Hide()
	w.active = true

	slog.Info("watch.activated", "monitor", rect.String())
	fmt.Fprintf(w.out, "Black bars activated on monitor %s\n", rect)
}

func (w *Watcher) deactivate() {
	w.overlay.Hide()
	w.taskbar.Show()
	w.active = false

	slog.Info("watch.deactivated")
	fmt.Fprintln(w.out, "Black bars deactivated")
}

// Run polls until ctx is cancelled. It returns nil on cancellation;
// restoration is the caller's responsibility via Cleanup, so every exit
// path shares one cleanup sequence.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.Tick()
		}
	}
}

// Cleanup unconditionally restores the desktop: taskbar shown, overlay
// destroyed. Idempotent, and safe when the overlay was never created.
func (w *Watcher) Cleanup() {
	w.taskbar.Show()
	w.overlay.Destroy()
	w.active = false

	slog.Info("watch.cleanup.complete")
}
