package watcher_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/hallgrim/blackbars/internal/overlay"
	"github.com/hallgrim/blackbars/internal/taskbar"
	"github.com/hallgrim/blackbars/internal/watcher"
	"github.com/hallgrim/blackbars/internal/winapi"
)

const targetTitle = "League of Legends (TM) Client"

const (
	targetHandle  winapi.Handle = 0x100
	notepadHandle winapi.Handle = 0x200
	taskbarHandle winapi.Handle = 0x300
	starterHandle winapi.Handle = 0x400
)

// fakeDesktop implements watcher.Query, overlay.Surface and
// taskbar.Chrome with scriptable state, recording every mutation.
type fakeDesktop struct {
	foreground winapi.Handle
	titles     map[winapi.Handle]string
	minimized  map[winapi.Handle]bool

	monitor   winapi.Rect
	monitorOK bool

	nextOverlay winapi.Handle
	createCalls int
	createRects []winapi.Rect

	placeCalls [][2]winapi.Handle
	hidden     []winapi.Handle
	shown      []winapi.Handle
	destroyed  []winapi.Handle

	hasTaskbar  bool
	hasLauncher bool
}

func newFakeDesktop() *fakeDesktop {
	return &fakeDesktop{
		titles: map[winapi.Handle]string{
			targetHandle:  targetTitle,
			notepadHandle: "Notepad",
		},
		minimized:   map[winapi.Handle]bool{},
		monitor:     winapi.Rect{Left: 0, Top: 0, Right: 1920, Bottom: 1080},
		monitorOK:   true,
		nextOverlay: 0x999,
		hasTaskbar:  true,
		hasLauncher: true,
	}
}

func (f *fakeDesktop) ForegroundWindow() winapi.Handle    { return f.foreground }
func (f *fakeDesktop) WindowTitle(h winapi.Handle) string { return f.titles[h] }
func (f *fakeDesktop) IsMinimized(h winapi.Handle) bool   { return f.minimized[h] }

func (f *fakeDesktop) MonitorRect(h winapi.Handle) (winapi.Rect, bool) {
	if !f.monitorOK {
		return winapi.Rect{}, false
	}
	return f.monitor, true
}

func (f *fakeDesktop) CreateOverlay(r winapi.Rect) (winapi.Handle, error) {
	f.createCalls++
	f.createRects = append(f.createRects, r)
	return f.nextOverlay, nil
}

func (f *fakeDesktop) PlaceBehind(h, ref winapi.Handle) error {
	f.placeCalls = append(f.placeCalls, [2]winapi.Handle{h, ref})
	return nil
}

func (f *fakeDesktop) Hide(h winapi.Handle)    { f.hidden = append(f.hidden, h) }
func (f *fakeDesktop) Show(h winapi.Handle)    { f.shown = append(f.shown, h) }
func (f *fakeDesktop) Destroy(h winapi.Handle) { f.destroyed = append(f.destroyed, h) }

func (f *fakeDesktop) FindTaskbar() (winapi.Handle, bool) {
	if !f.hasTaskbar {
		return 0, false
	}
	return taskbarHandle, true
}

func (f *fakeDesktop) FindLauncherControl() (winapi.Handle, bool) {
	if !f.hasLauncher {
		return 0, false
	}
	return starterHandle, true
}

func (f *fakeDesktop) countHidden(h winapi.Handle) int {
	n := 0
	for _, hidden := range f.hidden {
		if hidden == h {
			n++
		}
	}
	return n
}

func (f *fakeDesktop) countShown(h winapi.Handle) int {
	n := 0
	for _, shown := range f.shown {
		if shown == h {
			n++
		}
	}
	return n
}

func setupWatcher(t *testing.T) (*watcher.Watcher, *fakeDesktop, *bytes.Buffer) {
	t.Helper()
	fake := newFakeDesktop()
	var out bytes.Buffer
	w := watcher.New(
		fake,
		overlay.NewManager(fake),
		taskbar.NewController(fake),
		watcher.Options{Target: targetTitle, Interval: time.Millisecond, Out: &out},
	)
	return w, fake, &out
}

func TestTick_TargetFocused_Activates(t *testing.T) {
	w, fake, out := setupWatcher(t)
	fake.foreground = targetHandle

	w.Tick()

	if !w.Active() {
		t.Fatal("expected watcher to be active")
	}
	if fake.createCalls != 1 {
		t.Fatalf("overlay create calls = %d, want 1", fake.createCalls)
	}
	wantRect := winapi.Rect{Left: 0, Top: 0, Right: 1920, Bottom: 1080}
	if fake.createRects[0] != wantRect {
		t.Fatalf("overlay rect = %v, want %v", fake.createRects[0], wantRect)
	}
	if len(fake.placeCalls) != 1 || fake.placeCalls[0] != [2]winapi.Handle{fake.nextOverlay, targetHandle} {
		t.Fatalf("place calls = %v, want overlay behind target", fake.placeCalls)
	}
	if fake.countHidden(taskbarHandle) != 1 {
		t.Fatal("expected taskbar to be hidden")
	}
	if fake.countHidden(starterHandle) != 1 {
		t.Fatal("expected launcher control to be hidden")
	}
	if !strings.Contains(out.String(), "Black bars activated on monitor (0, 0, 1920, 1080)") {
		t.Fatalf("output %q missing activation line", out.String())
	}
}

func TestTick_TargetMinimized_Deactivates(t *testing.T) {
	w, fake, out := setupWatcher(t)
	fake.foreground = targetHandle
	w.Tick()

	fake.minimized[targetHandle] = true
	w.Tick()

	if w.Active() {
		t.Fatal("expected watcher to be inactive")
	}
	if fake.countHidden(fake.nextOverlay) != 1 {
		t.Fatal("expected overlay to be hidden")
	}
	if len(fake.destroyed) != 0 {
		t.Fatalf("overlay destroyed during deactivate: %v", fake.destroyed)
	}
	if fake.countShown(taskbarHandle) != 1 {
		t.Fatal("expected taskbar to be shown")
	}
	if !strings.Contains(out.String(), "Black bars deactivated") {
		t.Fatalf("output %q missing deactivation line", out.String())
	}
}

func TestTick_FocusShiftsToUnrelatedWindow_Deactivates(t *testing.T) {
	w, fake, _ := setupWatcher(t)
	fake.foreground = targetHandle
	w.Tick()

	fake.foreground = notepadHandle
	w.Tick()

	if w.Active() {
		t.Fatal("expected watcher to be inactive")
	}
	if fake.countHidden(fake.nextOverlay) != 1 {
		t.Fatal("expected overlay to be hidden")
	}
	if fake.countShown(taskbarHandle) != 1 {
		t.Fatal("expected taskbar to be shown")
	}
}

func TestTick_TargetClosed_Deactivates(t *testing.T) {
	w, fake, _ := setupWatcher(t)
	fake.foreground = targetHandle
	w.Tick()

	// The window is gone; the desktop (handle with no title) has focus.
	fake.foreground = 0x777
	w.Tick()

	if w.Active() {
		t.Fatal("expected watcher to be inactive after target closed")
	}
}

func TestTick_MonitorRectUnavailable_StaysInactive(t *testing.T) {
	w, fake, out := setupWatcher(t)
	fake.foreground = targetHandle
	fake.monitorOK = false

	w.Tick()

	if w.Active() {
		t.Fatal("expected watcher to stay inactive without monitor geometry")
	}
	if fake.createCalls != 0 {
		t.Fatalf("overlay create calls = %d, want 0", fake.createCalls)
	}
	if !strings.Contains(out.String(), "Warning: could not determine monitor") {
		t.Fatalf("output %q missing warning", out.String())
	}

	// Geometry comes back: next tick activates.
	fake.monitorOK = true
	w.Tick()
	if !w.Active() {
		t.Fatal("expected watcher to activate once geometry resolves")
	}
}

func TestTick_OverlayReusedAcrossActivations(t *testing.T) {
	w, fake, _ := setupWatcher(t)

	for i := 0; i < 3; i++ {
		fake.foreground = targetHandle
		w.Tick()
		fake.foreground = notepadHandle
		w.Tick()
	}

	if fake.createCalls != 1 {
		t.Fatalf("overlay create calls = %d, want 1 (handle must be reused)", fake.createCalls)
	}
	if len(fake.placeCalls) != 3 {
		t.Fatalf("place calls = %d, want 3 (restack on every activation)", len(fake.placeCalls))
	}
}

func TestTick_ActiveStateTracksSamples(t *testing.T) {
	w, fake, _ := setupWatcher(t)

	samples := []struct {
		foreground winapi.Handle
		minimized  bool
	}{
		{targetHandle, false},
		{targetHandle, false},
		{targetHandle, true},
		{notepadHandle, false},
		{targetHandle, false},
		{0, false},
		{targetHandle, true},
		{targetHandle, false},
	}

	for i, s := range samples {
		fake.foreground = s.foreground
		fake.minimized[targetHandle] = s.minimized

		w.Tick()

		want := s.foreground == targetHandle && !s.minimized
		if w.Active() != want {
			t.Fatalf("sample %d: active = %v, want %v", i, w.Active(), want)
		}
	}
}

func TestTick_NoRedundantWorkWhileActive(t *testing.T) {
	w, fake, _ := setupWatcher(t)
	fake.foreground = targetHandle

	w.Tick()
	w.Tick()
	w.Tick()

	if fake.createCalls != 1 {
		t.Fatalf("overlay create calls = %d, want 1", fake.createCalls)
	}
	if len(fake.placeCalls) != 1 {
		t.Fatalf("place calls = %d, want 1", len(fake.placeCalls))
	}
	if fake.countHidden(taskbarHandle) != 1 {
		t.Fatalf("taskbar hide calls = %d, want 1", fake.countHidden(taskbarHandle))
	}
}

func TestDeactivate_Idempotent(t *testing.T) {
	w, fake, _ := setupWatcher(t)
	fake.foreground = targetHandle
	w.Tick()

	fake.foreground = notepadHandle
	w.Tick()
	w.Tick()

	if fake.countHidden(fake.nextOverlay) != 1 {
		t.Fatalf("overlay hide calls = %d, want 1", fake.countHidden(fake.nextOverlay))
	}
	if fake.countShown(taskbarHandle) != 1 {
		t.Fatalf("taskbar show calls = %d, want 1", fake.countShown(taskbarHandle))
	}
}

func TestCleanup_RestoresAndDestroys(t *testing.T) {
	w, fake, _ := setupWatcher(t)
	fake.foreground = targetHandle
	w.Tick()

	w.Cleanup()

	if w.Active() {
		t.Fatal("expected watcher inactive after cleanup")
	}
	if len(fake.destroyed) != 1 || fake.destroyed[0] != fake.nextOverlay {
		t.Fatalf("destroyed = %v, want overlay handle", fake.destroyed)
	}
	if fake.countShown(taskbarHandle) == 0 {
		t.Fatal("expected taskbar to be restored")
	}
}

func TestCleanup_Idempotent(t *testing.T) {
	w, fake, _ := setupWatcher(t)
	fake.foreground = targetHandle
	w.Tick()

	w.Cleanup()
	w.Cleanup()

	if len(fake.destroyed) != 1 {
		t.Fatalf("destroy calls = %d, want 1", len(fake.destroyed))
	}
}

func TestCleanup_SafeWithoutOverlay(t *testing.T) {
	w, fake, _ := setupWatcher(t)

	w.Cleanup()

	if len(fake.destroyed) != 0 {
		t.Fatalf("destroy calls = %d, want 0", len(fake.destroyed))
	}
	if fake.countShown(taskbarHandle) != 1 {
		t.Fatal("expected taskbar restore even without overlay")
	}
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	w, fake, _ := setupWatcher(t)
	fake.foreground = targetHandle

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Let a few ticks happen, then request shutdown.
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}
}
