package taskbar_test

import (
	"testing"

	"github.com/hallgrim/blackbars/internal/taskbar"
	"github.com/hallgrim/blackbars/internal/winapi"
)

const (
	taskbarHandle  winapi.Handle = 0x300
	launcherHandle winapi.Handle = 0x400
)

type fakeChrome struct {
	hasTaskbar  bool
	hasLauncher bool
	shown       []winapi.Handle
	hidden      []winapi.Handle
}

func (f *fakeChrome) FindTaskbar() (winapi.Handle, bool) {
	if !f.hasTaskbar {
		return 0, false
	}
	return taskbarHandle, true
}

func (f *fakeChrome) FindLauncherControl() (winapi.Handle, bool) {
	if !f.hasLauncher {
		return 0, false
	}
	return launcherHandle, true
}

func (f *fakeChrome) Show(h winapi.Handle) { f.shown = append(f.shown, h) }
func (f *fakeChrome) Hide(h winapi.Handle) { f.hidden = append(f.hidden, h) }

func TestHide_BothSurfaces(t *testing.T) {
	chrome := &fakeChrome{hasTaskbar: true, hasLauncher: true}
	c := taskbar.NewController(chrome)

	c.Hide()

	if len(chrome.hidden) != 2 {
		t.Fatalf("hide calls = %d, want 2", len(chrome.hidden))
	}
	if chrome.hidden[0] != taskbarHandle || chrome.hidden[1] != launcherHandle {
		t.Fatalf("hidden = %v, want [taskbar launcher]", chrome.hidden)
	}
}

func TestHide_LauncherAbsent(t *testing.T) {
	chrome := &fakeChrome{hasTaskbar: true}
	c := taskbar.NewController(chrome)

	c.Hide()

	if len(chrome.hidden) != 1 || chrome.hidden[0] != taskbarHandle {
		t.Fatalf("hidden = %v, want only taskbar", chrome.hidden)
	}
}

func TestHide_NothingFound(t *testing.T) {
	chrome := &fakeChrome{}
	c := taskbar.NewController(chrome)

	c.Hide()

	if len(chrome.hidden) != 0 {
		t.Fatalf("hide calls = %d, want 0", len(chrome.hidden))
	}
}

func TestShow_RestoresBothSurfaces(t *testing.T) {
	chrome := &fakeChrome{hasTaskbar: true, hasLauncher: true}
	c := taskbar.NewController(chrome)

	c.Show()

	if len(chrome.shown) != 2 {
		t.Fatalf("show calls = %d, want 2", len(chrome.shown))
	}
}

func TestShow_RepeatedCallsAreSafe(t *testing.T) {
	chrome := &fakeChrome{hasTaskbar: true, hasLauncher: true}
	c := taskbar.NewController(chrome)

	c.Show()
	c.Show()

	// Each call re-issues the show; visibility isn't tracked because
	// the chrome is shared state this process doesn't own.
	if len(chrome.shown) != 4 {
		t.Fatalf("show calls = %d, want 4", len(chrome.shown))
	}
}
