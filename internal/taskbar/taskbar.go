// Package taskbar toggles visibility of the system taskbar and its
// launcher control. Both operations are best effort: the taskbar is
// shared desktop chrome this process doesn't own, so lookups can fail
// and visibility is never assumed to persist between calls.
package taskbar

import "github.com/hallgrim/blackbars/internal/winapi"

// Chrome locates and toggles the desktop chrome surfaces.
type Chrome interface {
	FindTaskbar() (winapi.Handle, bool)
	FindLauncherControl() (winapi.Handle, bool)
	Show(winapi.Handle)
	Hide(winapi.Handle)
}

type Controller struct {
	chrome Chrome
}

func NewController(chrome Chrome) *Controller {
	return &Controller{chrome: chrome}
}

// Hide hides the taskbar and launcher control if they can be found.
// Absence of either is not an error.
func (c *Controller) Hide() {
	if taskbar, ok := c.chrome.FindTaskbar(); ok {
		c.chrome.Hide(taskbar)
	}
	if launcher, ok := c.chrome.FindLauncherControl(); ok {
		c.chrome.Hide(launcher)
	}
}

// Show restores the taskbar and launcher control. Idempotent.
func (c *Controller) Show() {
	if taskbar, ok := c.chrome.FindTaskbar(); ok {
		c.chrome.Show(taskbar)
	}
	if launcher, ok := c.chrome.FindLauncherControl(); ok {
		c.chrome.Show(launcher)
	}
}
