// Package winapi wraps the native window primitives blackbars needs:
// querying the foreground window, resolving monitor geometry, and
// creating/stacking/hiding the overlay and taskbar surfaces.
//
// All query operations degrade to zero values on failure (empty title,
// false, absent handle) so callers never have to special-case native
// errors. Mutating operations are best effort.
package winapi

import "fmt"

// Handle identifies a native window. Zero means absent.
type Handle uintptr

// Rect is a rectangle in absolute pixel coordinates.
type Rect struct {
	Left   int32
	Top    int32
	Right  int32
	Bottom int32
}

func (r Rect) Width() int32  { return r.Right - r.Left }
func (r Rect) Height() int32 { return r.Bottom - r.Top }

func (r Rect) String() string {
	return fmt.Sprintf("(%d, %d, %d, %d)", r.Left, r.Top, r.Right, r.Bottom)
}

// New returns the native desktop collaborator for this platform.
func New() (*Desktop, error) {
	return newDesktop()
}
