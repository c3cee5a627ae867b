// Package overlay owns the lifecycle of the single black background
// window placed behind the target.
package overlay

import (
	"fmt"

	"github.com/hallgrim/blackbars/internal/winapi"
)

// Surface is the subset of native window operations the manager needs.
type Surface interface {
	CreateOverlay(winapi.Rect) (winapi.Handle, error)
	PlaceBehind(h, ref winapi.Handle) error
	Hide(winapi.Handle)
	Destroy(winapi.Handle)
}

// Manager lazily creates one overlay window and reuses it for the rest
// of the process lifetime. It is not safe for concurrent use; the
// polling loop is its only caller.
type Manager struct {
	surface Surface
	handle  winapi.Handle
}

func NewManager(surface Surface) *Manager {
	return &Manager{surface: surface}
}

// Ensure creates the overlay sized to rect if it doesn't exist yet.
// An existing overlay is kept as-is, even if rect differs: geometry is
// resolved once, on first activation.
func (m *Manager) Ensure(rect winapi.Rect) error {
	if m.handle != 0 {
		return nil
	}

	handle, err := m.surface.CreateOverlay(rect)
	if err != nil {
		return fmt.Errorf("create overlay: %w", err)
	}
	m.handle = handle
	return nil
}

// PlaceBehind restacks the overlay directly below ref and shows it.
func (m *Manager) PlaceBehind(ref winapi.Handle) error {
	if m.handle == 0 {
		return fmt.Errorf("overlay not created")
	}
	if err := m.surface.PlaceBehind(m.handle, ref); err != nil {
		return fmt.Errorf("place overlay: %w", err)
	}
	return nil
}

// Hide hides the overlay. No-op if it was never created.
func (m *Manager) Hide() {
	if m.handle == 0 {
		return
	}
	m.surface.Hide(m.handle)
}

// Destroy releases the overlay window and forgets the handle. Safe to
// call repeatedly and before the overlay ever existed.
func (m *Manager) Destroy() {
	if m.handle == 0 {
		return
	}
	m.surface.Destroy(m.handle)
	m.handle = 0
}

func (m *Manager) Created() bool { return m.handle != 0 }

func (m *Manager) Handle() winapi.Handle { return m.handle }
