//go:build !windows

package winapi

import "errors"

// Desktop is a stub on non-Windows platforms. Every query reports absent
// so the rest of the module compiles and tests everywhere; New refuses to
// hand one out.
type Desktop struct{}

func newDesktop() (*Desktop, error) {
	return nil, errors.New("native window control is only supported on windows")
}

func (d *Desktop) ForegroundWindow() Handle                { return 0 }
func (d *Desktop) WindowTitle(Handle) string               { return "" }
func (d *Desktop) IsMinimized(Handle) bool                 { return false }
func (d *Desktop) FindWindowByTitle(string) (Handle, bool) { return 0, false }
func (d *Desktop) MonitorRect(Handle) (Rect, bool)         { return Rect{}, false }
func (d *Desktop) CreateOverlay(Rect) (Handle, error)      { return 0, errors.New("unsupported platform") }
func (d *Desktop) PlaceBehind(h, ref Handle) error         { return errors.New("unsupported platform") }
func (d *Desktop) Show(Handle)                             {}
func (d *Desktop) Hide(Handle)                             {}
func (d *Desktop) Destroy(Handle)                          {}
func (d *Desktop) FindTaskbar() (Handle, bool)             { return 0, false }
func (d *Desktop) FindLauncherControl() (Handle, bool)     { return 0, false }
