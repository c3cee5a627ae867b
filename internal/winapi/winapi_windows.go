//go:build windows

package winapi

import (
	"fmt"
	"sync"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	gdi32    = windows.NewLazySystemDLL("gdi32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procGetModuleHandleW      = kernel32.NewProc("GetModuleHandleW")
	procGetForegroundWindow   = user32.NewProc("GetForegroundWindow")
	procGetWindowTextW        = user32.NewProc("GetWindowTextW")
	procIsIconic              = user32.NewProc("IsIconic")
	procFindWindowW           = user32.NewProc("FindWindowW")
	procFindWindowExW         = user32.NewProc("FindWindowExW")
	procMonitorFromWindow     = user32.NewProc("MonitorFromWindow")
	procGetMonitorInfoW       = user32.NewProc("GetMonitorInfoW")
	procRegisterClassExW      = user32.NewProc("RegisterClassExW")
	procCreateWindowExW       = user32.NewProc("CreateWindowExW")
	procSetLayeredWindowAttrs = user32.NewProc("SetLayeredWindowAttributes")
	procSetWindowPos          = user32.NewProc("SetWindowPos")
	procShowWindow            = user32.NewProc("ShowWindow")
	procDestroyWindow         = user32.NewProc("DestroyWindow")
	procDefWindowProcW        = user32.NewProc("DefWindowProcW")
	procLoadCursorW           = user32.NewProc("LoadCursorW")
	procGetStockObject        = gdi32.NewProc("GetStockObject")
)

const (
	wsPopup          = 0x80000000
	wsExLayered      = 0x00080000
	wsExToolWindow   = 0x00000080
	wsExTransparent  = 0x00000020
	wsExNoActivate   = 0x08000000
	lwaAlpha         = 0x00000002
	swHide           = 0
	swShow           = 5
	swpNoSize        = 0x0001
	swpNoMove        = 0x0002
	swpNoActivate    = 0x0010
	swpShowWindow    = 0x0040
	monitorNearest   = 2
	blackBrush       = 4
	idcArrow         = 32512
	errClassExists   = 1410
	overlayClassName = "BlackbarsOverlay"
	taskbarClass     = "Shell_TrayWnd"
	launcherClass    = "Button"
	launcherTitle    = "Start"
)

type wndClassEx struct {
	cbSize        uint32
	style         uint32
	lpfnWndProc   uintptr
	cbClsExtra    int32
	cbWndExtra    int32
	hInstance     windows.Handle
	hIcon         uintptr
	hCursor       uintptr
	hbrBackground uintptr
	lpszMenuName  *uint16
	lpszClassName *uint16
	hIconSm       uintptr
}

type monitorInfo struct {
	cbSize    uint32
	rcMonitor Rect
	rcWork    Rect
	dwFlags   uint32
}

// Desktop talks to user32/gdi32 directly. All methods are safe to call
// with a zero Handle.
type Desktop struct {
	registerOnce sync.Once
	registerErr  error
	className    *uint16
}

func newDesktop() (*Desktop, error) {
	return &Desktop{}, nil
}

func (d *Desktop) ForegroundWindow() Handle {
	hwnd, _, _ := procGetForegroundWindow.Call()
	return Handle(hwnd)
}

func (d *Desktop) WindowTitle(h Handle) string {
	if h == 0 {
		return ""
	}
	var buf [512]uint16
	n, _, _ := procGetWindowTextW.Call(uintptr(h), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if n == 0 {
		return ""
	}
	return windows.UTF16ToString(buf[:n])
}

func (d *Desktop) IsMinimized(h Handle) bool {
	if h == 0 {
		return false
	}
	ret, _, _ := procIsIconic.Call(uintptr(h))
	return ret != 0
}

func (d *Desktop) FindWindowByTitle(title string) (Handle, bool) {
	titlePtr, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return 0, false
	}
	hwnd, _, _ := procFindWindowW.Call(0, uintptr(unsafe.Pointer(titlePtr)))
	return Handle(hwnd), hwnd != 0
}

// MonitorRect returns the full bounds of the monitor containing h,
// including any area reserved for the taskbar.
func (d *Desktop) MonitorRect(h Handle) (Rect, bool) {
	if h == 0 {
		return Rect{}, false
	}
	monitor, _, _ := procMonitorFromWindow.Call(uintptr(h), monitorNearest)
	if monitor == 0 {
		return Rect{}, false
	}

	var info monitorInfo
	info.cbSize = uint32(unsafe.Sizeof(info))
	ret, _, _ := procGetMonitorInfoW.Call(monitor, uintptr(unsafe.Pointer(&info)))
	if ret == 0 {
		return Rect{}, false
	}
	return info.rcMonitor, true
}

func (d *Desktop) registerOverlayClass() error {
	d.registerOnce.Do(func() {
		className, err := windows.UTF16PtrFromString(overlayClassName)
		if err != nil {
			d.registerErr = err
			return
		}

		instance, _, callErr := procGetModuleHandleW.Call(0)
		if instance == 0 {
			d.registerErr = fmt.Errorf("get module handle: %w", callErr)
			return
		}

		cursor, _, _ := procLoadCursorW.Call(0, idcArrow)
		brush, _, _ := procGetStockObject.Call(blackBrush)

		wc := wndClassEx{
			lpfnWndProc:   procDefWindowProcW.Addr(),
			hInstance:     windows.Handle(instance),
			hCursor:       cursor,
			hbrBackground: brush,
			lpszClassName: className,
		}
		wc.cbSize = uint32(unsafe.Sizeof(wc))

		atom, _, callErr := procRegisterClassExW.Call(uintptr(unsafe.Pointer(&wc)))
		if atom == 0 {
			if errno, ok := callErr.(syscall.Errno); !ok || errno != errClassExists {
				d.registerErr = fmt.Errorf("register overlay class: %w", callErr)
				return
			}
		}
		d.className = className
	})
	return d.registerErr
}

// CreateOverlay creates a borderless, click-through, non-activating black
// window covering r. It has no taskbar presence and is fully opaque.
func (d *Desktop) CreateOverlay(r Rect) (Handle, error) {
	if err := d.registerOverlayClass(); err != nil {
		return 0, err
	}

	title, err := windows.UTF16PtrFromString("blackbars overlay")
	if err != nil {
		return 0, err
	}

	exStyle := uintptr(wsExLayered | wsExToolWindow | wsExTransparent | wsExNoActivate)
	hwnd, _, callErr := procCreateWindowExW.Call(
		exStyle,
		uintptr(unsafe.Pointer(d.className)),
		uintptr(unsafe.Pointer(title)),
		wsPopup,
		uintptr(r.Left), uintptr(r.Top),
		uintptr(r.Width()), uintptr(r.Height()),
		0, 0, 0, 0,
	)
	if hwnd == 0 {
		return 0, fmt.Errorf("create overlay window: %w", callErr)
	}

	procSetLayeredWindowAttrs.Call(hwnd, 0, 255, lwaAlpha)
	return Handle(hwnd), nil
}

// PlaceBehind inserts h directly below ref in the z-order and shows it,
// without moving, resizing, or activating it.
func (d *Desktop) PlaceBehind(h, ref Handle) error {
	ret, _, callErr := procSetWindowPos.Call(
		uintptr(h), uintptr(ref),
		0, 0, 0, 0,
		swpNoMove|swpNoSize|swpNoActivate|swpShowWindow,
	)
	if ret == 0 {
		return fmt.Errorf("set window pos: %w", callErr)
	}
	return nil
}

func (d *Desktop) Show(h Handle) {
	if h == 0 {
		return
	}
	procShowWindow.Call(uintptr(h), swShow)
}

func (d *Desktop) Hide(h Handle) {
	if h == 0 {
		return
	}
	procShowWindow.Call(uintptr(h), swHide)
}

func (d *Desktop) Destroy(h Handle) {
	if h == 0 {
		return
	}
	procDestroyWindow.Call(uintptr(h))
}

func (d *Desktop) FindTaskbar() (Handle, bool) {
	classPtr, err := windows.UTF16PtrFromString(taskbarClass)
	if err != nil {
		return 0, false
	}
	hwnd, _, _ := procFindWindowW.Call(uintptr(unsafe.Pointer(classPtr)), 0)
	return Handle(hwnd), hwnd != 0
}

// FindLauncherControl locates the Start button. Absent on desktop
// configurations that don't expose it as a discoverable window.
func (d *Desktop) FindLauncherControl() (Handle, bool) {
	if _, ok := d.FindTaskbar(); !ok {
		return 0, false
	}

	classPtr, err := windows.UTF16PtrFromString(launcherClass)
	if err != nil {
		return 0, false
	}
	titlePtr, err := windows.UTF16PtrFromString(launcherTitle)
	if err != nil {
		return 0, false
	}

	hwnd, _, _ := procFindWindowExW.Call(0, 0, uintptr(unsafe.Pointer(classPtr)), uintptr(unsafe.Pointer(titlePtr)))
	return Handle(hwnd), hwnd != 0
}
