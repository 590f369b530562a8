//go:build windows

package focus

import (
	"syscall"
	"unsafe"

	"github.com/lxn/win"
	"github.com/pkg/errors"
	"golang.org/x/sys/windows"

	"RegionCapture/capture"
)

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	procEnumWindows      = user32.NewProc("EnumWindows")
	procEnumChildWindows = user32.NewProc("EnumChildWindows")
	procGetWindowTextW   = user32.NewProc("GetWindowTextW")
	procGetClassNameW    = user32.NewProc("GetClassNameW")
	procGetDlgItem       = user32.NewProc("GetDlgItem")
	procIsWindow         = user32.NewProc("IsWindow")
)

// System は実際のウィンドウシステムを返します。
func System() Windows {
	return systemWindows{}
}

type systemWindows struct{}

func (systemWindows) Exists(h HWND) bool {
	if h == 0 {
		return false
	}
	r, _, _ := procIsWindow.Call(uintptr(h))
	return r != 0
}

func (systemWindows) Foreground() HWND {
	return HWND(win.GetForegroundWindow())
}

func (systemWindows) Activate(h HWND) error {
	hwnd := win.HWND(h)
	if win.IsIconic(hwnd) {
		win.ShowWindow(hwnd, win.SW_RESTORE)
	}
	if !win.SetForegroundWindow(hwnd) {
		return errors.Errorf("SetForegroundWindow %s refused", h)
	}
	return nil
}

func (systemWindows) WindowRect(h HWND) (capture.Region, error) {
	var rect win.RECT
	if !win.GetWindowRect(win.HWND(h), &rect) {
		return capture.Region{}, errors.New("GetWindowRect failed")
	}
	return regionOf(rect), nil
}

func (systemWindows) ClientRect(h HWND) (capture.Region, error) {
	var rect win.RECT
	if !win.GetClientRect(win.HWND(h), &rect) {
		return capture.Region{}, errors.New("GetClientRect failed")
	}
	return regionOf(rect), nil
}

func (systemWindows) ClientToScreen(h HWND, x, y int) (int, int, error) {
	pt := win.POINT{X: int32(x), Y: int32(y)}
	if !win.ClientToScreen(win.HWND(h), &pt) {
		return 0, 0, errors.New("ClientToScreen failed")
	}
	return int(pt.X), int(pt.Y), nil
}

func (systemWindows) FindControl(parent HWND, id string) (HWND, bool) {
	ref, ok := parseControlRef(id)
	if !ok {
		return 0, false
	}
	if ref.dlgID > 0 {
		r, _, _ := procGetDlgItem.Call(uintptr(parent), uintptr(ref.dlgID))
		return HWND(r), r != 0
	}
	var found HWND
	seen := 0
	cb := syscall.NewCallback(func(hwnd win.HWND, lParam uintptr) uintptr {
		if className(hwnd) == ref.class {
			seen++
			if seen == ref.instance {
				found = HWND(hwnd)
				return 0 // 列挙中止
			}
		}
		return 1
	})
	_, _, _ = procEnumChildWindows.Call(uintptr(parent), cb, 0)
	return found, found != 0
}

func (systemWindows) ControlRect(parent, control HWND) (capture.Region, error) {
	var rect win.RECT
	if !win.GetWindowRect(win.HWND(control), &rect) {
		return capture.Region{}, errors.New("GetWindowRect failed")
	}
	pt := win.POINT{X: rect.Left, Y: rect.Top}
	if !win.ScreenToClient(win.HWND(parent), &pt) {
		return capture.Region{}, errors.New("ScreenToClient failed")
	}
	return capture.Region{
		X:      int(pt.X),
		Y:      int(pt.Y),
		Width:  int(rect.Right - rect.Left),
		Height: int(rect.Bottom - rect.Top),
	}, nil
}

func (systemWindows) VirtualScreen() (capture.Region, error) {
	return capture.VirtualScreen()
}

func (systemWindows) DisplayBounds(index int) (capture.Region, error) {
	return capture.DisplayBounds(index)
}

// List は表示されているトップレベルウィンドウのうち、タイトルを持つものを返します。
func (systemWindows) List() ([]WindowInfo, error) {
	var windowsFound []WindowInfo
	cb := syscall.NewCallback(func(hwnd win.HWND, lParam uintptr) uintptr {
		if win.IsWindowVisible(hwnd) {
			if title := windowText(hwnd); title != "" {
				windowsFound = append(windowsFound, WindowInfo{Handle: HWND(hwnd), Title: title})
			}
		}
		return 1 // 続行
	})
	r, _, err := procEnumWindows.Call(cb, 0)
	if r == 0 {
		return nil, errors.Wrap(err, "EnumWindows")
	}
	return windowsFound, nil
}

func (systemWindows) FindByTitle(title string) (HWND, bool) {
	var found HWND
	cb := syscall.NewCallback(func(hwnd win.HWND, lParam uintptr) uintptr {
		if win.IsWindowVisible(hwnd) && windowText(hwnd) == title {
			found = HWND(hwnd)
			return 0 // 列挙中止
		}
		return 1
	})
	_, _, _ = procEnumWindows.Call(cb, 0)
	return found, found != 0
}

func windowText(hwnd win.HWND) string {
	buf := make([]uint16, 256)
	r, _, _ := procGetWindowTextW.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if r == 0 {
		return ""
	}
	return syscall.UTF16ToString(buf[:r])
}

func className(hwnd win.HWND) string {
	buf := make([]uint16, 256)
	r, _, _ := procGetClassNameW.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if r == 0 {
		return ""
	}
	return syscall.UTF16ToString(buf[:r])
}

func regionOf(rect win.RECT) capture.Region {
	return capture.Region{
		X:      int(rect.Left),
		Y:      int(rect.Top),
		Width:  int(rect.Right - rect.Left),
		Height: int(rect.Bottom - rect.Top),
	}
}
