//go:build windows

package capture

import (
	"runtime"
	"unsafe"

	"github.com/lxn/win"
	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

var (
	user32                           = windows.NewLazySystemDLL("user32.dll")
	procSetThreadDpiAwarenessContext = user32.NewProc("SetThreadDpiAwarenessContext")
)

// DPI_AWARENESS_CONTEXT_PER_MONITOR_AWARE_V2 ((DPI_AWARENESS_CONTEXT)-4)
const dpiAwarenessPerMonitorV2 = ^uintptr(3)

// openPlatform は呼び出し中のスレッドを固定し、DPI 認識をモニタ単位に切り替えます。
// 返す release で元に戻します。
func openPlatform() (GDI, func(), error) {
	runtime.LockOSThread()
	var prev uintptr
	if procSetThreadDpiAwarenessContext.Find() == nil {
		prev, _, _ = procSetThreadDpiAwarenessContext.Call(dpiAwarenessPerMonitorV2)
	}
	release := func() {
		if prev != 0 {
			procSetThreadDpiAwarenessContext.Call(prev)
		}
		runtime.UnlockOSThread()
	}
	return winGDI{}, release, nil
}

type winGDI struct{}

func (winGDI) GetScreenDC() (Handle, error) {
	hdc := win.GetDC(0)
	if hdc == 0 {
		return 0, errors.New("GetDC failed")
	}
	return Handle(hdc), nil
}

func (winGDI) ReleaseScreenDC(dc Handle) {
	win.ReleaseDC(0, win.HDC(dc))
}

func (winGDI) CreateCompatibleDC(dc Handle) (Handle, error) {
	mem := win.CreateCompatibleDC(win.HDC(dc))
	if mem == 0 {
		return 0, errors.New("CreateCompatibleDC failed")
	}
	return Handle(mem), nil
}

func (winGDI) DeleteDC(dc Handle) {
	win.DeleteDC(win.HDC(dc))
}

func (winGDI) CreateCompatibleBitmap(dc Handle, width, height int) (Handle, error) {
	bmp := win.CreateCompatibleBitmap(win.HDC(dc), int32(width), int32(height))
	if bmp == 0 {
		return 0, errors.New("CreateCompatibleBitmap failed")
	}
	return Handle(bmp), nil
}

func (winGDI) SelectObject(dc, obj Handle) (Handle, error) {
	old := win.SelectObject(win.HDC(dc), win.HGDIOBJ(obj))
	if old == 0 {
		return 0, errors.New("SelectObject failed")
	}
	return Handle(old), nil
}

func (winGDI) DeleteObject(obj Handle) {
	win.DeleteObject(win.HGDIOBJ(obj))
}

func (winGDI) BitBlt(dst Handle, width, height int, src Handle, x, y int) error {
	if !win.BitBlt(win.HDC(dst), 0, 0, int32(width), int32(height),
		win.HDC(src), int32(x), int32(y), win.SRCCOPY|win.CAPTUREBLT) {
		return errors.New("BitBlt failed")
	}
	return nil
}

func (winGDI) ReadBitmap(bmp Handle, width, height int) ([]byte, error) {
	hdc := win.GetDC(0)
	if hdc == 0 {
		return nil, errors.New("GetDC failed")
	}
	defer win.ReleaseDC(0, hdc)

	var bmi win.BITMAPINFO
	bmi.BmiHeader.BiSize = uint32(unsafe.Sizeof(bmi.BmiHeader))
	bmi.BmiHeader.BiWidth = int32(width)
	bmi.BmiHeader.BiHeight = -int32(height) // トップダウン
	bmi.BmiHeader.BiPlanes = 1
	bmi.BmiHeader.BiBitCount = 32
	bmi.BmiHeader.BiCompression = win.BI_RGB

	buf := make([]byte, width*height*4)
	if win.GetDIBits(hdc, win.HBITMAP(bmp), 0, uint32(height), &buf[0], &bmi, win.DIB_RGB_COLORS) == 0 {
		return nil, errors.New("GetDIBits failed")
	}
	return buf, nil
}
