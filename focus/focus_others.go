//go:build !windows

package focus

import (
	"github.com/pkg/errors"

	"RegionCapture/capture"
)

// System は Windows 以外では常に ErrUnsupportedPlatform を返す実装です。
func System() Windows {
	return unsupported{}
}

type unsupported struct{}

func (unsupported) Exists(HWND) bool {
	return false
}

func (unsupported) Foreground() HWND {
	return 0
}

func (unsupported) Activate(HWND) error {
	return capture.ErrUnsupportedPlatform
}

func (unsupported) FindControl(HWND, string) (HWND, bool) {
	return 0, false
}

func (unsupported) FindByTitle(string) (HWND, bool) {
	return 0, false
}

func (unsupported) WindowRect(HWND) (capture.Region, error) {
	return capture.Region{}, capture.ErrUnsupportedPlatform
}

func (unsupported) ClientRect(HWND) (capture.Region, error) {
	return capture.Region{}, capture.ErrUnsupportedPlatform
}

func (unsupported) ClientToScreen(HWND, int, int) (int, int, error) {
	return 0, 0, capture.ErrUnsupportedPlatform
}

func (unsupported) ControlRect(HWND, HWND) (capture.Region, error) {
	return capture.Region{}, capture.ErrUnsupportedPlatform
}

func (unsupported) VirtualScreen() (capture.Region, error) {
	return capture.Region{}, errors.Wrap(capture.ErrUnsupportedPlatform, "full screen capture")
}

func (unsupported) DisplayBounds(int) (capture.Region, error) {
	return capture.Region{}, errors.Wrap(capture.ErrUnsupportedPlatform, "display capture")
}

func (unsupported) List() ([]WindowInfo, error) {
	return nil, capture.ErrUnsupportedPlatform
}
