// Package focustest はメモリ上で動く focus.Windows の偽実装を提供します。
package focustest

import (
	"github.com/pkg/errors"

	"RegionCapture/capture"
	"RegionCapture/focus"
)

// Window は偽のトップレベルウィンドウです。
type Window struct {
	Title string
	// Rect は外枠のスクリーン座標、ClientOrigin はクライアント領域左上のスクリーン座標です。
	Rect         capture.Region
	ClientOrigin [2]int
	ClientSize   [2]int
	// Controls は識別子（ID または ClassNN）からクライアント座標の矩形への対応です。
	Controls map[string]capture.Region
	Hidden   bool
}

// Windows は focus.Windows の偽実装です。
type Windows struct {
	Windows    map[focus.HWND]*Window
	Displays   []capture.Region
	Active     focus.HWND
	Activated  []focus.HWND
	RefuseFore bool

	controls map[focus.HWND]capture.Region
	next     focus.HWND
}

func New() *Windows {
	return &Windows{
		Windows:  map[focus.HWND]*Window{},
		Displays: []capture.Region{{X: 0, Y: 0, Width: 1920, Height: 1080}},
		controls: map[focus.HWND]capture.Region{},
		next:     0x9000,
	}
}

// Add はウィンドウを登録してハンドルを返します。
func (w *Windows) Add(win *Window) focus.HWND {
	w.next += 0x10
	w.Windows[w.next] = win
	return w.next
}

func (w *Windows) Exists(h focus.HWND) bool {
	_, ok := w.Windows[h]
	return ok
}

func (w *Windows) Foreground() focus.HWND {
	return w.Active
}

func (w *Windows) Activate(h focus.HWND) error {
	w.Activated = append(w.Activated, h)
	if w.RefuseFore {
		return errors.New("SetForegroundWindow refused")
	}
	w.Active = h
	return nil
}

func (w *Windows) WindowRect(h focus.HWND) (capture.Region, error) {
	win, ok := w.Windows[h]
	if !ok {
		return capture.Region{}, errors.New("no such window")
	}
	return win.Rect, nil
}

func (w *Windows) ClientRect(h focus.HWND) (capture.Region, error) {
	win, ok := w.Windows[h]
	if !ok {
		return capture.Region{}, errors.New("no such window")
	}
	return capture.Region{Width: win.ClientSize[0], Height: win.ClientSize[1]}, nil
}

func (w *Windows) ClientToScreen(h focus.HWND, x, y int) (int, int, error) {
	win, ok := w.Windows[h]
	if !ok {
		return 0, 0, errors.New("no such window")
	}
	return win.ClientOrigin[0] + x, win.ClientOrigin[1] + y, nil
}

func (w *Windows) FindControl(parent focus.HWND, id string) (focus.HWND, bool) {
	win, ok := w.Windows[parent]
	if !ok {
		return 0, false
	}
	rect, ok := win.Controls[id]
	if !ok {
		return 0, false
	}
	w.next++
	w.controls[w.next] = rect
	return w.next, true
}

func (w *Windows) ControlRect(parent, control focus.HWND) (capture.Region, error) {
	rect, ok := w.controls[control]
	if !ok {
		return capture.Region{}, errors.New("no such control")
	}
	return rect, nil
}

func (w *Windows) VirtualScreen() (capture.Region, error) {
	return capture.Union(w.Displays)
}

func (w *Windows) DisplayBounds(index int) (capture.Region, error) {
	if index < 0 || index >= len(w.Displays) {
		return capture.Region{}, errors.Wrapf(capture.ErrTargetNotFound, "display %d", index)
	}
	return w.Displays[index], nil
}

func (w *Windows) List() ([]focus.WindowInfo, error) {
	var list []focus.WindowInfo
	for h, win := range w.Windows {
		if !win.Hidden && win.Title != "" {
			list = append(list, focus.WindowInfo{Handle: h, Title: win.Title})
		}
	}
	return list, nil
}

func (w *Windows) FindByTitle(title string) (focus.HWND, bool) {
	for h, win := range w.Windows {
		if !win.Hidden && win.Title == title {
			return h, true
		}
	}
	return 0, false
}
