package focus

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// HWND はウィンドウ（またはコントロール）のハンドルです。
type HWND uintptr

func (h HWND) String() string {
	return fmt.Sprintf("0x%08X", uintptr(h))
}

// ParseHandle は "0x1A2B" 形式の16進または10進の文字列をハンドルに変換します。
func ParseHandle(s string) (HWND, error) {
	digits := strings.TrimSpace(s)
	base := 10
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		digits, base = digits[2:], 16
	}
	v, err := strconv.ParseUint(digits, base, 64)
	if err != nil || v == 0 {
		return 0, errors.Errorf("invalid window handle %q", s)
	}
	return HWND(v), nil
}

// Kind はキャプチャ対象の種類です。
type Kind int

const (
	KindFullScreen Kind = iota
	KindWindow
	KindClientArea
	KindControl
	KindDisplay
)

func (k Kind) String() string {
	switch k {
	case KindFullScreen:
		return "fullscreen"
	case KindWindow:
		return "window"
	case KindClientArea:
		return "client"
	case KindControl:
		return "control"
	case KindDisplay:
		return "display"
	}
	return "unknown"
}

// Target はキャプチャ対象です。FullScreen などのコンストラクタで作ります。
type Target struct {
	Kind    Kind
	Window  HWND
	Control string
	Display int
}

func FullScreen() Target { return Target{Kind: KindFullScreen} }
func Window(h HWND) Target { return Target{Kind: KindWindow, Window: h} }
func ClientArea(h HWND) Target { return Target{Kind: KindClientArea, Window: h} }
func Display(index int) Target { return Target{Kind: KindDisplay, Display: index} }
func Control(h HWND, id string) Target {
	return Target{Kind: KindControl, Window: h, Control: id}
}

func (t Target) String() string {
	switch t.Kind {
	case KindWindow, KindClientArea:
		return fmt.Sprintf("%s %s", t.Kind, t.Window)
	case KindControl:
		return fmt.Sprintf("control %q of %s", t.Control, t.Window)
	case KindDisplay:
		return fmt.Sprintf("display %d", t.Display)
	}
	return t.Kind.String()
}
