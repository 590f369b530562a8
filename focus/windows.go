package focus

import "RegionCapture/capture"

// WindowInfo は一覧表示用のトップレベルウィンドウ情報です。
type WindowInfo struct {
	Handle HWND
	Title  string
}

// Windows はターゲット解決に使うウィンドウシステムの呼び出しです。
// 矩形はすべて capture.Region で表します。
type Windows interface {
	Exists(h HWND) bool
	Foreground() HWND
	// Activate はウィンドウを前面に出します（最小化されていれば元に戻します）。
	Activate(h HWND) error
	// WindowRect は外枠を含むウィンドウ矩形をスクリーン座標で返します。
	WindowRect(h HWND) (capture.Region, error)
	// ClientRect はクライアント座標のクライアント領域（X, Y は通常 0）を返します。
	ClientRect(h HWND) (capture.Region, error)
	ClientToScreen(h HWND, x, y int) (int, int, error)
	// FindControl は親ウィンドウ内のコントロールを ID または ClassNN で探します。
	FindControl(parent HWND, id string) (HWND, bool)
	// ControlRect は親のクライアント座標でのコントロール矩形を返します。
	ControlRect(parent, control HWND) (capture.Region, error)
	VirtualScreen() (capture.Region, error)
	DisplayBounds(index int) (capture.Region, error)
	// List は表示されているトップレベルウィンドウを返します。
	List() ([]WindowInfo, error)
	// FindByTitle はタイトルに完全一致する最初の表示中ウィンドウを返します。
	FindByTitle(title string) (HWND, bool)
}
