package capture

// Handle は DC やビットマップなど OS が払い出すハンドルです。
type Handle uintptr

// GDI はキャプチャに必要なグラフィックスサブシステムの呼び出しです。
// Windows では lxn/win で実装され、テストでは capturetest.GDI に差し替えます。
type GDI interface {
	GetScreenDC() (Handle, error)
	ReleaseScreenDC(dc Handle)
	CreateCompatibleDC(dc Handle) (Handle, error)
	DeleteDC(dc Handle)
	CreateCompatibleBitmap(dc Handle, width, height int) (Handle, error)
	// SelectObject は obj を dc に選択し、それまで選択されていたオブジェクトを返します。
	SelectObject(dc, obj Handle) (Handle, error)
	DeleteObject(obj Handle)
	// BitBlt は src の (x, y) から width x height を dst の原点へコピーします。
	BitBlt(dst Handle, width, height int, src Handle, x, y int) error
	// ReadBitmap はどの DC にも選択されていないビットマップを
	// トップダウンの BGRA バイト列として読み出します。
	ReadBitmap(bmp Handle, width, height int) ([]byte, error)
}
