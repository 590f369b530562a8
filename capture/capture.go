package capture

import (
	"fmt"
	"image"
)

// Region はキャプチャ範囲（スクリーン座標の左上座標と幅・高さ）を表します。
type Region struct {
	X, Y, Width, Height int
}

// Valid は幅・高さがともに正の場合に true を返します。
func (r Region) Valid() bool {
	return r.Width > 0 && r.Height > 0
}

// Expand は上下左右に margin ピクセルずつ広げた範囲を返します。負の値なら縮めます。
func (r Region) Expand(margin int) Region {
	return Region{
		X:      r.X - margin,
		Y:      r.Y - margin,
		Width:  r.Width + 2*margin,
		Height: r.Height + 2*margin,
	}
}

// Bounds は image.Rectangle に変換します。
func (r Region) Bounds() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

func (r Region) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}

// RegionOf は image.Rectangle を Region に変換します。
func RegionOf(rect image.Rectangle) Region {
	return Region{X: rect.Min.X, Y: rect.Min.Y, Width: rect.Dx(), Height: rect.Dy()}
}
