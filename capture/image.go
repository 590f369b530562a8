package capture

import (
	"image"

	"github.com/pkg/errors"
)

// Image はキャプチャしたオフスクリーンビットマップです。
// 生成した呼び出しが専有し、Close でちょうど1回破棄されます。
type Image struct {
	gdi      GDI
	bmp      Handle
	width    int
	height   int
	disposed bool
}

func (m *Image) Width() int  { return m.width }
func (m *Image) Height() int { return m.height }

// RGBA はビットマップの画素を読み出して image.RGBA に変換します。
func (m *Image) RGBA() (*image.RGBA, error) {
	if m == nil || m.disposed {
		return nil, errors.Wrap(ErrCaptureFailed, "image already disposed")
	}
	pixels, err := m.gdi.ReadBitmap(m.bmp, m.width, m.height)
	if err != nil {
		return nil, captureFailed("GetDIBits", err)
	}
	if len(pixels) < m.width*m.height*4 {
		return nil, errors.Wrapf(ErrCaptureFailed, "short bitmap read: %d bytes", len(pixels))
	}
	img := image.NewRGBA(image.Rect(0, 0, m.width, m.height))
	for i := 0; i < len(img.Pix); i += 4 {
		// BGRA => RGBA、アルファは不透明にする
		img.Pix[i+0] = pixels[i+2]
		img.Pix[i+1] = pixels[i+1]
		img.Pix[i+2] = pixels[i+0]
		img.Pix[i+3] = 255
	}
	return img, nil
}

// Close はビットマップハンドルを解放します。2回目以降は何もしません。
func (m *Image) Close() error {
	if m == nil || m.disposed {
		return nil
	}
	m.disposed = true
	m.gdi.DeleteObject(m.bmp)
	return nil
}
