// Package compare はキャプチャ画像と既存の出力ファイルが同じ画素かどうかを判定します。
package compare

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Hash は画像の範囲と RGBA 画素の SHA256 を返します。
func Hash(img image.Image) []byte {
	rgba := toRGBA(img)
	b := rgba.Bounds()
	h := sha256.New()
	var size [8]byte
	binary.LittleEndian.PutUint32(size[0:], uint32(b.Dx()))
	binary.LittleEndian.PutUint32(size[4:], uint32(b.Dy()))
	h.Write(size[:])
	for y := 0; y < b.Dy(); y++ {
		off := y * rgba.Stride
		h.Write(rgba.Pix[off : off+b.Dx()*4])
	}
	return h.Sum(nil)
}

// SameAsFile は path の画像が img と同じ画素を持つかを返します。ファイルが無ければ false です。
func SameAsFile(img image.Image, path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()
	existing, _, err := image.Decode(f)
	if err != nil {
		// 読めない（PDF など）場合は別物とみなす
		return false, nil
	}
	return bytes.Equal(Hash(img), Hash(existing)), nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}
