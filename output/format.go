package output

import (
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"RegionCapture/capture"
)

// Format は拡張子から選ばれる画像形式です。
type Format struct {
	Name   string
	encode func(w io.Writer, img image.Image, quality int) error
}

var (
	formatBMP = Format{Name: "bmp", encode: func(w io.Writer, img image.Image, _ int) error {
		return bmp.Encode(w, img)
	}}
	formatJPEG = Format{Name: "jpeg", encode: func(w io.Writer, img image.Image, quality int) error {
		return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	}}
	formatGIF = Format{Name: "gif", encode: func(w io.Writer, img image.Image, _ int) error {
		return gif.Encode(w, img, nil)
	}}
	formatTIFF = Format{Name: "tiff", encode: func(w io.Writer, img image.Image, _ int) error {
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}}
	formatPNG = Format{Name: "png", encode: func(w io.Writer, img image.Image, _ int) error {
		return png.Encode(w, img)
	}}
	formatPDF = Format{Name: "pdf", encode: encodePDF}
)

// DIB と RLE は BMP として（非圧縮で）書き出す
var formats = map[string]Format{
	"bmp":  formatBMP,
	"dib":  formatBMP,
	"rle":  formatBMP,
	"jpg":  formatJPEG,
	"jpeg": formatJPEG,
	"jpe":  formatJPEG,
	"jfif": formatJPEG,
	"gif":  formatGIF,
	"tif":  formatTIFF,
	"tiff": formatTIFF,
	"png":  formatPNG,
	"pdf":  formatPDF,
}

// FormatFor はファイルパスの拡張子（大文字小文字は区別しない）から形式を選びます。
func FormatFor(path string) (Format, error) {
	return formatByExt(filepath.Ext(path))
}

func formatByExt(ext string) (Format, error) {
	name := strings.ToLower(strings.TrimPrefix(ext, "."))
	f, ok := formats[name]
	if !ok {
		return Format{}, errors.Wrapf(capture.ErrUnsupportedFormat, "extension %q", ext)
	}
	return f, nil
}
