package output

import (
	"bytes"
	"image"
	"image/jpeg"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// 96 DPI を基準にピクセルを mm に変換します。
const pixelsPerInch = 96
const mmPerInch = 25.4

func pixelsToMm(pixels int) float64 {
	return float64(pixels) * mmPerInch / pixelsPerInch
}

// encodePDF は画像1枚を、画像と同じ大きさ（96 DPI 換算）の1ページの PDF として書き出します。
// 画像は JPEG として埋め込みます。
func encodePDF(w io.Writer, img image.Image, quality int) error {
	var jpg bytes.Buffer
	if err := jpeg.Encode(&jpg, img, &jpeg.Options{Quality: quality}); err != nil {
		return err
	}

	b := img.Bounds()
	wMm := pixelsToMm(b.Dx())
	hMm := pixelsToMm(b.Dy())
	// "P" のとき Size の幅・高さがそのままページの幅・高さになる
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: wMm, Ht: hMm},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)

	opt := gofpdf.ImageOptions{ImageType: "JPEG"}
	pdf.RegisterImageOptionsReader("capture", opt, &jpg)
	pdf.AddPage()
	pw, ph := pdf.GetPageSize()
	pdf.ImageOptions("capture", 0, 0, pw, ph, false, opt, 0, "")
	return pdf.Output(w)
}
