package output

import (
	"bytes"
	"encoding/base64"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"RegionCapture/capture"
)

const (
	// DefaultQuality は JPEG 系の既定の品質です。
	DefaultQuality = 75
	// MaxBase64Quality は base64 出力のサイズを抑えるための品質の上限です。
	MaxBase64Quality = 90
)

// ClampQuality は quality を [0, limit] に収めます。
func ClampQuality(quality, limit int) int {
	if quality < 0 {
		return 0
	}
	if quality > limit {
		return limit
	}
	return quality
}

// Encode は img を format で w に書き出します。
func Encode(w io.Writer, img image.Image, format Format, quality int) error {
	if img == nil {
		return errors.Wrap(capture.ErrEncodeFailed, "nil image")
	}
	if err := format.encode(w, img, ClampQuality(quality, 100)); err != nil {
		return errors.Wrapf(capture.ErrEncodeFailed, "%s: %v", format.Name, err)
	}
	return nil
}

// Save は img を path に保存します。形式は拡張子で決まり、親フォルダが無ければ作成します。
// 非対応の拡張子やエンコード失敗の場合、ファイルは作られません。
func Save(img image.Image, path string, quality int) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, img, format, quality); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(capture.ErrEncodeFailed, "create folder: %v", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		os.Remove(path)
		return errors.Wrapf(capture.ErrEncodeFailed, "write %s: %v", path, err)
	}
	return nil
}

// ToBase64 は img を JPEG にエンコードして base64 文字列で返します。
// quality は MaxBase64Quality を上限に切り詰めます。
func ToBase64(img image.Image, quality int) (string, error) {
	return Base64(img, "jpg", quality)
}

// Base64 は ext で指定した形式で img をエンコードし、base64 文字列で返します。
func Base64(img image.Image, ext string, quality int) (string, error) {
	format, err := formatByExt(ext)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, img, format, ClampQuality(quality, MaxBase64Quality)); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
