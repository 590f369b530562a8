package capture

import "github.com/pkg/errors"

// キャプチャ処理のエラー分類。呼び出し側は errors.Is で判定します。
var (
	ErrTargetNotFound      = errors.New("target window not found")
	ErrControlNotFound     = errors.New("control not found")
	ErrInvalidRegion       = errors.New("invalid capture region")
	ErrCaptureFailed       = errors.New("capture failed")
	ErrUnsupportedFormat   = errors.New("unsupported image format")
	ErrEncodeFailed        = errors.New("encode failed")
	ErrUnsupportedPlatform = errors.New("unsupported platform")
)

// captureFailed は OS 呼び出しの失敗を ErrCaptureFailed として包みます。
func captureFailed(op string, err error) error {
	if err == nil {
		return errors.Wrap(ErrCaptureFailed, op)
	}
	return errors.Wrapf(ErrCaptureFailed, "%s: %v", op, err)
}
