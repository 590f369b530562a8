package capture

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Session はグラフィックスサブシステムの初期化から後始末までを1回のキャプチャ呼び出しに
// 閉じ込めるガードです。Open で取得し、必ず Close で解放します。
type Session struct {
	gdi     GDI
	release func()
	closed  bool
	log     *zap.Logger
}

// Open は現在のプラットフォームの GDI でセッションを開始します。
func Open(log *zap.Logger) (*Session, error) {
	g, release, err := openPlatform()
	if err != nil {
		return nil, err
	}
	return NewSessionWithRelease(g, log, release), nil
}

// NewSession は任意の GDI 実装でセッションを作ります（主にテスト用）。
func NewSession(g GDI, log *zap.Logger) *Session {
	return NewSessionWithRelease(g, log, nil)
}

// NewSessionWithRelease は Close 時に release を1回だけ呼ぶセッションを作ります。
func NewSessionWithRelease(g GDI, log *zap.Logger, release func()) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{gdi: g, log: log, release: release}
}

// Close はセッションを解放します。2回目以降は何もしません。
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.release != nil {
		s.release()
	}
	return nil
}

// CaptureRegion は画面上の r の範囲をオフスクリーンビットマップへコピーして返します。
// 途中で失敗した場合、それまでに取得したハンドルはすべて解放されます。
// 成功時に返す Image の破棄は呼び出し側の責任です。
func (s *Session) CaptureRegion(r Region) (img *Image, err error) {
	if !r.Valid() {
		return nil, errors.Wrapf(ErrInvalidRegion, "region %s", r)
	}
	if s.closed {
		return nil, errors.Wrap(ErrCaptureFailed, "session already closed")
	}
	g := s.gdi

	screen, err := g.GetScreenDC()
	if err != nil {
		return nil, captureFailed("GetDC", err)
	}
	defer g.ReleaseScreenDC(screen)

	// 選択中のビットマップは削除できないため、メモリ DC を消した後に削除する
	var bmp Handle
	defer func() {
		if img == nil && bmp != 0 {
			g.DeleteObject(bmp)
		}
	}()

	mem, err := g.CreateCompatibleDC(screen)
	if err != nil {
		return nil, captureFailed("CreateCompatibleDC", err)
	}
	defer g.DeleteDC(mem)

	bmp, err = g.CreateCompatibleBitmap(screen, r.Width, r.Height)
	if err != nil {
		return nil, captureFailed("CreateCompatibleBitmap", err)
	}

	old, err := g.SelectObject(mem, bmp)
	if err != nil {
		return nil, captureFailed("SelectObject", err)
	}
	blitErr := g.BitBlt(mem, r.Width, r.Height, screen, r.X, r.Y)
	// ビットマップを DC から外してから返す（選択中のままでは読み出せない）
	_, restoreErr := g.SelectObject(mem, old)
	if blitErr != nil {
		return nil, captureFailed("BitBlt", blitErr)
	}
	if restoreErr != nil {
		return nil, captureFailed("SelectObject", restoreErr)
	}

	s.log.Debug("blit done", zap.Stringer("region", r))
	return &Image{gdi: g, bmp: bmp, width: r.Width, height: r.Height}, nil
}
