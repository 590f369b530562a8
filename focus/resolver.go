package focus

import (
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"RegionCapture/capture"
)

// DefaultSettleDelay はウィンドウを前面に出した後、アニメーションが落ち着くまで待つ時間です。
const DefaultSettleDelay = 200 * time.Millisecond

// Resolver はキャプチャ対象をスクリーン座標の範囲に解決します。
type Resolver struct {
	windows Windows
	settle  time.Duration
	sleep   func(time.Duration)
	log     *zap.Logger
}

// Option は Resolver の設定です。
type Option func(*Resolver)

// WithSettleDelay は前面化後の待ち時間を設定します。
func WithSettleDelay(d time.Duration) Option {
	return func(r *Resolver) { r.settle = d }
}

// WithSleep は待機関数を差し替えます（テスト用）。
func WithSleep(sleep func(time.Duration)) Option {
	return func(r *Resolver) { r.sleep = sleep }
}

func WithLogger(log *zap.Logger) Option {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}

func NewResolver(w Windows, opts ...Option) *Resolver {
	r := &Resolver{
		windows: w,
		settle:  DefaultSettleDelay,
		sleep:   time.Sleep,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve は target の範囲を求め、上下左右に margin を加えて返します。
// ウィンドウ系の対象は、前面でなければ1回だけ前面化してから測ります。
func (r *Resolver) Resolve(t Target, margin int) (capture.Region, error) {
	region, err := r.resolve(t)
	if err != nil {
		return capture.Region{}, err
	}
	region = region.Expand(margin)
	r.log.Debug("target resolved",
		zap.Stringer("target", t),
		zap.Stringer("region", region),
		zap.Int("margin", margin))
	return region, nil
}

func (r *Resolver) resolve(t Target) (capture.Region, error) {
	switch t.Kind {
	case KindFullScreen:
		return r.windows.VirtualScreen()
	case KindDisplay:
		return r.windows.DisplayBounds(t.Display)
	case KindWindow:
		if err := r.prepare(t.Window); err != nil {
			return capture.Region{}, err
		}
		return r.windowRect(t.Window)
	case KindClientArea:
		if err := r.prepare(t.Window); err != nil {
			return capture.Region{}, err
		}
		return r.clientRect(t.Window)
	case KindControl:
		if !r.windows.Exists(t.Window) {
			return capture.Region{}, errors.Wrapf(capture.ErrTargetNotFound, "window %s", t.Window)
		}
		// 前面化の前にコントロールを探す（見つからなければ前面化しない）
		ctrl, ok := r.windows.FindControl(t.Window, t.Control)
		if !ok {
			return capture.Region{}, errors.Wrapf(capture.ErrControlNotFound, "control %q in window %s", t.Control, t.Window)
		}
		r.activate(t.Window)
		return r.controlRect(t.Window, ctrl)
	}
	return capture.Region{}, errors.Errorf("unknown target kind %d", t.Kind)
}

func (r *Resolver) prepare(h HWND) error {
	if !r.windows.Exists(h) {
		return errors.Wrapf(capture.ErrTargetNotFound, "window %s", h)
	}
	r.activate(h)
	return nil
}

// activate は前面でなければ前面化して少し待ちます。失敗しても続行します。
func (r *Resolver) activate(h HWND) {
	if r.windows.Foreground() == h {
		return
	}
	if err := r.windows.Activate(h); err != nil {
		r.log.Warn("activate failed", zap.Stringer("hwnd", h), zap.Error(err))
	}
	if r.settle > 0 {
		r.sleep(r.settle)
	}
}

func (r *Resolver) windowRect(h HWND) (capture.Region, error) {
	rect, err := r.windows.WindowRect(h)
	if err != nil {
		return capture.Region{}, errors.Wrapf(capture.ErrTargetNotFound, "window rect of %s: %v", h, err)
	}
	return rect, nil
}

func (r *Resolver) clientRect(h HWND) (capture.Region, error) {
	rect, err := r.windows.ClientRect(h)
	if err != nil {
		return capture.Region{}, errors.Wrapf(capture.ErrTargetNotFound, "client rect of %s: %v", h, err)
	}
	x, y, err := r.windows.ClientToScreen(h, rect.X, rect.Y)
	if err != nil {
		return capture.Region{}, errors.Wrapf(capture.ErrTargetNotFound, "client origin of %s: %v", h, err)
	}
	return capture.Region{X: x, Y: y, Width: rect.Width, Height: rect.Height}, nil
}

func (r *Resolver) controlRect(parent, ctrl HWND) (capture.Region, error) {
	rect, err := r.windows.ControlRect(parent, ctrl)
	if err != nil {
		return capture.Region{}, errors.Wrapf(capture.ErrControlNotFound, "control rect of %s: %v", ctrl, err)
	}
	x, y, err := r.windows.ClientToScreen(parent, rect.X, rect.Y)
	if err != nil {
		return capture.Region{}, errors.Wrapf(capture.ErrTargetNotFound, "client origin of %s: %v", parent, err)
	}
	// 幅と高さは変換前のコントロール矩形のものをそのまま使う
	return capture.Region{X: x, Y: y, Width: rect.Width, Height: rect.Height}, nil
}
