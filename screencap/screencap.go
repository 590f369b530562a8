// Package screencap は全画面・ウィンドウ・クライアント領域・コントロールのキャプチャを
// 画像ファイルまたは base64 文字列として取得します。
//
// 1回の呼び出しごとにグラフィックスセッションを開き、対象を解決し、画面をコピーし、
// エンコードしてから、画像とセッションを必ず解放します。
package screencap

import (
	"image"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"RegionCapture/capture"
	"RegionCapture/compare"
	"RegionCapture/focus"
	"RegionCapture/output"
)

// Capturer はキャプチャ操作の入口です。ゼロ値ではなく New で作ります。
type Capturer struct {
	open          func(*zap.Logger) (*capture.Session, error)
	windows       focus.Windows
	resolver      *focus.Resolver
	log           *zap.Logger
	quality       int
	settle        time.Duration
	sleep         func(time.Duration)
	skipUnchanged bool
	beforeCapture func() error
}

// Option は Capturer の設定です。
type Option func(*Capturer)

// WithLogger はロガーを設定します。既定では何も出力しません。
func WithLogger(log *zap.Logger) Option {
	return func(c *Capturer) {
		if log != nil {
			c.log = log
		}
	}
}

// WithWindows はウィンドウシステムを差し替えます。
func WithWindows(w focus.Windows) Option {
	return func(c *Capturer) { c.windows = w }
}

// WithSessions はグラフィックスセッションの開き方を差し替えます。
func WithSessions(open func(*zap.Logger) (*capture.Session, error)) Option {
	return func(c *Capturer) { c.open = open }
}

// WithQuality はファイル保存時の JPEG 品質を設定します。
func WithQuality(quality int) Option {
	return func(c *Capturer) { c.quality = output.ClampQuality(quality, 100) }
}

// WithSettleDelay は前面化後の待ち時間を設定します。
func WithSettleDelay(d time.Duration) Option {
	return func(c *Capturer) { c.settle = d }
}

// WithSleep は待機関数を差し替えます（テスト用）。
func WithSleep(sleep func(time.Duration)) Option {
	return func(c *Capturer) { c.sleep = sleep }
}

// WithSkipUnchanged を true にすると、出力先に同じ画素の画像が既にあれば書き換えません。
func WithSkipUnchanged(skip bool) Option {
	return func(c *Capturer) { c.skipUnchanged = skip }
}

// WithBeforeCapture は対象の解決（前面化）後、画面をコピーする直前に呼ぶ関数を設定します。
func WithBeforeCapture(fn func() error) Option {
	return func(c *Capturer) { c.beforeCapture = fn }
}

func New(opts ...Option) *Capturer {
	c := &Capturer{
		open:    capture.Open,
		log:     zap.NewNop(),
		quality: output.DefaultQuality,
		settle:  focus.DefaultSettleDelay,
		sleep:   time.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.windows == nil {
		c.windows = focus.System()
	}
	c.resolver = focus.NewResolver(c.windows,
		focus.WithSettleDelay(c.settle),
		focus.WithSleep(c.sleep),
		focus.WithLogger(c.log))
	return c
}

// Windows はこの Capturer が使うウィンドウシステムを返します。
func (c *Capturer) Windows() focus.Windows {
	return c.windows
}

// CaptureFullScreen は仮想スクリーン全体を outputFile に保存します。
func (c *Capturer) CaptureFullScreen(outputFile string) (string, error) {
	return c.Capture(focus.FullScreen(), outputFile, 0)
}

// CaptureDisplay は index 番目のディスプレイを outputFile に保存します。
func (c *Capturer) CaptureDisplay(index int, outputFile string) (string, error) {
	return c.Capture(focus.Display(index), outputFile, 0)
}

// CaptureWindow はウィンドウ全体（外枠を含む）を outputFile に保存します。
func (c *Capturer) CaptureWindow(h focus.HWND, outputFile string, margin int) (string, error) {
	return c.Capture(focus.Window(h), outputFile, margin)
}

// CaptureClientArea はウィンドウのクライアント領域を outputFile に保存します。
func (c *Capturer) CaptureClientArea(h focus.HWND, outputFile string, margin int) (string, error) {
	return c.Capture(focus.ClientArea(h), outputFile, margin)
}

// CaptureControl はウィンドウ内のコントロールを outputFile に保存します。
func (c *Capturer) CaptureControl(h focus.HWND, controlID, outputFile string, margin int) (string, error) {
	return c.Capture(focus.Control(h, controlID), outputFile, margin)
}

// Capture は target をキャプチャして outputFile に保存し、そのパスを返します。
// 形式は拡張子で決まり、非対応の拡張子ならキャプチャ前に失敗します。
func (c *Capturer) Capture(target focus.Target, outputFile string, margin int) (string, error) {
	if _, err := output.FormatFor(outputFile); err != nil {
		return "", err
	}
	err := c.run(target, margin, func(img image.Image) error {
		if c.skipUnchanged {
			same, err := compare.SameAsFile(img, outputFile)
			if err != nil {
				c.log.Warn("compare with existing output failed", zap.String("output", outputFile), zap.Error(err))
			}
			if same {
				c.log.Info("output unchanged, skipped", zap.String("output", outputFile))
				return nil
			}
		}
		return output.Save(img, outputFile, c.quality)
	})
	if err != nil {
		return "", err
	}
	return outputFile, nil
}

// CaptureBase64 は target をキャプチャして JPEG の base64 文字列で返します。
// quality は 90 を上限に切り詰めます。
func (c *Capturer) CaptureBase64(target focus.Target, margin, quality int) (string, error) {
	var encoded string
	err := c.run(target, margin, func(img image.Image) error {
		s, err := output.ToBase64(img, quality)
		encoded = s
		return err
	})
	if err != nil {
		return "", err
	}
	return encoded, nil
}

// run は1回分のキャプチャを行い、画素を sink に渡します。
// defer の順序により、どの経路でも画像はセッションより先に解放されます。
func (c *Capturer) run(target focus.Target, margin int, sink func(image.Image) error) (err error) {
	start := time.Now()
	log := c.log.With(zap.Stringer("target", target))
	log.Info("capture start", zap.Int("margin", margin))
	defer func() {
		if err != nil {
			log.Error("capture failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
			return
		}
		log.Info("capture done", zap.Duration("elapsed", time.Since(start)))
	}()

	sess, err := c.open(log)
	if err != nil {
		return errors.Wrap(err, "open graphics session")
	}
	defer sess.Close()

	region, err := c.resolver.Resolve(target, margin)
	if err != nil {
		return err
	}
	if c.beforeCapture != nil {
		if err := c.beforeCapture(); err != nil {
			return errors.Wrap(err, "before capture")
		}
	}

	img, err := sess.CaptureRegion(region)
	if err != nil {
		return err
	}
	defer img.Close()

	pixels, err := img.RGBA()
	if err != nil {
		return err
	}
	log.Debug("encoding", zap.Int("width", img.Width()), zap.Int("height", img.Height()))
	return sink(pixels)
}
