package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"RegionCapture/capture"
	"RegionCapture/config"
	"RegionCapture/focus"
	"RegionCapture/keyboard"
	"RegionCapture/logging"
	"RegionCapture/screencap"
)

var version = "dev"

// flags はコマンド共通のフラグです。
type flags struct {
	cfgFile   string
	output    string
	quality   int
	margin    int
	base64    bool
	press     string
	ifChanged bool
	hwnd      string
	title     string
	control   string
	display   int
}

var opts flags

var rootCmd = &cobra.Command{
	Use:           "regioncapture",
	Short:         "Capture the screen, a window, a client area or a control to an image file",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Capture the whole virtual screen (or one display with --display)",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := focus.FullScreen()
		if cmd.Flags().Changed("display") {
			target = focus.Display(opts.display)
		}
		return run(cmd, func(*screencap.Capturer) (focus.Target, error) { return target, nil })
	},
}

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Capture a window including its frame",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(c *screencap.Capturer) (focus.Target, error) {
			h, err := lookupWindow(c)
			return focus.Window(h), err
		})
	},
}

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Capture the client area of a window",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(c *screencap.Capturer) (focus.Target, error) {
			h, err := lookupWindow(c)
			return focus.ClientArea(h), err
		})
	},
}

var controlCmd = &cobra.Command{
	Use:   "control",
	Short: "Capture a control (dialog ID or ClassNN such as Edit1) inside a window",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(c *screencap.Capturer) (focus.Target, error) {
			h, err := lookupWindow(c)
			return focus.Control(h, opts.control), err
		})
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List visible top-level windows with their handles",
	RunE: func(cmd *cobra.Command, args []string) error {
		windows, err := focus.System().List()
		if err != nil {
			return err
		}
		sort.Slice(windows, func(i, j int) bool { return windows[i].Title < windows[j].Title })
		for _, w := range windows {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", w.Handle, w.Title)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "regioncapture %s\n", version)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&opts.cfgFile, "config", "c", "", "config file (default is regioncapture.yaml in the user config dir or .)")

	for _, cmd := range []*cobra.Command{screenCmd, windowCmd, clientCmd, controlCmd} {
		f := cmd.Flags()
		f.StringVarP(&opts.output, "output", "o", "", "output image file; the extension selects the format")
		f.IntVarP(&opts.quality, "quality", "q", -1, "JPEG quality 0-100 (default from config)")
		f.BoolVar(&opts.base64, "base64", false, "print a base64 JPEG instead of writing a file")
		f.StringVar(&opts.press, "press", "", `key chord sent after activation, e.g. "Ctrl+Shift+P"`)
		f.BoolVar(&opts.ifChanged, "if-changed", false, "leave an existing output with identical pixels untouched")
	}
	for _, cmd := range []*cobra.Command{windowCmd, clientCmd, controlCmd} {
		f := cmd.Flags()
		f.StringVar(&opts.hwnd, "hwnd", "", "window handle (decimal or 0x hex)")
		f.StringVar(&opts.title, "title", "", "exact title of a visible window")
		f.IntVarP(&opts.margin, "margin", "m", -1, "pixels added on each side (default from config)")
		cmd.MarkFlagsMutuallyExclusive("hwnd", "title")
		cmd.MarkFlagsOneRequired("hwnd", "title")
	}
	controlCmd.Flags().StringVar(&opts.control, "control", "", "control dialog ID or ClassNN")
	_ = controlCmd.MarkFlagRequired("control")
	screenCmd.Flags().IntVar(&opts.display, "display", 0, "capture only this display index")

	rootCmd.AddCommand(screenCmd, windowCmd, clientCmd, controlCmd, listCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "エラー: %v\n", err)
		os.Exit(1)
	}
}

// run は設定とロガーを用意し、target で決まる対象をキャプチャして結果を出力します。
func run(cmd *cobra.Command, target func(*screencap.Capturer) (focus.Target, error)) error {
	cfg, err := config.Load(opts.cfgFile)
	if err != nil {
		return errors.Wrap(err, "設定の読み込みに失敗しました")
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		return errors.Wrap(err, "ロガーの作成に失敗しました")
	}
	defer log.Sync()

	quality := cfg.Quality
	if opts.quality >= 0 {
		quality = opts.quality
	}
	margin := marginFor(cmd, cfg.Margin, opts.margin)

	capOpts := []screencap.Option{
		screencap.WithLogger(log),
		screencap.WithQuality(quality),
		screencap.WithSettleDelay(cfg.SettleDelay),
		screencap.WithSkipUnchanged(cfg.SkipUnchanged || opts.ifChanged),
	}
	if opts.press != "" {
		chord, err := keyboard.Parse(opts.press)
		if err != nil {
			return err
		}
		capOpts = append(capOpts, screencap.WithBeforeCapture(pressFunc(chord, cfg.SettleDelay, log)))
	}
	c := screencap.New(capOpts...)

	t, err := target(c)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.base64 {
		s, err := c.CaptureBase64(t, margin, quality)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, s)
		return nil
	}
	if opts.output == "" {
		return errors.New("--output か --base64 を指定してください")
	}
	path, err := c.Capture(t, cfg.OutputPath(opts.output), margin)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, path)
	return nil
}

// marginFor は cmd に適用する余白を返します。--margin を持たないコマンド
// (画面全体やディスプレイ) には設定ファイルの margin も適用しません。
func marginFor(cmd *cobra.Command, configured, flag int) int {
	if cmd.Flags().Lookup("margin") == nil {
		return 0
	}
	if flag >= 0 {
		return flag
	}
	return configured
}

// lookupWindow は --hwnd または --title からウィンドウハンドルを求めます。
func lookupWindow(c *screencap.Capturer) (focus.HWND, error) {
	if opts.title != "" {
		h, ok := c.Windows().FindByTitle(opts.title)
		if !ok {
			return 0, errors.Wrapf(capture.ErrTargetNotFound, "タイトル %q のウィンドウ", opts.title)
		}
		return h, nil
	}
	return focus.ParseHandle(opts.hwnd)
}

// pressFunc はキー操作を送ってから画面が更新されるまで待つ関数を返します。
func pressFunc(chord keyboard.Chord, wait time.Duration, log *zap.Logger) func() error {
	return func() error {
		log.Info("sending keys", zap.Stringer("chord", chord))
		if err := keyboard.Send(chord); err != nil {
			return errors.Wrapf(err, "キー送信に失敗しました (%s)", chord)
		}
		time.Sleep(wait)
		return nil
	}
}
