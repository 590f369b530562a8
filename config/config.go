package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config はキャプチャの既定値とログ設定です。
type Config struct {
	Quality       int           `mapstructure:"quality"`
	Margin        int           `mapstructure:"margin"`
	SettleDelay   time.Duration `mapstructure:"settle_delay"`
	OutputDir     string        `mapstructure:"output_dir"`
	SkipUnchanged bool          `mapstructure:"skip_unchanged"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	LogFile   string `mapstructure:"log_file"`
}

// Default は既定の設定を返します。
func Default() *Config {
	return &Config{
		Quality:     75,
		Margin:      0,
		SettleDelay: 200 * time.Millisecond,
		LogLevel:    "info",
		LogFormat:   "console",
	}
}

// Load は設定ファイルと環境変数（REGIONCAPTURE_ で始まるもの）から設定を読み込みます。
// cfgFile が空ならユーザー設定フォルダとカレントフォルダの regioncapture.yaml を探し、
// 見つからなければ既定値を使います。
func Load(cfgFile string) (*Config, error) {
	cfg := Default()
	v := viper.New()

	v.SetDefault("quality", cfg.Quality)
	v.SetDefault("margin", cfg.Margin)
	v.SetDefault("settle_delay", cfg.SettleDelay)
	v.SetDefault("output_dir", cfg.OutputDir)
	v.SetDefault("skip_unchanged", cfg.SkipUnchanged)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("log_format", cfg.LogFormat)
	v.SetDefault("log_file", cfg.LogFile)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("regioncapture")
		v.SetConfigType("yaml")
		if dir := configDir(); dir != "" {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("REGIONCAPTURE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "read config")
		}
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate は値の範囲を確認します。
func (c *Config) Validate() error {
	if c.Quality < 0 || c.Quality > 100 {
		return errors.Errorf("quality must be within 0..100, got %d", c.Quality)
	}
	if c.SettleDelay < 0 {
		return errors.Errorf("settle_delay must not be negative, got %s", c.SettleDelay)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return errors.Errorf("unknown log_level %q", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		return errors.Errorf("unknown log_format %q", c.LogFormat)
	}
	return nil
}

// OutputPath は相対パスの出力先を OutputDir の下に置きます。
func (c *Config) OutputPath(name string) string {
	if c.OutputDir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.OutputDir, name)
}

func configDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "RegionCapture")
}
