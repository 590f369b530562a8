package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("APPDATA", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
quality: 60
margin: 4
settle_delay: 350ms
output_dir: shots
log_format: json
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.Quality)
	assert.Equal(t, 4, cfg.Margin)
	assert.Equal(t, 350*time.Millisecond, cfg.SettleDelay)
	assert.Equal(t, "shots", cfg.OutputDir)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.yaml")
	require.NoError(t, os.WriteFile(path, []byte("quality: 60\n"), 0644))
	t.Setenv("REGIONCAPTURE_QUALITY", "95")
	t.Setenv("REGIONCAPTURE_SKIP_UNCHANGED", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 95, cfg.Quality)
	assert.True(t, cfg.SkipUnchanged)
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.yaml")
	require.NoError(t, os.WriteFile(path, []byte("quality: 120\n"), 0644))
	_, err := Load(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("log_level: verbose\n"), 0644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestOutputPath(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "a.png", cfg.OutputPath("a.png"))

	cfg.OutputDir = "shots"
	assert.Equal(t, filepath.Join("shots", "a.png"), cfg.OutputPath("a.png"))

	abs := filepath.Join(t.TempDir(), "a.png")
	assert.Equal(t, abs, cfg.OutputPath(abs))
}
