package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.log")
	logger, err := New("info", "json", path)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("capture done", zap.String("output", "out.png"), zap.Int("width", 640))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"capture done"`)
	assert.Contains(t, out, `"output":"out.png"`)
	assert.Contains(t, out, `"width":640`)
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestNewDebugConsole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.log")
	logger, err := New("DEBUG", "console", path)
	require.NoError(t, err)

	logger.Debug("blit done")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "blit done")
}

func TestNewInvalid(t *testing.T) {
	_, err := New("verbose", "json", "")
	assert.Error(t, err)

	_, err = New("info", "xml", "")
	assert.Error(t, err)
}
