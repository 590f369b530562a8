package output

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"RegionCapture/capture"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 7), G: uint8(y * 5), B: uint8(x + y), A: 255})
		}
	}
	return img
}

func TestFormatFor(t *testing.T) {
	cases := map[string]string{
		"a.bmp": "bmp", "a.DIB": "bmp", "a.rle": "bmp",
		"a.jpg": "jpeg", "a.JPEG": "jpeg", "a.jpe": "jpeg", "a.jfif": "jpeg",
		"a.gif": "gif", "a.tif": "tiff", "a.TIFF": "tiff",
		"dir.v2/a.Png": "png", "a.pdf": "pdf",
	}
	for path, want := range cases {
		f, err := FormatFor(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, f.Name, path)
	}

	for _, path := range []string{"a.txt", "a", "a.png.bak", "a.webp"} {
		_, err := FormatFor(path)
		assert.True(t, errors.Is(err, capture.ErrUnsupportedFormat), path)
	}
}

func TestSaveUnsupportedWritesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "out.txt")

	err := Save(testImage(4, 4), path, DefaultQuality)
	assert.True(t, errors.Is(err, capture.ErrUnsupportedFormat))

	_, statErr := os.Stat(filepath.Join(dir, "sub"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestSaveCreatesFolders(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "foo", "bar", "out.png")

	require.NoError(t, Save(testImage(33, 21), path, DefaultQuality))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, name, err := image.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, "png", name)
	assert.Equal(t, 33, cfg.Width)
	assert.Equal(t, 21, cfg.Height)
}

func TestSaveEachFormat(t *testing.T) {
	dir := t.TempDir()
	src := testImage(16, 9)

	for _, ext := range []string{"bmp", "dib", "jpg", "gif", "tiff", "png"} {
		path := filepath.Join(dir, "out."+ext)
		require.NoError(t, Save(src, path, 100), ext)

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var decoded image.Image
		switch ext {
		case "bmp", "dib":
			decoded, err = bmp.Decode(bytes.NewReader(data))
		case "tiff":
			decoded, err = tiff.Decode(bytes.NewReader(data))
		default:
			decoded, _, err = image.Decode(bytes.NewReader(data))
		}
		require.NoError(t, err, ext)
		assert.Equal(t, src.Bounds(), decoded.Bounds(), ext)
	}
}

func TestSavePDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pdf")
	require.NoError(t, Save(testImage(96, 48), path, DefaultQuality))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestSaveNilImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	err := Save(nil, path, DefaultQuality)
	assert.True(t, errors.Is(err, capture.ErrEncodeFailed))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestToBase64ClampsQuality(t *testing.T) {
	src := testImage(40, 30)

	got, err := ToBase64(src, 100)
	require.NoError(t, err)

	data, err := base64.StdEncoding.DecodeString(got)
	require.NoError(t, err)
	decoded, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), decoded.Bounds())

	var at90 bytes.Buffer
	require.NoError(t, jpeg.Encode(&at90, src, &jpeg.Options{Quality: 90}))
	assert.Equal(t, at90.Bytes(), data)
}

func TestBase64Formats(t *testing.T) {
	got, err := Base64(testImage(5, 5), "png", DefaultQuality)
	require.NoError(t, err)
	data, err := base64.StdEncoding.DecodeString(got)
	require.NoError(t, err)
	_, name, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "png", name)

	_, err = Base64(testImage(5, 5), "txt", DefaultQuality)
	assert.True(t, errors.Is(err, capture.ErrUnsupportedFormat))
}

func TestClampQuality(t *testing.T) {
	assert.Equal(t, 0, ClampQuality(-10, 100))
	assert.Equal(t, 75, ClampQuality(75, 100))
	assert.Equal(t, 100, ClampQuality(150, 100))
	assert.Equal(t, 90, ClampQuality(100, MaxBase64Quality))
}
