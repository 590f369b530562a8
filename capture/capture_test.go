package capture_test

import (
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RegionCapture/capture"
	"RegionCapture/capture/capturetest"
)

func TestRegionExpand(t *testing.T) {
	r := capture.Region{X: 100, Y: 50, Width: 300, Height: 200}

	assert.Equal(t, capture.Region{X: 95, Y: 45, Width: 310, Height: 210}, r.Expand(5))
	assert.Equal(t, r, r.Expand(0))
	assert.Equal(t, capture.Region{X: 102, Y: 52, Width: 296, Height: 196}, r.Expand(-2))
}

func TestRegionValid(t *testing.T) {
	assert.True(t, capture.Region{Width: 1, Height: 1}.Valid())
	assert.False(t, capture.Region{Width: 0, Height: 10}.Valid())
	assert.False(t, capture.Region{Width: 10, Height: -1}.Valid())
}

func TestUnion(t *testing.T) {
	u, err := capture.Union([]capture.Region{
		{X: 0, Y: 0, Width: 1920, Height: 1080},
		{X: -1280, Y: 200, Width: 1280, Height: 1024},
	})
	require.NoError(t, err)
	assert.Equal(t, capture.Region{X: -1280, Y: 0, Width: 3200, Height: 1224}, u)

	_, err = capture.Union(nil)
	assert.True(t, errors.Is(err, capture.ErrTargetNotFound))
}

func TestCaptureRegionDimensions(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {17, 3}, {640, 480}} {
		g := capturetest.New()
		s := capture.NewSession(g, nil)

		img, err := s.CaptureRegion(capture.Region{X: 10, Y: 20, Width: size[0], Height: size[1]})
		require.NoError(t, err)
		assert.Equal(t, size[0], img.Width())
		assert.Equal(t, size[1], img.Height())

		rgba, err := img.RGBA()
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, size[0], size[1]), rgba.Bounds())

		// 成功時はビットマップだけが残る
		assert.Equal(t, []string{"bitmap"}, g.Live())
		require.NoError(t, img.Close())
		assert.Empty(t, g.Live())
	}
}

func TestCaptureRegionInvalidAcquiresNothing(t *testing.T) {
	for _, r := range []capture.Region{
		{Width: 0, Height: 10},
		{Width: 10, Height: 0},
		{Width: -5, Height: 10},
	} {
		g := capturetest.New()
		s := capture.NewSession(g, nil)

		img, err := s.CaptureRegion(r)
		assert.Nil(t, img)
		assert.True(t, errors.Is(err, capture.ErrInvalidRegion), "region %s: %v", r, err)
		assert.Empty(t, g.Calls)
	}
}

func TestCaptureRegionReleasesOnFailure(t *testing.T) {
	for _, step := range []string{"GetScreenDC", "CreateCompatibleDC", "CreateCompatibleBitmap", "SelectObject", "BitBlt"} {
		t.Run(step, func(t *testing.T) {
			g := capturetest.New()
			g.FailOn = step
			s := capture.NewSession(g, nil)

			img, err := s.CaptureRegion(capture.Region{Width: 8, Height: 8})
			assert.Nil(t, img)
			assert.True(t, errors.Is(err, capture.ErrCaptureFailed), err)
			assert.Empty(t, g.Live())
		})
	}
}

func TestCaptureRegionRestoreFailureFreesBitmap(t *testing.T) {
	g := capturetest.New()
	g.FailOn = "SelectObject"
	g.FailNth = 2
	s := capture.NewSession(g, nil)

	img, err := s.CaptureRegion(capture.Region{Width: 8, Height: 8})
	assert.Nil(t, img)
	assert.True(t, errors.Is(err, capture.ErrCaptureFailed), err)
	assert.Empty(t, g.Live())
	assert.Equal(t, []string{"DeleteDC", "DeleteObject", "ReleaseScreenDC"}, g.Calls[len(g.Calls)-3:])
}

func TestImagePixels(t *testing.T) {
	g := capturetest.New()
	g.Fill = func(x, y int) [4]byte { return [4]byte{0x10, 0x20, 0x30, 0x00} }
	s := capture.NewSession(g, nil)

	img, err := s.CaptureRegion(capture.Region{Width: 2, Height: 2})
	require.NoError(t, err)
	defer img.Close()

	rgba, err := img.RGBA()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x30, 0x20, 0x10, 0xff}, rgba.Pix[:4])
}

func TestImageCloseOnce(t *testing.T) {
	g := capturetest.New()
	s := capture.NewSession(g, nil)

	img, err := s.CaptureRegion(capture.Region{Width: 4, Height: 4})
	require.NoError(t, err)
	require.NoError(t, img.Close())
	require.NoError(t, img.Close())

	deletes := 0
	for _, c := range g.Calls {
		if c == "DeleteObject" {
			deletes++
		}
	}
	assert.Equal(t, 1, deletes)

	_, err = img.RGBA()
	assert.True(t, errors.Is(err, capture.ErrCaptureFailed))
}

func TestImageReadFailure(t *testing.T) {
	g := capturetest.New()
	g.FailOn = "ReadBitmap"
	s := capture.NewSession(g, nil)

	img, err := s.CaptureRegion(capture.Region{Width: 4, Height: 4})
	require.NoError(t, err)
	_, err = img.RGBA()
	assert.True(t, errors.Is(err, capture.ErrCaptureFailed))
	require.NoError(t, img.Close())
	assert.Empty(t, g.Live())
}

func TestClosedSession(t *testing.T) {
	g := capturetest.New()
	s := capture.NewSession(g, nil)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, err := s.CaptureRegion(capture.Region{Width: 4, Height: 4})
	assert.True(t, errors.Is(err, capture.ErrCaptureFailed))
	assert.Empty(t, g.Calls)
}
