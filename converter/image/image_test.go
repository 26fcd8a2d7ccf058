package image

import (
	"bytes"
	"context"
	"dimensify/api/model"
	"github.com/h2non/bimg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"testing"
)

// halfTransparent is transparent on the left half and opaque red on the right.
func halfTransparent(t *testing.T, w, h int) []byte {
	t.Helper()
	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := w / 2; x < w; x++ {
			m.Set(x, y, color.NRGBA{R: 255, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, m))
	return buf.Bytes()
}

func process(t *testing.T, data []byte, f model.Format, quality, width, height int) ([]byte, model.Format) {
	t.Helper()
	body, length, out, err := Process(context.Background(), NewStrategy(zap.NewNop()), data, f, quality, WithSize(width, height))
	require.NoError(t, err)

	buf, err := io.ReadAll(body)
	require.NoError(t, err)
	require.NotEmpty(t, buf)
	assert.Equal(t, int64(len(buf)), length)

	return buf, out
}

func requireSize(t *testing.T, buf []byte, width, height int) {
	t.Helper()
	size, err := bimg.NewImage(buf).Size()
	require.NoError(t, err)
	assert.Equal(t, width, size.Width)
	assert.Equal(t, height, size.Height)
}

func hasAlpha(t *testing.T, buf []byte) bool {
	t.Helper()
	meta, err := bimg.NewImage(buf).Metadata()
	require.NoError(t, err)
	return meta.Alpha
}

func TestProcessStretchesToExactSize(t *testing.T) {
	src := halfTransparent(t, 40, 20)

	cases := []struct {
		format        model.Format
		width, height int
		bimgType      string
	}{
		{model.JPEG, 10, 30, "jpeg"},
		{model.JPG, 7, 7, "jpeg"},
		{model.PNG, 80, 5, "png"},
		{model.PNG, 1, 1, "png"},
	}

	for _, tc := range cases {
		t.Run(tc.format.String(), func(t *testing.T) {
			buf, out := process(t, src, tc.format, 80, tc.width, tc.height)
			assert.Equal(t, tc.format, out)
			assert.Equal(t, tc.bimgType, bimg.DetermineImageTypeName(buf))
			requireSize(t, buf, tc.width, tc.height)
		})
	}
}

func TestProcessPngKeepsTransparency(t *testing.T) {
	buf, _ := process(t, halfTransparent(t, 40, 20), model.PNG, 100, 20, 20)
	assert.True(t, hasAlpha(t, buf))

	decoded, err := png.Decode(bytes.NewReader(buf))
	require.NoError(t, err)
	_, _, _, a := decoded.At(1, 10).RGBA()
	assert.Zero(t, a)
}

func TestProcessJpegFlattensOntoWhite(t *testing.T) {
	buf, _ := process(t, halfTransparent(t, 40, 20), model.JPEG, 100, 40, 20)
	assert.False(t, hasAlpha(t, buf))

	decoded, err := jpeg.Decode(bytes.NewReader(buf))
	require.NoError(t, err)
	r, g, b, _ := decoded.At(2, 10).RGBA()
	assert.GreaterOrEqual(t, r>>8, uint32(240))
	assert.GreaterOrEqual(t, g>>8, uint32(240))
	assert.GreaterOrEqual(t, b>>8, uint32(240))
}

func TestProcessWebp(t *testing.T) {
	if !bimg.IsTypeSupportedSave(bimg.WEBP) {
		t.Skip("libvips built without webp support")
	}

	src := halfTransparent(t, 40, 20)

	for _, quality := range []int{1, 89, 90, 100} {
		buf, out := process(t, src, model.WEBP, quality, 16, 9)
		assert.Equal(t, model.WEBP, out)
		assert.Equal(t, "webp", bimg.DetermineImageTypeName(buf))
		requireSize(t, buf, 16, 9)
		assert.False(t, hasAlpha(t, buf), "quality %d", quality)
	}
}

func TestProcessFlattensAlphaFromWebpSource(t *testing.T) {
	if !bimg.IsTypeSupportedSave(bimg.WEBP) {
		t.Skip("libvips built without webp support")
	}

	webpSrc, err := bimg.NewImage(halfTransparent(t, 40, 20)).Process(bimg.Options{Type: bimg.WEBP, Lossless: true})
	require.NoError(t, err)
	require.True(t, hasAlpha(t, webpSrc))

	buf, _ := process(t, webpSrc, model.JPEG, 90, 40, 20)
	decoded, err := jpeg.Decode(bytes.NewReader(buf))
	require.NoError(t, err)
	r, g, b, _ := decoded.At(2, 10).RGBA()
	assert.GreaterOrEqual(t, r>>8, uint32(240))
	assert.GreaterOrEqual(t, g>>8, uint32(240))
	assert.GreaterOrEqual(t, b>>8, uint32(240))

	buf, _ = process(t, webpSrc, model.PNG, 100, 40, 20)
	assert.True(t, hasAlpha(t, buf))
}

func TestProcessRejectsCorruptInput(t *testing.T) {
	_, _, _, err := Process(context.Background(), NewStrategy(zap.NewNop()), []byte("definitely not an image"), model.PNG, 80, WithSize(10, 10))
	assert.Error(t, err)

	_, _, _, err = Process(context.Background(), NewStrategy(zap.NewNop()), nil, model.PNG, 80, WithSize(10, 10))
	assert.ErrorIs(t, err, ErrEmptyImage)
}

func TestStrategyFallsBackToFullQualityJpeg(t *testing.T) {
	s := NewStrategy(zap.NewNop())

	e, f, q := s.Apply(model.Format{}, 40)
	assert.NotNil(t, e)
	assert.Equal(t, model.JPEG, f)
	assert.Equal(t, 100, q)

	_, f, q = s.Apply(model.WEBP, 40)
	assert.Equal(t, model.WEBP, f)
	assert.Equal(t, 40, q)

	buf, out := process(t, halfTransparent(t, 8, 8), model.Format{}, 10, 4, 4)
	assert.Equal(t, model.JPEG, out)
	assert.Equal(t, "jpeg", bimg.DetermineImageTypeName(buf))
}

func TestProcessStretchesJpegSource(t *testing.T) {
	m := image.NewRGBA(image.Rect(0, 0, 80, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 80; x++ {
			m.Set(x, y, color.RGBA{R: uint8(x * 3), G: uint8(y * 6), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, m, &jpeg.Options{Quality: 90}))

	cases := []struct {
		name          string
		width, height int
	}{
		{"shrink one axis", 20, 40},
		{"shrink and enlarge", 20, 120},
		{"shrink both", 20, 10},
		{"enlarge one axis", 80, 160},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, _ := process(t, buf.Bytes(), model.JPEG, 80, tc.width, tc.height)
			requireSize(t, out, tc.width, tc.height)
		})
	}
}
