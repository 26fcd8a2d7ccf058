package service

import (
	"bytes"
	"context"
	"dimensify/api/model"
	img "dimensify/converter/image"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"image"
	"image/png"
	"io"
	"testing"
)

func newTestService() *ImageService {
	logger := zap.NewNop()
	return NewImageService(img.NewStrategy(logger), logger)
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestProcessReturnsAttachment(t *testing.T) {
	req := validRequest()
	req.Image.Data = pngBytes(t, 30, 10)
	req.Format = "jpg"
	req.Width = "12"
	req.Height = "12"

	resp, err := newTestService().Process(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "image/jpeg", resp.Type)
	assert.Equal(t, `attachment; filename="resized-image.jpg"`, resp.ContentDisposition)
	assert.Positive(t, resp.ContentLength)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Len(t, body, int(resp.ContentLength))
}

func TestProcessValidatesBeforeDecoding(t *testing.T) {
	req := validRequest()
	req.Image.Data = []byte("corrupt")
	req.Quality = "101"

	_, err := newTestService().Process(context.Background(), req)
	re, ok := model.AsRequestError(err)
	require.True(t, ok)
	assert.Equal(t, model.InvalidQuality, re.Kind)
}

func TestProcessCorruptImageIsNotARequestError(t *testing.T) {
	req := validRequest()
	req.Image.Data = []byte("corrupt")

	_, err := newTestService().Process(context.Background(), req)
	require.Error(t, err)
	_, ok := model.AsRequestError(err)
	assert.False(t, ok)
}
