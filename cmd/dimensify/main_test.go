package main

import (
	"bytes"
	"dimensify/client"
	"dimensify/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"image"
	"image/jpeg"
	"image/png"
	"testing"
)

func stagedSession(t *testing.T, w, h int) *client.Session {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, w, h))))

	s := client.NewSession(&config.Client{MaxImages: 10, MaxFileSizeMB: 5, Quality: 80}, nil, zap.NewNop())
	_, err := s.Stage(client.File{Name: "src.png", MimeType: "image/png", Data: buf.Bytes()})
	require.NoError(t, err)
	return s
}

func TestApplySettingsKeepsExplicitWidthAndHeight(t *testing.T) {
	s := stagedSession(t, 600, 400)

	require.NoError(t, applySettings(s, 300, 300, 0, true))

	settings := s.Settings()
	assert.Equal(t, 300, settings.Width)
	assert.Equal(t, 300, settings.Height)
	assert.False(t, settings.LockAspectRatio)
}

func TestApplySettingsFollowsLockForSingleDimension(t *testing.T) {
	s := stagedSession(t, 600, 400)
	require.NoError(t, applySettings(s, 300, 0, 55, true))
	assert.Equal(t, client.Settings{Width: 300, Height: 200, Quality: 55, LockAspectRatio: true}, s.Settings())

	s = stagedSession(t, 600, 400)
	require.NoError(t, applySettings(s, 0, 100, 0, true))
	assert.Equal(t, 150, s.Settings().Width)

	s = stagedSession(t, 600, 400)
	require.NoError(t, applySettings(s, 300, 0, 0, false))
	assert.Equal(t, 400, s.Settings().Height)
}

func TestApplySettingsRejectsInvalidValues(t *testing.T) {
	s := stagedSession(t, 600, 400)

	assert.ErrorIs(t, applySettings(s, -1, 0, 0, true), client.ErrInvalidDimensions)
	assert.ErrorIs(t, applySettings(s, 0, 0, 101, true), client.ErrInvalidQuality)
}

func TestDetectMimeSniffsContent(t *testing.T) {
	var pngBuf, jpegBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, image.NewNRGBA(image.Rect(0, 0, 2, 2))))
	require.NoError(t, jpeg.Encode(&jpegBuf, image.NewRGBA(image.Rect(0, 0, 2, 2)), nil))

	assert.Equal(t, "image/png", detectMime(pngBuf.Bytes()))
	assert.Equal(t, "image/jpeg", detectMime(jpegBuf.Bytes()))
	assert.Equal(t, "text/plain; charset=utf-8", detectMime([]byte("hello")))
}
