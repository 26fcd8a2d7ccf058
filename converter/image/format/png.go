package format

import (
	"bytes"
	"context"
	"dimensify/shared/log"
	"github.com/h2non/bimg"
	"go.uber.org/zap"
	"io"
)

const pngMaxCompression = 9

type Png struct {
	logger *zap.Logger
}

func MustPng(logger *zap.Logger) *Png {
	return &Png{logger: logger}
}

// Encode writes a png at maximum deflate compression. Below quality 100 the
// image is palette-quantised and quality drives the quantiser.
func (w *Png) Encode(ctx context.Context, img *bimg.Image, o bimg.Options, quality int) (io.Reader, int64, error) {
	logger := log.LoggerWithTrace(ctx, w.logger)
	logger.Debug("Converting image to png", zap.Int("quality", quality))

	o.Type = bimg.PNG
	o.Quality = quality
	o.Compression = pngMaxCompression
	o.Palette = quality < 100

	buf, err := img.Process(o)
	if err != nil {
		logger.Error("Error converting image to png", zap.Error(err))
		return nil, 0, err
	}

	return bytes.NewBuffer(buf), int64(len(buf)), nil
}
