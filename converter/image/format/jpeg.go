package format

import (
	"bytes"
	"context"
	"dimensify/shared/log"
	"github.com/h2non/bimg"
	"go.uber.org/zap"
	"io"
)

type Jpeg struct {
	logger *zap.Logger
}

func MustJpeg(logger *zap.Logger) *Jpeg {
	return &Jpeg{logger: logger}
}

// Encode always re-encodes, even when the source is already a jpeg.
func (w *Jpeg) Encode(ctx context.Context, img *bimg.Image, o bimg.Options, quality int) (io.Reader, int64, error) {
	logger := log.LoggerWithTrace(ctx, w.logger)
	logger.Debug("Converting image to jpeg", zap.Int("quality", quality))

	o.Type = bimg.JPEG
	o.Quality = quality
	o.Interlace = true

	buf, err := img.Process(o)
	if err != nil {
		logger.Error("Error converting image to jpeg", zap.Error(err))
		return nil, 0, err
	}

	return bytes.NewBuffer(buf), int64(len(buf)), nil
}
