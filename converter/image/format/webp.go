package format

import (
	"bytes"
	"context"
	"dimensify/shared/log"
	"github.com/h2non/bimg"
	"go.uber.org/zap"
	"io"
)

// NearLosslessQuality is the quality from which webp output switches to the lossless encoder.
const NearLosslessQuality = 90

type Webp struct {
	logger *zap.Logger
}

func MustWebp(logger *zap.Logger) *Webp {
	return &Webp{logger: logger}
}

func (w *Webp) Encode(ctx context.Context, img *bimg.Image, o bimg.Options, quality int) (io.Reader, int64, error) {
	logger := log.LoggerWithTrace(ctx, w.logger)
	logger.Debug("Converting image to webp", zap.Int("quality", quality), zap.Bool("lossless", quality >= NearLosslessQuality))

	o.Type = bimg.WEBP
	o.Quality = quality
	o.Lossless = quality >= NearLosslessQuality

	buf, err := img.Process(o)
	if err != nil {
		logger.Error("Error converting image to webp", zap.Error(err))
		return nil, 0, err
	}

	return bytes.NewBuffer(buf), int64(len(buf)), nil
}
