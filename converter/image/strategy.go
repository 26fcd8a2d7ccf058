package image

import (
	"dimensify/api/model"
	"dimensify/converter/image/format"
	"go.uber.org/zap"
	"sync"
)

const fallbackQuality = 100

var (
	once           sync.Once
	singleInstance *Strategy
)

type Strategy struct {
	m map[model.Format]Encoder
}

func MustStrategy(logger *zap.Logger) *Strategy {
	once.Do(func() {
		singleInstance = NewStrategy(logger)
	})

	return singleInstance
}

func NewStrategy(logger *zap.Logger) *Strategy {
	jpeg := format.MustJpeg(logger)

	return &Strategy{m: map[model.Format]Encoder{
		model.JPEG: jpeg,
		model.JPG:  jpeg,
		model.PNG:  format.MustPng(logger),
		model.WEBP: format.MustWebp(logger),
	}}
}

// Apply picks the encoder for t. Unknown types fall back to jpeg at full quality.
func (s *Strategy) Apply(t model.Format, quality int) (Encoder, model.Format, int) {
	if e, ok := s.m[t]; ok {
		return e, t, quality
	}

	return s.m[model.JPEG], model.JPEG, fallbackQuality
}
