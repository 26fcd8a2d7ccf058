package image

import (
	"bytes"
	"context"
	"dimensify/api/model"
	"errors"
	"github.com/h2non/bimg"
	"io"
)

var ErrEmptyImage = errors.New("empty image")

type Encoder interface {
	Encode(ctx context.Context, img *bimg.Image, o bimg.Options, quality int) (io.Reader, int64, error)
}

type CustomImage struct {
	img  *bimg.Image
	opts bimg.Options

	t Encoder
}

func NewCustomImage(t Encoder) *CustomImage {
	return &CustomImage{t: t}
}

func (ci *CustomImage) Decode(reader io.Reader) (err error) {
	buf, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	if len(buf) == 0 {
		return ErrEmptyImage
	}

	img := bimg.NewImage(buf)
	if _, err = img.Size(); err != nil {
		return err
	}

	ci.img = img

	return nil
}

func (ci *CustomImage) Transform(funcs ...Transform) error {
	for _, f := range funcs {
		img, err := f(ci.img, &ci.opts)
		if err != nil {
			return err
		}
		ci.img = img
	}

	return nil
}

func (ci *CustomImage) Encode(ctx context.Context, quality int) (io.Reader, int64, error) {
	return ci.t.Encode(ctx, ci.img, ci.opts, quality)
}

// Process runs decode, transforms and encode for a single in-memory image.
func Process(ctx context.Context, s *Strategy, data []byte, t model.Format, quality int, funcs ...Transform) (io.Reader, int64, model.Format, error) {
	encoder, t, quality := s.Apply(t, quality)

	ci := NewCustomImage(encoder)
	if err := ci.Decode(bytes.NewReader(data)); err != nil {
		return nil, 0, t, err
	}

	if err := ci.Transform(append(funcs, WithBackground(t))...); err != nil {
		return nil, 0, t, err
	}

	body, length, err := ci.Encode(ctx, quality)

	return body, length, t, err
}
