package image

import (
	"dimensify/api/model"
	"fmt"
	"github.com/h2non/bimg"
)

var (
	// Transparent is the canvas for png output; bimg skips flattening on black.
	Transparent = bimg.Color{}
	White       = bimg.Color{R: 255, G: 255, B: 255}
)

type Transform func(img *bimg.Image, o *bimg.Options) (*bimg.Image, error)

// WithSize stretches the image to exactly width x height, ignoring the source aspect ratio.
func WithSize(width, height int) Transform {
	return func(img *bimg.Image, o *bimg.Options) (*bimg.Image, error) {
		if width <= 0 || height <= 0 {
			return nil, fmt.Errorf("invalid size: %dx%d", width, height)
		}

		o.Width = width
		o.Height = height
		o.Force = true
		o.Enlarge = true

		return img, nil
	}
}

// WithBackground keeps transparency for png output and flattens everything
// else onto white. bimg flattens only images that carry an alpha channel.
func WithBackground(t model.Format) Transform {
	return func(img *bimg.Image, o *bimg.Options) (*bimg.Image, error) {
		if t == model.PNG {
			o.Background = Transparent
			return img, nil
		}

		o.Background = White

		return img, nil
	}
}
