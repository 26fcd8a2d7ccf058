package service

import (
	"dimensify/api/model"
	"github.com/go-playground/validator/v10"
	"strconv"
	"strings"
)

const (
	dimensionRule = "gt=0"
	formatRule    = "required,oneof=jpeg jpg png webp"
	qualityRule   = "min=1,max=100"
)

type ResizeParams struct {
	Image   []byte
	Width   int
	Height  int
	Format  model.Format
	Quality int
}

// validate checks the request fields in a fixed order and stops at the first failure.
func validate(v *validator.Validate, req model.ResizeRequest) (*ResizeParams, error) {
	if req.Image == nil || len(req.Image.Data) == 0 {
		return nil, model.NewRequestError(model.MissingFile, nil)
	}

	if !model.IsSupportedMime(req.Image.MimeType) {
		return nil, model.NewRequestError(model.UnsupportedType, nil)
	}

	width, err := parseInt(v, req.Width, dimensionRule)
	if err != nil {
		return nil, model.NewRequestError(model.InvalidDimensions, err)
	}
	height, err := parseInt(v, req.Height, dimensionRule)
	if err != nil {
		return nil, model.NewRequestError(model.InvalidDimensions, err)
	}

	if err = v.Var(req.Format, formatRule); err != nil {
		return nil, model.NewRequestError(model.InvalidFormat, err)
	}
	format, err := model.MakeFromString(req.Format)
	if err != nil {
		return nil, model.NewRequestError(model.InvalidFormat, err)
	}

	quality, err := parseInt(v, req.Quality, qualityRule)
	if err != nil {
		return nil, model.NewRequestError(model.InvalidQuality, err)
	}

	return &ResizeParams{
		Image:   req.Image.Data,
		Width:   width,
		Height:  height,
		Format:  format,
		Quality: quality,
	}, nil
}

func parseInt(v *validator.Validate, raw string, rule string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}

	if err = v.Var(n, rule); err != nil {
		return 0, err
	}

	return n, nil
}
