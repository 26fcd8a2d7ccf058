package service

import (
	"context"
	"dimensify/api/model"
	img "dimensify/converter/image"
	"dimensify/shared/log"
	"fmt"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

const tracerName = "dimensify/service"

type ImageService struct {
	strategy *img.Strategy
	validate *validator.Validate

	logger *zap.Logger
}

func NewImageService(strategy *img.Strategy, logger *zap.Logger) *ImageService {
	return &ImageService{strategy: strategy, validate: validator.New(), logger: logger}
}

// Process validates the request and, only when it is valid, resizes the image.
func (i *ImageService) Process(ctx context.Context, req model.ResizeRequest) (*model.ImageResponse, error) {
	params, err := validate(i.validate, req)
	if err != nil {
		return nil, err
	}

	return i.Resize(ctx, params)
}

func (i *ImageService) Resize(ctx context.Context, params *ResizeParams) (*model.ImageResponse, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "ImageService.Resize")
	defer span.End()

	span.SetAttributes(
		attribute.Int("image.width", params.Width),
		attribute.Int("image.height", params.Height),
		attribute.String("image.format", params.Format.String()),
		attribute.Int("image.quality", params.Quality),
		attribute.Int("image.input_bytes", len(params.Image)),
	)

	logger := log.LoggerWithTrace(ctx, i.logger)
	logger.Debug("Resizing image",
		zap.Int("width", params.Width),
		zap.Int("height", params.Height),
		zap.Stringer("format", params.Format),
		zap.Int("quality", params.Quality),
	)

	body, length, format, err := img.Process(ctx, i.strategy, params.Image, params.Format, params.Quality,
		img.WithSize(params.Width, params.Height),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "resize failed")
		logger.Error("Error resizing image", zap.Error(err))
		return nil, fmt.Errorf("resize image: %w", err)
	}
	if length == 0 {
		span.SetStatus(codes.Error, "empty output")
		return nil, fmt.Errorf("resize image: %w", img.ErrEmptyImage)
	}

	return &model.ImageResponse{
		Type:               format.MimeType(),
		ContentLength:      length,
		ContentDisposition: fmt.Sprintf("attachment; filename=\"resized-image.%s\"", format.Extension()),
		Body:               body,
	}, nil
}
