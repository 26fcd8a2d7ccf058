package rest

import (
	"dimensify/api/model"
	"dimensify/service"
	"dimensify/shared/log"
	"errors"
	"fmt"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"io"
)

const ResizePath = "/api/resize"

type ImageController struct {
	service *service.ImageService
	logger  *zap.Logger
}

func NewImageController(app *fiber.App, service *service.ImageService, logger *zap.Logger) *ImageController {
	i := &ImageController{service: service, logger: logger}

	app.Post(ResizePath, i.Resize)
	for _, method := range []string{fiber.MethodGet, fiber.MethodPut, fiber.MethodDelete, fiber.MethodPatch} {
		app.Add(method, ResizePath, i.MethodNotAllowed)
	}

	return i
}

// Resize image
//
//	@Summary		Resize an uploaded image
//	@Description	Stretches the uploaded image to exactly width x height and re-encodes it in the requested format. Nothing is stored.
//	@Tags			image
//	@Accept			multipart/form-data
//	@Produce		image/jpeg,image/png,image/webp
//	@Param			image	formData	file	true	"Image (jpeg, png or webp)"
//	@Param			width	formData	int		true	"Target width"
//	@Param			height	formData	int		true	"Target height"
//	@Param			format	formData	string	true	"Output format"	Enums(jpeg, jpg, png, webp)
//	@Param			quality	formData	int		true	"Quality 1-100"
//	@Success		200		{file}		file	"Returns the resized image"
//	@Failure		400		{object}	model.ErrorResponse
//	@Failure		500		{object}	model.ErrorResponse
//	@Router			/api/resize [post]
func (i *ImageController) Resize(c *fiber.Ctx) error {
	ctx := c.UserContext()
	logger := log.LoggerWithTrace(ctx, i.logger)

	file, err := i.readImage(c)
	if err != nil {
		return err
	}

	req := model.ResizeRequest{
		Image:   file,
		Width:   c.FormValue("width"),
		Height:  c.FormValue("height"),
		Format:  c.FormValue("format"),
		Quality: c.FormValue("quality"),
	}

	logger.Debug(fmt.Sprintf("Resizing image with params: w=%s h=%s format=%s quality=%s", req.Width, req.Height, req.Format, req.Quality))

	image, err := i.service.Process(ctx, req)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, image.Type)
	c.Set(fiber.HeaderContentDisposition, image.ContentDisposition)
	c.Set(fiber.HeaderCacheControl, "no-store, no-cache, must-revalidate")
	c.Set(fiber.HeaderPragma, "no-cache")
	c.Set(fiber.HeaderExpires, "0")

	return c.SendStream(image.Body, int(image.ContentLength))
}

func (i *ImageController) MethodNotAllowed(_ *fiber.Ctx) error {
	return fiber.NewError(fiber.StatusMethodNotAllowed, model.MethodNotAllowedMessage)
}

// readImage returns nil without error when no image part was sent.
func (i *ImageController) readImage(c *fiber.Ctx) (*model.ImageFile, error) {
	header, err := c.FormFile("image")
	if err != nil {
		if !errors.Is(err, fasthttp.ErrMissingFile) {
			i.logger.Debug("No image part in request", zap.Error(err))
		}
		return nil, nil
	}

	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	return &model.ImageFile{
		Name:     header.Filename,
		MimeType: header.Header.Get(fiber.HeaderContentType),
		Data:     data,
	}, nil
}
