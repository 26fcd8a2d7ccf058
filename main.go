package main

import (
	"context"
	"dimensify/api/rest"
	"dimensify/config"
	img "dimensify/converter/image"
	"dimensify/service"
	"dimensify/shared/log"
	"dimensify/shared/trace"
	"github.com/gofiber/contrib/fiberzap/v2"
	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/h2non/bimg"
	"github.com/hyperdxio/otel-config-go/otelconfig"
	"go.uber.org/zap"
	"log/slog"
)

//	@title			Dimensify
//	@version		1.0
//	@description	Stateless image resize API: upload an image, get it back resized and re-encoded.

// @BasePath	/
func main() {
	serviceConfig := config.New()

	ctx := context.Background()

	tp := trace.InitTrace(serviceConfig.AppName, serviceConfig.StdoutTrace)
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			slog.Error("Error shutting down tracer provider", "error", err)
		}
	}()

	otelShutdown, err := otelconfig.ConfigureOpenTelemetry()
	if err != nil {
		slog.Error("Error configuring OpenTelemetry", "error", err)
	} else {
		defer otelShutdown()
	}

	logger := log.InitLogger(ctx, serviceConfig.LogLevel)
	defer func() {
		if err = logger.Sync(); err != nil {
			slog.Error("Error syncing logger", "error", err)
		}
	}()

	bimg.VipsCacheSetMax(0)
	logger.Info("libvips ready", zap.String("version", bimg.VipsVersion))

	converterStrategy := img.MustStrategy(logger)

	app := fiber.New(fiber.Config{
		AppName:      serviceConfig.AppName,
		BodyLimit:    serviceConfig.BodyLimit(),
		ErrorHandler: rest.ErrorHandler(logger),
	})
	app.Use(
		recover.New(),
		otelfiber.Middleware(),
		fiberzap.New(fiberzap.Config{Logger: logger}),
		compress.New(compress.Config{
			Next: func(c *fiber.Ctx) bool {
				return c.Path() == rest.ResizePath
			},
			Level: compress.LevelBestSpeed,
		}),
		limiter.New(limiter.Config{
			Next: func(c *fiber.Ctx) bool {
				return c.IP() == "127.0.0.1"
			},
			Max:        serviceConfig.RateLimitMaxRequests,
			Expiration: serviceConfig.RateLimitDuration(),
			LimitReached: func(c *fiber.Ctx) error {
				return fiber.ErrTooManyRequests
			},
		}),
		swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: serviceConfig.SwaggerFilePath,
			Path:     "docs",
			Title:    serviceConfig.AppName,
		}),
	)

	imageService := service.NewImageService(converterStrategy, logger)

	rest.NewImageController(app, imageService, logger)

	if err = app.Listen(":" + serviceConfig.Port); err != nil {
		logger.Panic(err.Error())
		return
	}
}
