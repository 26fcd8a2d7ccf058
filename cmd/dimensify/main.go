package main

import (
	"context"
	"dimensify/client"
	"dimensify/config"
	"dimensify/shared/log"
	"fmt"
	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"os"
	"path/filepath"
)

func main() {
	var (
		width   = pflag.IntP("width", "w", 0, "target width (default: first image's width)")
		height  = pflag.Int("height", 0, "target height (default: first image's height)")
		quality = pflag.IntP("quality", "q", 0, "output quality 1-100")
		noLock  = pflag.Bool("no-lock", false, "edit width and height independently")
		out     = pflag.StringP("out", "o", "", "output file (default: random name, or resized-images.zip for several images)")
	)
	pflag.Parse()

	if pflag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: dimensify [flags] image...")
		pflag.PrintDefaults()
		os.Exit(2)
	}

	ctx := context.Background()
	cfg := config.NewClientConfig()

	logger := log.InitLogger(ctx, "info")
	defer func() { _ = logger.Sync() }()

	if err := run(ctx, cfg, logger, pflag.Args(), *width, *height, *quality, !*noLock, *out); err != nil {
		logger.Error("dimensify failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Client, logger *zap.Logger, paths []string, width, height, quality int, lock bool, out string) error {
	files := make([]client.File, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		files = append(files, client.File{Name: filepath.Base(p), MimeType: detectMime(data), Data: data})
	}

	session := client.NewSession(cfg, client.NewHTTPResizer(cfg), logger)
	staged, err := session.Stage(files...)
	if err != nil {
		return err
	}

	if err = applySettings(session, width, height, quality, lock); err != nil {
		return err
	}

	if _, err = session.ResizeAll(ctx); err != nil {
		return err
	}

	var download *client.Download
	if len(staged) == 1 {
		download, err = session.Download(staged[0].ID)
	} else {
		download, err = session.DownloadAll()
	}
	if err != nil {
		return err
	}

	if out == "" {
		out = download.Name
	}
	if err = os.WriteFile(out, download.Data, 0o644); err != nil {
		return err
	}

	s := session.Settings()
	logger.Info("Saved resized output", zap.String("file", out), zap.Int("images", len(staged)), zap.Int("width", s.Width), zap.Int("height", s.Height))

	return nil
}

// applySettings applies the flags in order. Explicit width and height both
// win over the aspect ratio lock.
func applySettings(session *client.Session, width, height, quality int, lock bool) error {
	session.SetAspectRatioLock(lock && (width == 0 || height == 0))

	if quality != 0 {
		if err := session.SetQuality(quality); err != nil {
			return err
		}
	}
	if width != 0 {
		if err := session.SetWidth(width); err != nil {
			return err
		}
	}
	if height != 0 {
		if err := session.SetHeight(height); err != nil {
			return err
		}
	}

	return nil
}

func detectMime(data []byte) string {
	return mimetype.Detect(data).String()
}
