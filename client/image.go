package client

import (
	"bytes"
	"dimensify/api/model"
	"fmt"
	_ "golang.org/x/image/webp"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"
)

// File is an input handed to the session, e.g. a file picked by the user.
type File struct {
	Name     string
	MimeType string
	Data     []byte
}

type UploadedImage struct {
	ID       string
	Name     string
	MimeType string
	Format   model.Format
	Width    int
	Height   int
	Data     []byte
}

type Result struct {
	ImageID  string
	MimeType string
	Data     []byte
}

// declaredFormat infers the format from the file name, then from the MIME type.
func declaredFormat(name, mime string) (model.Format, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if t, err := model.MakeFromString(ext); err == nil {
		return t, nil
	}

	t, err := model.MakeFromMime(mime)
	if err != nil {
		return model.Format{}, fmt.Errorf("%w: %s", ErrUnsupportedType, mime)
	}

	return t, nil
}

func probeDimensions(data []byte) (int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrUnreadableImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, 0, ErrUnreadableImage
	}

	return cfg.Width, cfg.Height, nil
}
