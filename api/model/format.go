package model

import (
	"fmt"
	"strings"
)

type Format struct {
	s string
}

var (
	JPEG = Format{"jpeg"}
	JPG  = Format{"jpg"}
	PNG  = Format{"png"}
	WEBP = Format{"webp"}
)

var supportedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

func (t Format) String() string {
	return t.s
}

// Extension is the file extension for the format, without the dot.
func (t Format) Extension() string {
	return t.s
}

func (t Format) MimeType() string {
	switch t {
	case PNG:
		return "image/png"
	case WEBP:
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

func MakeFromString(s string) (Format, error) {
	switch s {
	case JPEG.s:
		return JPEG, nil
	case JPG.s:
		return JPG, nil
	case PNG.s:
		return PNG, nil
	case WEBP.s:
		return WEBP, nil
	}

	return Format{}, fmt.Errorf("unknown format: %s", s)
}

func MakeFromMime(mime string) (Format, error) {
	switch normalizeMime(mime) {
	case "image/jpeg", "image/jpg":
		return JPEG, nil
	case "image/png":
		return PNG, nil
	case "image/webp":
		return WEBP, nil
	}

	return Format{}, fmt.Errorf("unsupported mime type: %s", mime)
}

func IsSupportedMime(mime string) bool {
	return supportedMimeTypes[normalizeMime(mime)]
}

func normalizeMime(mime string) string {
	return strings.ToLower(strings.TrimSpace(mime))
}
