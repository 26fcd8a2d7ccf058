package model

import "io"

type ImageFile struct {
	Name     string
	MimeType string
	Data     []byte
}

// ResizeRequest carries the raw multipart fields; nothing in it is validated yet.
type ResizeRequest struct {
	Image   *ImageFile
	Width   string
	Height  string
	Format  string
	Quality string
}

type ImageResponse struct {
	Type               string
	ContentLength      int64
	ContentDisposition string

	Body io.Reader
}

type ErrorResponse struct {
	Error string `json:"error"`
}
