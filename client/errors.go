package client

import (
	"errors"
	"fmt"
)

var (
	ErrNoImages          = errors.New("no images to resize")
	ErrNotFound          = errors.New("image not found")
	ErrNoResult          = errors.New("image has not been resized yet")
	ErrFileTooLarge      = errors.New("file is too large")
	ErrUnsupportedType   = errors.New("unsupported file type")
	ErrUnreadableImage   = errors.New("unreadable image")
	ErrInvalidDimensions = errors.New("width and height must be positive")
	ErrInvalidQuality    = errors.New("quality must be between 1 and 100")
)

// TooManyImagesError rejects a staging call that would exceed the session limit.
type TooManyImagesError struct {
	Max       int
	Remaining int
}

func (e *TooManyImagesError) Error() string {
	return fmt.Sprintf("at most %d images are allowed, you can add %d more", e.Max, e.Remaining)
}

// FileError ties a staging failure to the file that caused it.
type FileError struct {
	Name string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// BatchError is returned when one image of a batch fails; the rest of the batch is not attempted.
type BatchError struct {
	Name string
	Err  error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("failed to resize %s: %v", e.Name, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}

// ServerError is a non-200 answer from the resize endpoint.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("resize endpoint returned %d: %s", e.StatusCode, e.Message)
}
