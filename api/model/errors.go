package model

import "errors"

const (
	ProcessingFailedMessage = "Failed to process image"
	MethodNotAllowedMessage = "Method not allowed"
)

type ErrorKind struct {
	s string
}

var (
	MissingFile       = ErrorKind{"missing_file"}
	UnsupportedType   = ErrorKind{"unsupported_type"}
	InvalidDimensions = ErrorKind{"invalid_dimensions"}
	InvalidFormat     = ErrorKind{"invalid_format"}
	InvalidQuality    = ErrorKind{"invalid_quality"}
)

var messages = map[ErrorKind]string{
	MissingFile:       "No image file provided",
	UnsupportedType:   "Invalid file type. Only JPEG, PNG and WebP images are allowed",
	InvalidDimensions: "Invalid dimensions. Width and height must be positive integers",
	InvalidFormat:     "Invalid format. Allowed formats are jpeg, jpg, png and webp",
	InvalidQuality:    "Invalid quality. Quality must be an integer between 1 and 100",
}

func (k ErrorKind) String() string {
	return k.s
}

func (k ErrorKind) Message() string {
	return messages[k]
}

// RequestError is a client-input failure. It is always answered with 400.
type RequestError struct {
	Kind ErrorKind
	Err  error
}

func NewRequestError(kind ErrorKind, err error) *RequestError {
	return &RequestError{Kind: kind, Err: err}
}

func (e *RequestError) Error() string {
	return e.Kind.Message()
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

func AsRequestError(err error) (*RequestError, bool) {
	var re *RequestError
	ok := errors.As(err, &re)
	return re, ok
}
