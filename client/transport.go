package client

import (
	"bytes"
	"context"
	"dimensify/config"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/gofiber/fiber/v2"
	"mime/multipart"
	"net/textproto"
	"strconv"
	"time"
)

// HTTPResizer calls the resize endpoint over HTTP.
type HTTPResizer struct {
	endpoint string
	timeout  time.Duration
}

func NewHTTPResizer(cfg *config.Client) *HTTPResizer {
	return &HTTPResizer{endpoint: cfg.Endpoint, timeout: cfg.Timeout()}
}

func (h *HTTPResizer) Resize(ctx context.Context, call ResizeCall) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, contentType, err := encodeForm(call)
	if err != nil {
		return nil, err
	}

	resp := fiber.AcquireResponse()
	defer fiber.ReleaseResponse(resp)

	a := fiber.Post(h.endpoint)
	a.SetResponse(resp)
	a.ContentType(contentType)
	a.Body(body)
	if h.timeout > 0 {
		a.Timeout(h.timeout)
	}

	if err = a.Parse(); err != nil {
		fiber.ReleaseAgent(a)
		return nil, err
	}

	code, data, errs := a.Bytes()
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	if code != fiber.StatusOK {
		return nil, decodeError(code, data)
	}
	if len(data) == 0 {
		return nil, &ServerError{StatusCode: code, Message: "empty response body"}
	}

	return &Result{MimeType: string(resp.Header.ContentType()), Data: data}, nil
}

// encodeForm writes the multipart body by hand so the image part carries its
// real content type instead of application/octet-stream.
func encodeForm(call ResizeCall) ([]byte, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	header := make(textproto.MIMEHeader)
	header.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`form-data; name="image"; filename=%q`, call.FileName))
	header.Set(fiber.HeaderContentType, call.MimeType)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err = part.Write(call.Data); err != nil {
		return nil, "", err
	}

	fields := [][2]string{
		{"width", strconv.Itoa(call.Width)},
		{"height", strconv.Itoa(call.Height)},
		{"format", call.Format.String()},
		{"quality", strconv.Itoa(call.Quality)},
	}
	for _, f := range fields {
		if err = w.WriteField(f[0], f[1]); err != nil {
			return nil, "", err
		}
	}

	if err = w.Close(); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), w.FormDataContentType(), nil
}

func decodeError(code int, data []byte) error {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil || body.Error == "" {
		return &ServerError{StatusCode: code, Message: fiber.ErrInternalServerError.Message}
	}

	return &ServerError{StatusCode: code, Message: body.Error}
}
