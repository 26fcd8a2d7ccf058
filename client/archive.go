package client

import (
	"bytes"
	"github.com/klauspost/compress/zip"
	"time"
)

// Archive collects files into an in-memory zip.
type Archive struct {
	buf *bytes.Buffer
	w   *zip.Writer
	n   int
}

func NewArchive() *Archive {
	buf := &bytes.Buffer{}
	return &Archive{buf: buf, w: zip.NewWriter(buf)}
}

// Add stores data as-is; encoded images do not shrink further under deflate.
func (a *Archive) Add(name string, data []byte) error {
	f, err := a.w.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Store,
		Modified: time.Now(),
	})
	if err != nil {
		return err
	}

	if _, err = f.Write(data); err != nil {
		return err
	}
	a.n++

	return nil
}

func (a *Archive) Len() int {
	return a.n
}

func (a *Archive) Finalize() ([]byte, error) {
	if err := a.w.Close(); err != nil {
		return nil, err
	}

	return a.buf.Bytes(), nil
}
