package client

import (
	"fmt"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	filenameSuffix  = "_byDimensify"
	archiveFilename = "resized-images.zip"
)

// Download is a file ready to be saved by the caller.
type Download struct {
	Name     string
	MimeType string
	Data     []byte
}

// Download returns the cached result of one image under a fresh random name.
func (s *Session) Download(id string) (*Download, error) {
	image := s.find(id)
	if image == nil {
		return nil, ErrNotFound
	}

	res, ok := s.results[id]
	if !ok {
		return nil, ErrNoResult
	}

	name, err := RandomFilename(image.Format.Extension())
	if err != nil {
		return nil, err
	}

	return &Download{Name: name, MimeType: res.MimeType, Data: res.Data}, nil
}

// DownloadAll bundles every cached result, in staging order, into one zip archive.
func (s *Session) DownloadAll() (*Download, error) {
	archive := NewArchive()
	seen := make(map[string]bool)

	for _, image := range s.images {
		res, ok := s.results[image.ID]
		if !ok {
			continue
		}

		name, err := RandomFilename(image.Format.Extension())
		for err == nil && seen[name] {
			name, err = RandomFilename(image.Format.Extension())
		}
		if err != nil {
			return nil, err
		}
		seen[name] = true

		if err = archive.Add(name, res.Data); err != nil {
			return nil, err
		}
	}

	if archive.Len() == 0 {
		return nil, ErrNoResult
	}

	data, err := archive.Finalize()
	if err != nil {
		return nil, err
	}

	return &Download{Name: archiveFilename, MimeType: "application/zip", Data: data}, nil
}

// RandomFilename builds "<random>_byDimensify.<ext>".
func RandomFilename(ext string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s%s.%s", id, filenameSuffix, ext), nil
}
