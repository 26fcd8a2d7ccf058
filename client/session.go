package client

import (
	"context"
	"dimensify/api/model"
	"dimensify/config"
	"fmt"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"math"
)

const defaultQuality = 80

// ResizeCall is one request to the resize endpoint.
type ResizeCall struct {
	FileName string
	MimeType string
	Data     []byte
	Width    int
	Height   int
	Format   model.Format
	Quality  int
}

type Resizer interface {
	Resize(ctx context.Context, call ResizeCall) (*Result, error)
}

type Settings struct {
	Width           int
	Height          int
	Quality         int
	LockAspectRatio bool
}

// Session holds the staged originals and their resize results for one user.
// It is not safe for concurrent use.
type Session struct {
	images  []*UploadedImage
	results map[string]*Result

	settings Settings

	maxImages   int
	maxFileSize int64

	loading bool
	err     error

	resizer Resizer
	logger  *zap.Logger
}

func NewSession(cfg *config.Client, resizer Resizer, logger *zap.Logger) *Session {
	quality := cfg.Quality
	if quality < 1 || quality > 100 {
		quality = defaultQuality
	}

	return &Session{
		results:     make(map[string]*Result),
		settings:    Settings{Quality: quality, LockAspectRatio: true},
		maxImages:   cfg.MaxImages,
		maxFileSize: cfg.MaxFileSize(),
		resizer:     resizer,
		logger:      logger,
	}
}

// Stage adds files to the session. The whole call is rejected when any file
// fails validation or when the session limit would be exceeded.
func (s *Session) Stage(files ...File) ([]*UploadedImage, error) {
	if len(s.images)+len(files) > s.maxImages {
		return nil, &TooManyImagesError{Max: s.maxImages, Remaining: s.maxImages - len(s.images)}
	}

	staged := make([]*UploadedImage, 0, len(files))
	for _, f := range files {
		if int64(len(f.Data)) > s.maxFileSize {
			return nil, &FileError{Name: f.Name, Err: fmt.Errorf("%w: limit is %d MB", ErrFileTooLarge, s.maxFileSize>>20)}
		}
		if !model.IsSupportedMime(f.MimeType) {
			return nil, &FileError{Name: f.Name, Err: fmt.Errorf("%w: %s", ErrUnsupportedType, f.MimeType)}
		}

		format, err := declaredFormat(f.Name, f.MimeType)
		if err != nil {
			return nil, &FileError{Name: f.Name, Err: err}
		}

		width, height, err := probeDimensions(f.Data)
		if err != nil {
			return nil, &FileError{Name: f.Name, Err: err}
		}

		staged = append(staged, &UploadedImage{
			ID:       uuid.NewString(),
			Name:     f.Name,
			MimeType: f.MimeType,
			Format:   format,
			Width:    width,
			Height:   height,
			Data:     f.Data,
		})
	}

	if len(s.images) == 0 && len(staged) > 0 {
		s.settings.Width = staged[0].Width
		s.settings.Height = staged[0].Height
	}

	s.images = append(s.images, staged...)
	s.logger.Debug("Staged images", zap.Int("added", len(staged)), zap.Int("total", len(s.images)))

	return staged, nil
}

func (s *Session) Settings() Settings {
	return s.settings
}

// SetWidth updates the width. With the aspect ratio locked the height follows
// the first staged image's proportions.
func (s *Session) SetWidth(width int) error {
	if width <= 0 {
		return ErrInvalidDimensions
	}

	s.settings.Width = width
	if first := s.first(); s.settings.LockAspectRatio && first != nil {
		s.settings.Height = scale(width, first.Height, first.Width)
	}

	return nil
}

func (s *Session) SetHeight(height int) error {
	if height <= 0 {
		return ErrInvalidDimensions
	}

	s.settings.Height = height
	if first := s.first(); s.settings.LockAspectRatio && first != nil {
		s.settings.Width = scale(height, first.Width, first.Height)
	}

	return nil
}

func (s *Session) SetQuality(quality int) error {
	if quality < 1 || quality > 100 {
		return ErrInvalidQuality
	}

	s.settings.Quality = quality

	return nil
}

func (s *Session) SetAspectRatioLock(locked bool) {
	s.settings.LockAspectRatio = locked
}

// ResizeAll sends every staged image, one at a time and in staging order, to
// the resizer. The first failure stops the batch: images before it keep their
// fresh results, the failing image and the ones after it lose any cached result
// so no output from an earlier run survives next to this one.
func (s *Session) ResizeAll(ctx context.Context) ([]*Result, error) {
	if len(s.images) == 0 {
		return nil, ErrNoImages
	}

	s.loading = true
	s.err = nil
	defer func() { s.loading = false }()

	logger := s.logger.With(zap.Int("width", s.settings.Width), zap.Int("height", s.settings.Height), zap.Int("quality", s.settings.Quality))

	results := make([]*Result, 0, len(s.images))
	for i, image := range s.images {
		if err := ctx.Err(); err != nil {
			s.dropResultsFrom(i)
			s.err = &BatchError{Name: image.Name, Err: err}
			return nil, s.err
		}

		res, err := s.resizer.Resize(ctx, ResizeCall{
			FileName: image.Name,
			MimeType: image.MimeType,
			Data:     image.Data,
			Width:    s.settings.Width,
			Height:   s.settings.Height,
			Format:   image.Format,
			Quality:  s.settings.Quality,
		})
		if err != nil {
			logger.Error("Error resizing image", zap.String("name", image.Name), zap.Error(err))
			s.dropResultsFrom(i)
			s.err = &BatchError{Name: image.Name, Err: err}
			return nil, s.err
		}

		res.ImageID = image.ID
		s.results[image.ID] = res
		results = append(results, res)
	}

	logger.Debug("Resized images", zap.Int("count", len(results)))

	return results, nil
}

func (s *Session) dropResultsFrom(i int) {
	for _, image := range s.images[i:] {
		delete(s.results, image.ID)
	}
}

func (s *Session) Remove(id string) error {
	for i, image := range s.images {
		if image.ID == id {
			s.images = append(s.images[:i], s.images[i+1:]...)
			delete(s.results, id)
			return nil
		}
	}

	return ErrNotFound
}

func (s *Session) Clear() {
	s.images = nil
	s.results = make(map[string]*Result)
	s.err = nil
	s.loading = false
}

func (s *Session) Images() []*UploadedImage {
	out := make([]*UploadedImage, len(s.images))
	copy(out, s.images)
	return out
}

func (s *Session) Result(id string) (*Result, bool) {
	res, ok := s.results[id]
	return res, ok
}

// Err is the error of the last batch, nil when it succeeded.
func (s *Session) Err() error {
	return s.err
}

func (s *Session) Loading() bool {
	return s.loading
}

func (s *Session) first() *UploadedImage {
	if len(s.images) == 0 {
		return nil
	}
	return s.images[0]
}

func (s *Session) find(id string) *UploadedImage {
	for _, image := range s.images {
		if image.ID == id {
			return image
		}
	}
	return nil
}

// scale returns value * num / den rounded to the nearest integer, never below 1.
func scale(value, num, den int) int {
	n := int(math.Round(float64(value) * float64(num) / float64(den)))
	if n < 1 {
		return 1
	}
	return n
}
