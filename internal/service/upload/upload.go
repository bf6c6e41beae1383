package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/nguyenanhtu/realty_backend/pkg/imagecodec"
)

var (
	ErrDisabled = errors.New("image storage is not configured")
	ErrInvalid  = errors.New("invalid image")
)

type Result struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	ContentType string `json:"contentType"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Size        int    `json:"size"`
}

// Uploader is implemented by *s3.Client.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}

type Service interface {
	// Image validates and downsizes data, then stores it.
	Image(ctx context.Context, data []byte) (*Result, error)
	// DataURL accepts the base64 data URLs produced by the admin editor.
	DataURL(ctx context.Context, dataURL string) (*Result, error)
}

type uploadService struct {
	store Uploader
	codec *imagecodec.Codec
	now   func() time.Time
}

// New returns a service that reports ErrDisabled when store is nil.
func New(store Uploader, codec *imagecodec.Codec) Service {
	return &uploadService{store: store, codec: codec, now: time.Now}
}

func (s *uploadService) DataURL(ctx context.Context, dataURL string) (*Result, error) {
	_, data, err := imagecodec.ParseDataURL(dataURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return s.Image(ctx, data)
}

func (s *uploadService) Image(ctx context.Context, data []byte) (*Result, error) {
	if s.store == nil {
		return nil, ErrDisabled
	}

	img, err := s.codec.Process(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	now := s.now().UTC()
	key := fmt.Sprintf("images/%s/%s/%s%s", now.Format("2006"), now.Format("01"), uuid.New(), img.Ext())

	url, err := s.store.Upload(ctx, key, img.ContentType, bytes.NewReader(img.Data), int64(len(img.Data)))
	if err != nil {
		return nil, err
	}
	return &Result{
		URL:         url,
		Key:         key,
		ContentType: img.ContentType,
		Width:       img.Width,
		Height:      img.Height,
		Size:        len(img.Data),
	}, nil
}
