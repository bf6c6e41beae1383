// Package imagecodec validates uploaded images and downsizes them before they
// are stored.
package imagecodec

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"net/http"
	"strings"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

var (
	ErrUnsupported = errors.New("unsupported image type")
	ErrTooLarge    = errors.New("image exceeds the upload limit")
	ErrDataURL     = errors.New("malformed data url")
)

const jpegQuality = 85

var supported = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Image is a decoded upload ready to be stored.
type Image struct {
	Data        []byte
	ContentType string
	Width       int
	Height      int
}

// Ext is the file extension matching ContentType.
func (i Image) Ext() string {
	return supported[i.ContentType]
}

type Codec struct {
	MaxBytes int64
	MaxWidth int
}

func New(maxBytes int64, maxWidth int) *Codec {
	return &Codec{MaxBytes: maxBytes, MaxWidth: maxWidth}
}

// ParseDataURL splits "data:image/png;base64,...." into the media type and
// the decoded payload.
func ParseDataURL(s string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, ErrDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrDataURL
	}
	mediaType, enc, _ := strings.Cut(meta, ";")
	if enc != "base64" {
		return "", nil, fmt.Errorf("%w: only base64 payloads are accepted", ErrDataURL)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrDataURL, err)
	}
	return mediaType, data, nil
}

// Process checks the payload really is a supported image and scales it down to
// MaxWidth when it is wider. Images that already fit are returned unchanged.
func (c *Codec) Process(data []byte) (*Image, error) {
	if c.MaxBytes > 0 && int64(len(data)) > c.MaxBytes {
		return nil, ErrTooLarge
	}

	contentType := http.DetectContentType(data)
	if _, ok := supported[contentType]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, contentType)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	b := img.Bounds()

	if c.MaxWidth <= 0 || b.Dx() <= c.MaxWidth {
		return &Image{Data: data, ContentType: contentType, Width: b.Dx(), Height: b.Dy()}, nil
	}

	w := c.MaxWidth
	h := max(b.Dy()*w/b.Dx(), 1)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)

	out, contentType, err := encode(dst, format)
	if err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}
	return &Image{Data: out, ContentType: contentType, Width: w, Height: h}, nil
}

// x/image has no webp encoder, so resized webp files are stored as jpeg.
func encode(img image.Image, format string) ([]byte, string, error) {
	var buf bytes.Buffer
	var err error
	contentType := "image/" + format

	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "gif":
		err = gif.Encode(&buf, img, nil)
	default:
		contentType = "image/jpeg"
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality})
	}
	if err != nil {
		return nil, "", err
	}
	return buf.Bytes(), contentType, nil
}
