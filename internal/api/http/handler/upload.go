package handler

import (
	"errors"
	"io"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/nguyenanhtu/realty_backend/internal/service/upload"
)

var errNoImage = errors.New("expected a file field or a dataUrl")

type UploadHandler struct {
	svc upload.Service
}

func NewUploadHandler(svc upload.Service) *UploadHandler {
	return &UploadHandler{svc: svc}
}

// POST /api/uploads/images
//
// Accepts a multipart "file" field, or a JSON/form body with a base64
// "dataUrl" as produced by the rich-text editor.
func (h *UploadHandler) Image(c fiber.Ctx) error {
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		fh, err := c.FormFile("file")
		if err != nil {
			return badRequest(c, errNoImage.Error())
		}
		f, err := fh.Open()
		if err != nil {
			return internalError(c, err)
		}
		defer f.Close()
		raw, err := io.ReadAll(f)
		if err != nil {
			return internalError(c, err)
		}
		res, err := h.svc.Image(c.Context(), raw)
		if err != nil {
			return mapUploadError(c, err)
		}
		return created(c, res)
	}

	doc, err := decodeBody(c)
	if err != nil {
		return mapUploadError(c, err)
	}
	dataURL, _ := doc["dataUrl"].(string)
	if dataURL == "" {
		return badRequest(c, errNoImage.Error())
	}
	res, err := h.svc.DataURL(c.Context(), dataURL)
	if err != nil {
		return mapUploadError(c, err)
	}
	return created(c, res)
}

func mapUploadError(c fiber.Ctx, err error) error {
	if s := bodyStatus(err); s != 0 {
		return bodyError(c, s, err)
	}
	switch {
	case errors.Is(err, upload.ErrDisabled):
		return serviceUnavailable(c, err.Error())
	case errors.Is(err, upload.ErrInvalid):
		return badRequest(c, err.Error())
	default:
		return internalError(c, err)
	}
}
