package handler

import (
	"errors"
	"fmt"
	"mime"
	"net/url"

	"github.com/gofiber/fiber/v3"

	"github.com/nguyenanhtu/realty_backend/internal/contract"
)

var (
	errUnsupportedMedia = errors.New("unsupported content type")
	errMalformedBody    = errors.New("malformed request body")
)

// decodeBody reads a JSON, urlencoded or multipart body into a generic
// document. Form fields arrive as strings; JSON keeps its types with numbers
// as json.Number.
func decodeBody(c fiber.Ctx) (map[string]any, error) {
	mediaType, _, err := mime.ParseMediaType(c.Get(fiber.HeaderContentType))
	if err != nil {
		return nil, errUnsupportedMedia
	}

	switch mediaType {
	case fiber.MIMEApplicationJSON:
		return decodeJSON(c.Body())

	case fiber.MIMEApplicationForm:
		vals, err := url.ParseQuery(string(c.Body()))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errMalformedBody, err)
		}
		return firstValues(vals), nil

	case fiber.MIMEMultipartForm:
		form, err := c.MultipartForm()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errMalformedBody, err)
		}
		return firstValues(form.Value), nil
	}
	return nil, errUnsupportedMedia
}

func decodeJSON(raw []byte) (map[string]any, error) {
	doc, err := contract.ParseJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: body is not valid JSON", errMalformedBody)
	}
	m, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: body must be a JSON object", errMalformedBody)
	}
	return m, nil
}

func firstValues(vals map[string][]string) map[string]any {
	doc := make(map[string]any, len(vals))
	for k, v := range vals {
		if len(v) > 0 {
			doc[k] = v[0]
		}
	}
	return doc
}
