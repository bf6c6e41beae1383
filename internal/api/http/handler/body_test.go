package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyenanhtu/realty_backend/internal/contract"
)

func echoApp() *fiber.App {
	app := fiber.New()
	app.Post("/", func(c fiber.Ctx) error {
		doc, err := productBody(c)
		if err != nil {
			if s := bodyStatus(err); s != 0 {
				return bodyError(c, s, err)
			}
			return badRequest(c, err.Error())
		}
		return c.JSON(doc)
	})
	return app
}

func TestDecodeBody(t *testing.T) {
	var mp bytes.Buffer
	w := multipart.NewWriter(&mp)
	require.NoError(t, w.WriteField("name", "Tower"))
	require.NoError(t, w.WriteField("listImages", `["a","b"]`))
	require.NoError(t, w.Close())

	tests := []struct {
		name        string
		contentType string
		body        string
		wantStatus  int
		want        map[string]any
	}{
		{"json", "application/json; charset=utf-8", `{"name":"Tower","floors":3}`, 200, map[string]any{"name": "Tower", "floors": float64(3)}},
		{"form", fiber.MIMEApplicationForm, "name=Tower&name=ignored", 200, map[string]any{"name": "Tower"}},
		{"multipart", w.FormDataContentType(), mp.String(), 200, map[string]any{"name": "Tower", "listImages": []any{"a", "b"}}},
		{"json array", fiber.MIMEApplicationJSON, `["x"]`, 400, nil},
		{"broken json", fiber.MIMEApplicationJSON, `{"name":`, 400, nil},
		{"bad listImages", fiber.MIMEApplicationForm, "listImages=nope", 400, nil},
		{"text", fiber.MIMETextPlain, "name=Tower", 415, nil},
		{"missing", "", "", 415, nil},
	}

	app := echoApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set(fiber.HeaderContentType, tt.contentType)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			require.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.want == nil {
				return
			}
			var got map[string]any
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBodyStatus(t *testing.T) {
	assert.Equal(t, fiber.StatusUnsupportedMediaType, bodyStatus(errUnsupportedMedia))
	assert.Equal(t, fiber.StatusBadRequest, bodyStatus(errMalformedBody))
	assert.Equal(t, fiber.StatusBadRequest, bodyStatus(&contract.ValidationError{Field: "name", Message: "required"}))
	assert.Zero(t, bodyStatus(errors.New("boom")))
}
