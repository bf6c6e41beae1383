package handler

import (
	"bytes"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/nguyenanhtu/realty_backend/internal/listing"
	"github.com/nguyenanhtu/realty_backend/internal/service/contact"
	"github.com/nguyenanhtu/realty_backend/pkg/reqctx"
)

type ContactHandler struct {
	svc           contact.Service
	defaultLocale string
}

func NewContactHandler(svc contact.Service, defaultLocale string) *ContactHandler {
	return &ContactHandler{svc: svc, defaultLocale: defaultLocale}
}

// POST /api/contacts
func (h *ContactHandler) Submit(c fiber.Ctx) error {
	doc, err := decodeBody(c)
	if err != nil {
		return mapContactError(c, err)
	}
	locale := h.defaultLocale
	if meta, ok := reqctx.RequestMetaFromContext(c.Context()); ok && meta.Locale != "" {
		locale = meta.Locale
	}
	if _, err := h.svc.Submit(c.Context(), doc, locale); err != nil {
		return mapContactError(c, err)
	}
	return success(c)
}

// GET /api/contacts?q=&page=&pageSize=
//
// Without page the whole (filtered) list is returned.
func (h *ContactHandler) List(c fiber.Ctx) error {
	q := c.Query("q")
	contacts, err := h.svc.List(c.Context(), q)
	if err != nil {
		return internalError(c, err)
	}

	raw := c.Query("page")
	if raw == "" {
		return c.JSON(fiber.Map{"success": true, "data": contacts})
	}
	page, _ := strconv.Atoi(raw)

	table := listing.NewAdminTable(contact.SearchFields)
	if size, err := strconv.Atoi(c.Query("pageSize")); err == nil && size > 0 {
		table.PageSize = size
	}
	table.SetPage(page)
	// contacts are already filtered by q
	p := table.Render(contacts)
	return c.JSON(fiber.Map{
		"success":    true,
		"data":       p.Items,
		"total":      p.Total,
		"page":       p.Page,
		"totalPages": p.TotalPages,
	})
}

// GET /api/contacts/:id
func (h *ContactHandler) Get(c fiber.Ctx) error {
	ct, err := h.svc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return mapContactError(c, err)
	}
	return data(c, ct)
}

// GET /api/contacts/export
func (h *ContactHandler) Export(c fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.svc.Export(c.Context(), &buf); err != nil {
		return internalError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="contacts.csv"`)
	return c.Send(buf.Bytes())
}

func mapContactError(c fiber.Ctx, err error) error {
	if s := bodyStatus(err); s != 0 {
		return bodyError(c, s, err)
	}
	switch {
	case errors.Is(err, contact.ErrInvalidPhone):
		return badRequest(c, err.Error())
	case errors.Is(err, contact.ErrInvalidID):
		return badRequest(c, "Invalid contact ID format")
	case errors.Is(err, contact.ErrNotFound):
		return notFound(c, "Contact not found")
	default:
		return internalError(c, err)
	}
}

