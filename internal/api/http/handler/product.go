package handler

import (
	"encoding/json"
	"errors"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/nguyenanhtu/realty_backend/internal/listing"
	"github.com/nguyenanhtu/realty_backend/internal/repo"
	"github.com/nguyenanhtu/realty_backend/internal/service/product"
)

var errListImages = errors.New("Invalid listImages format")

type ProductHandler struct {
	svc product.Service
}

func NewProductHandler(svc product.Service) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// GET /api/products?type=&area=&investor=&apartmentType=&project=&page=&limit=
func (h *ProductHandler) List(c fiber.Ctx) error {
	vals, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		return badRequest(c, "malformed query string")
	}
	sel := listing.FromValues(vals)
	limit, _ := strconv.Atoi(vals.Get("limit"))

	products, err := h.svc.List(c.Context(), repo.ProductFilter{
		Type:          vals.Get("type"),
		Areas:         sel.Areas,
		Investors:     sel.Investors,
		ApartmentType: sel.ApartmentType,
		Project:       sel.Project,
		Page:          repo.Page{Page: sel.Page, Limit: limit},
	})
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(products)
}

// GET /api/products/:id
func (h *ProductHandler) Get(c fiber.Ctx) error {
	p, err := h.svc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return mapProductError(c, err)
	}
	return data(c, p)
}

// GET /api/products/slug/:slug
func (h *ProductHandler) GetBySlug(c fiber.Ctx) error {
	p, err := h.svc.GetBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return mapProductError(c, err)
	}
	return data(c, p)
}

// POST /api/products
//
// The admin form posts multipart data with listImages as a JSON array string.
func (h *ProductHandler) Create(c fiber.Ctx) error {
	doc, err := productBody(c)
	if err != nil {
		return mapProductError(c, err)
	}
	p, err := h.svc.Create(c.Context(), doc)
	if err != nil {
		return mapProductError(c, err)
	}
	return created(c, p)
}

// PATCH /api/products/:id
func (h *ProductHandler) Update(c fiber.Ctx) error {
	if _, err := repo.ParseID(c.Params("id")); err != nil {
		return mapProductError(c, product.ErrInvalidID)
	}
	doc, err := productBody(c)
	if err != nil {
		return mapProductError(c, err)
	}
	p, err := h.svc.Update(c.Context(), c.Params("id"), doc)
	if err != nil {
		return mapProductError(c, err)
	}
	return data(c, p)
}

// DELETE /api/products/:id
func (h *ProductHandler) Delete(c fiber.Ctx) error {
	if err := h.svc.Delete(c.Context(), c.Params("id")); err != nil {
		return mapProductError(c, err)
	}
	return message(c, "Product deleted successfully")
}

// GET /api/products/areas
func (h *ProductHandler) Areas(c fiber.Ctx) error {
	v, err := h.svc.Areas(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{"areas": v})
}

// GET /api/products/investors
func (h *ProductHandler) Investors(c fiber.Ctx) error {
	v, err := h.svc.Investors(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{"investors": v})
}

// GET /api/products/apartment-type
func (h *ProductHandler) ApartmentTypes(c fiber.Ctx) error {
	v, err := h.svc.ApartmentTypes(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{"apartmentTypes": v})
}

// GET /api/products/projects
func (h *ProductHandler) Projects(c fiber.Ctx) error {
	v, err := h.svc.Projects(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{"projects": v})
}

// GET /api/products/filters returns every option list in one round trip.
func (h *ProductHandler) Filters(c fiber.Ctx) error {
	o, err := h.svc.Options(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(o)
}

func productBody(c fiber.Ctx) (map[string]any, error) {
	doc, err := decodeBody(c)
	if err != nil {
		return nil, err
	}
	if raw, ok := doc["listImages"].(string); ok {
		var images []any
		if err := json.Unmarshal([]byte(raw), &images); err != nil {
			return nil, errListImages
		}
		doc["listImages"] = images
	}
	return doc, nil
}

func mapProductError(c fiber.Ctx, err error) error {
	if s := bodyStatus(err); s != 0 {
		return bodyError(c, s, err)
	}
	switch {
	case errors.Is(err, errListImages):
		return badRequest(c, err.Error())
	case errors.Is(err, product.ErrInvalidID):
		return badRequest(c, "Invalid product ID format")
	case errors.Is(err, product.ErrNotFound):
		return notFound(c, "Product not found")
	case errors.Is(err, product.ErrSlugTaken):
		return conflict(c, err.Error())
	default:
		return internalError(c, err)
	}
}
