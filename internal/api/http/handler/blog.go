package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/nguyenanhtu/realty_backend/internal/repo"
	"github.com/nguyenanhtu/realty_backend/internal/service/blog"
)

type BlogHandler struct {
	svc blog.Service
}

func NewBlogHandler(svc blog.Service) *BlogHandler {
	return &BlogHandler{svc: svc}
}

// GET /api/blogs?title=
func (h *BlogHandler) List(c fiber.Ctx) error {
	blogs, err := h.svc.List(c.Context(), c.Query("title"))
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(blogs)
}

// GET /api/blogs/:id
func (h *BlogHandler) Get(c fiber.Ctx) error {
	b, err := h.svc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return mapBlogError(c, err)
	}
	return data(c, b)
}

// POST /api/blogs
func (h *BlogHandler) Create(c fiber.Ctx) error {
	doc, err := decodeBody(c)
	if err != nil {
		return mapBlogError(c, err)
	}
	b, err := h.svc.Create(c.Context(), doc)
	if err != nil {
		return mapBlogError(c, err)
	}
	return created(c, b)
}

// PATCH /api/blogs/:id
func (h *BlogHandler) Update(c fiber.Ctx) error {
	// A bad id wins over a bad body.
	if _, err := repo.ParseID(c.Params("id")); err != nil {
		return mapBlogError(c, blog.ErrInvalidID)
	}
	doc, err := decodeBody(c)
	if err != nil {
		return mapBlogError(c, err)
	}
	b, err := h.svc.Update(c.Context(), c.Params("id"), doc)
	if err != nil {
		return mapBlogError(c, err)
	}
	return data(c, b)
}

// DELETE /api/blogs/:id
func (h *BlogHandler) Delete(c fiber.Ctx) error {
	if err := h.svc.Delete(c.Context(), c.Params("id")); err != nil {
		return mapBlogError(c, err)
	}
	return message(c, "Blog deleted successfully")
}

func mapBlogError(c fiber.Ctx, err error) error {
	if s := bodyStatus(err); s != 0 {
		return bodyError(c, s, err)
	}
	switch {
	case errors.Is(err, blog.ErrInvalidID):
		return badRequest(c, "Invalid blog ID format")
	case errors.Is(err, blog.ErrNotFound):
		return notFound(c, "Blog not found")
	default:
		return internalError(c, err)
	}
}
