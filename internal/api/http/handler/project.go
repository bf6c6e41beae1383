package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/nguyenanhtu/realty_backend/internal/repo"
	"github.com/nguyenanhtu/realty_backend/internal/service/project"
)

type ProjectHandler struct {
	svc project.Service
}

func NewProjectHandler(svc project.Service) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// GET /api/projects?category=&type=
func (h *ProjectHandler) List(c fiber.Ctx) error {
	projects, err := h.svc.List(c.Context(), repo.ProjectFilter{
		Category: c.Query("category"),
		Type:     c.Query("type"),
	})
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(projects)
}

// POST /api/projects
func (h *ProjectHandler) Create(c fiber.Ctx) error {
	doc, err := decodeBody(c)
	if err != nil {
		return mapProjectError(c, err)
	}
	p, err := h.svc.Create(c.Context(), doc)
	if err != nil {
		return mapProjectError(c, err)
	}
	return created(c, p)
}

func mapProjectError(c fiber.Ctx, err error) error {
	if s := bodyStatus(err); s != 0 {
		return bodyError(c, s, err)
	}
	if errors.Is(err, project.ErrSlugTaken) {
		return conflict(c, err.Error())
	}
	return internalError(c, err)
}
