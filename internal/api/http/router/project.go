package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/nguyenanhtu/realty_backend/internal/api/http/handler"
)

func (r *Router) registerProjectRoutes(api fiber.Router, h *handler.ProjectHandler, adminRequired fiber.Handler) {
	group := api.Group("/projects")
	group.Get("/", h.List)
	group.Post("/", adminRequired, h.Create)
}

func (r *Router) registerUploadRoutes(api fiber.Router, h *handler.UploadHandler, adminRequired fiber.Handler) {
	api.Post("/uploads/images", adminRequired, h.Image)
}
