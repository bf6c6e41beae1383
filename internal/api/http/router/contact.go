package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/nguyenanhtu/realty_backend/internal/api/http/handler"
)

func (r *Router) registerContactRoutes(api fiber.Router, h *handler.ContactHandler, adminRequired fiber.Handler) {
	group := api.Group("/contacts")
	group.Post("/", h.Submit)
	group.Get("/", adminRequired, h.List)
	group.Get("/export", adminRequired, h.Export)
	group.Get("/:id", adminRequired, h.Get)
}
