package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/nguyenanhtu/realty_backend/internal/api/http/handler"
)

func (r *Router) registerBlogRoutes(api fiber.Router, h *handler.BlogHandler, adminRequired fiber.Handler) {
	group := api.Group("/blogs")
	group.Get("/", h.List)
	group.Get("/:id", h.Get)
	group.Post("/", adminRequired, h.Create)
	group.Patch("/:id", adminRequired, h.Update)
	group.Delete("/:id", adminRequired, h.Delete)
}
