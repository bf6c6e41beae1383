package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/nguyenanhtu/realty_backend/internal/api/http/handler"
)

func (r *Router) registerProductRoutes(api fiber.Router, h *handler.ProductHandler, adminRequired fiber.Handler) {
	group := api.Group("/products")
	group.Get("/", h.List)

	// filter options; registered before /:id
	group.Get("/areas", h.Areas)
	group.Get("/investors", h.Investors)
	group.Get("/apartment-type", h.ApartmentTypes)
	group.Get("/projects", h.Projects)
	group.Get("/filters", h.Filters)
	group.Get("/slug/:slug", h.GetBySlug)

	group.Get("/:id", h.Get)
	group.Post("/", adminRequired, h.Create)
	group.Patch("/:id", adminRequired, h.Update)
	group.Delete("/:id", adminRequired, h.Delete)
}
