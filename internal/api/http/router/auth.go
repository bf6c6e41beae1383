package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/nguyenanhtu/realty_backend/internal/api/http/handler"
)

func (r *Router) registerAuthRoutes(api fiber.Router, h *handler.AuthHandler, adminRequired fiber.Handler) {
	group := api.Group("/auth")
	group.Post("/login", h.Login)
	group.Post("/logout", h.Logout)
	group.Post("/check-phone", h.CheckPhone)
	group.Post("/reset-password", h.ResetPassword)

	api.Get("/admin/verify", h.Verify)
}
