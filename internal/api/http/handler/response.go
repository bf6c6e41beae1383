package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/nguyenanhtu/realty_backend/internal/contract"
)

func data(c fiber.Ctx, v any) error {
	return c.JSON(fiber.Map{"data": v})
}

func created(c fiber.Ctx, v any) error {
	return c.Status(fiber.StatusCreated).JSON(v)
}

func message(c fiber.Ctx, msg string) error {
	return c.JSON(fiber.Map{"message": msg})
}

func success(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true})
}

func badRequest(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func unauthorized(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": msg})
}

func notFound(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": msg})
}

func conflict(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": msg})
}

func serviceUnavailable(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": msg})
}

// internalError logs err with the request context and hides it from the client.
func internalError(c fiber.Ctx, err error) error {
	slog.ErrorContext(c.Context(), "request failed",
		slog.String("method", c.Method()),
		slog.String("path", c.Path()),
		slog.Any("error", err),
	)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}

// bodyStatus is the status for request-body problems shared by every
// handler, or 0 when err is something else.
func bodyStatus(err error) int {
	switch {
	case errors.Is(err, errUnsupportedMedia):
		return fiber.StatusUnsupportedMediaType
	case errors.Is(err, errMalformedBody), errors.Is(err, contract.ErrInvalid):
		return fiber.StatusBadRequest
	}
	return 0
}

func bodyError(c fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
