package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	pasetotoken "github.com/nguyenanhtu/realty_backend/pkg/paseto"
)

// TokenVerifier is implemented by auth.Service.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*pasetotoken.Claims, pasetotoken.Status)
}

// AdminRequired accepts the token cookie or a Bearer header and checks the
// session in Redis. Expired and invalid tokens are both a plain 401.
// On success, stores *pasetotoken.Claims in c.Locals(pasetotoken.CtxKeyClaims).
func AdminRequired(v TokenVerifier) fiber.Handler {
	return func(c fiber.Ctx) error {
		token := pasetotoken.TokenFromFiber(c)
		if token == "" {
			return fiber.ErrUnauthorized
		}
		claims, status := v.Verify(c.Context(), token)
		if status != pasetotoken.StatusValid {
			return fiber.ErrUnauthorized
		}
		c.Locals(pasetotoken.CtxKeyClaims, claims)
		return c.Next()
	}
}
