package pasetotoken

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/nguyenanhtu/realty_backend/config"
	"github.com/nguyenanhtu/realty_backend/pkg/constants"
)

const CtxKeyClaims = "auth.claims"

// TokenFromFiber reads the token from the auth cookie, falling back to an
// Authorization: Bearer header for API clients.
func TokenFromFiber(c fiber.Ctx) string {
	if v := c.Cookies(constants.AuthCookieName); v != "" {
		return v
	}
	h := c.Get(fiber.HeaderAuthorization)
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func ClaimsFromFiber(c fiber.Ctx) (*Claims, bool) {
	cl, ok := c.Locals(CtxKeyClaims).(*Claims)
	return cl, ok && cl != nil
}

// NewPasetoManager creates a new PASETO manager from config.
func NewPasetoManager(cfg *config.Config) (*Manager, error) {
	p := cfg.Authentication.Paseto
	return New(Config{
		Issuer:   p.Issuer,
		Audience: p.Audience,
		TTL:      time.Duration(p.AccessTTLMinutes) * time.Minute,
	}, p.LocalKeyHex)
}
