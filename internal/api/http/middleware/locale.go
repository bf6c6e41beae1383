package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/nguyenanhtu/realty_backend/pkg/constants"
	"github.com/nguyenanhtu/realty_backend/pkg/i18n"
	pasetotoken "github.com/nguyenanhtu/realty_backend/pkg/paseto"
	"github.com/nguyenanhtu/realty_backend/pkg/reqctx"
)

const LocalLocale = "locale"

// Locale resolves the request locale and handles locale-prefixed paths:
//
//	GET /                       -> 307 /{locale}/home
//	/{locale}/api/...           -> served by /api/...
//	/{locale}/admin/login       -> 307 /{locale}/admin/dashboard when already signed in
//
// It must be registered before the routes it rewrites.
func Locale(b *i18n.Bundle, v TokenVerifier) fiber.Handler {
	return func(c fiber.Ctx) error {
		path := c.Path()

		if path == "/" && c.Method() == fiber.MethodGet {
			loc := b.Negotiate(c.Cookies(constants.LocaleCookieName), c.Get(fiber.HeaderAcceptLanguage))
			return c.Redirect().Status(fiber.StatusTemporaryRedirect).To("/" + loc + "/home")
		}

		loc, rest, prefixed := splitLocale(b, path)
		if !prefixed {
			loc = b.Negotiate(c.Cookies(constants.LocaleCookieName), c.Get(fiber.HeaderAcceptLanguage))
		}
		setLocale(c, loc)

		if !prefixed {
			return c.Next()
		}
		switch {
		case rest == "/api" || strings.HasPrefix(rest, "/api/"):
			c.Path(rest)
		case rest == "/admin/login" && signedIn(c, v):
			return c.Redirect().Status(fiber.StatusTemporaryRedirect).To("/" + loc + "/admin/dashboard")
		}
		return c.Next()
	}
}

// LocaleFromFiber returns the locale resolved by Locale, or "" before it ran.
func LocaleFromFiber(c fiber.Ctx) string {
	s, _ := c.Locals(LocalLocale).(string)
	return s
}

func splitLocale(b *i18n.Bundle, path string) (loc, rest string, ok bool) {
	trimmed := strings.TrimPrefix(path, "/")
	seg, tail, _ := strings.Cut(trimmed, "/")
	if !b.Supported(seg) {
		return "", path, false
	}
	return seg, "/" + tail, true
}

func setLocale(c fiber.Ctx, loc string) {
	c.Locals(LocalLocale, loc)
	c.Set(fiber.HeaderContentLanguage, loc)
	if meta, ok := reqctx.RequestMetaFromContext(c.Context()); ok {
		meta.Locale = loc
	}
}

func signedIn(c fiber.Ctx, v TokenVerifier) bool {
	token := pasetotoken.TokenFromFiber(c)
	if token == "" {
		return false
	}
	_, status := v.Verify(c.Context(), token)
	return status == pasetotoken.StatusValid
}
