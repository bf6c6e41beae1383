package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/nguyenanhtu/realty_backend/internal/contract"
	"github.com/nguyenanhtu/realty_backend/internal/service/auth"
	"github.com/nguyenanhtu/realty_backend/pkg/constants"
	pasetotoken "github.com/nguyenanhtu/realty_backend/pkg/paseto"
)

type AuthHandler struct {
	svc       auth.Service
	validator *contract.Validator
	// secure marks the session cookie Secure; off in development so plain
	// http on localhost still works.
	secure bool
}

func NewAuthHandler(svc auth.Service, v *contract.Validator, secure bool) *AuthHandler {
	return &AuthHandler{svc: svc, validator: v, secure: secure}
}

// POST /api/auth/login
func (h *AuthHandler) Login(c fiber.Ctx) error {
	doc, err := h.validator.ValidateJSON(contract.Login, c.Body())
	if err != nil {
		return mapAuthError(c, err)
	}
	var req auth.LoginRequest
	if err := contract.Decode(doc, &req); err != nil {
		return mapAuthError(c, err)
	}

	sess, err := h.svc.Login(c.Context(), req)
	if err != nil {
		return mapAuthError(c, err)
	}

	c.Cookie(h.cookie(sess.Token, int(sess.TTL/time.Second)))
	return success(c)
}

// GET /api/admin/verify
func (h *AuthHandler) Verify(c fiber.Ctx) error {
	token := pasetotoken.TokenFromFiber(c)
	if token == "" {
		return unauthorized(c, "no token")
	}
	claims, status := h.svc.Verify(c.Context(), token)
	if status != pasetotoken.StatusValid {
		return unauthorized(c, "token "+status.String())
	}
	return c.JSON(fiber.Map{
		"success": true,
		"user": fiber.Map{
			"role":      claims.Subject,
			"expiresAt": claims.ExpiresAt,
		},
	})
}

// POST /api/auth/logout
//
// Always clears the cookie, even when the token is already invalid.
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	if token := pasetotoken.TokenFromFiber(c); token != "" {
		if claims, status := h.svc.Verify(c.Context(), token); status == pasetotoken.StatusValid {
			if err := h.svc.Logout(c.Context(), claims.SessionID); err != nil {
				return internalError(c, err)
			}
		}
	}
	expired := h.cookie("", -1)
	expired.Expires = time.Unix(0, 0)
	c.Cookie(expired)
	return success(c)
}

// POST /api/auth/check-phone
func (h *AuthHandler) CheckPhone(c fiber.Ctx) error {
	doc, err := h.validator.ValidateJSON(contract.CheckPhone, c.Body())
	if err != nil {
		return mapAuthError(c, err)
	}
	var body struct {
		Phone string `json:"phone"`
	}
	if err := contract.Decode(doc, &body); err != nil {
		return mapAuthError(c, err)
	}
	if err := h.svc.CheckPhone(c.Context(), body.Phone); err != nil {
		return mapAuthError(c, err)
	}
	return success(c)
}

// POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(c fiber.Ctx) error {
	doc, err := h.validator.ValidateJSON(contract.ResetPassword, c.Body())
	if err != nil {
		return mapAuthError(c, err)
	}
	var req auth.ResetRequest
	if err := contract.Decode(doc, &req); err != nil {
		return mapAuthError(c, err)
	}
	if err := h.svc.ResetPassword(c.Context(), req); err != nil {
		return mapAuthError(c, err)
	}
	return success(c)
}

func (h *AuthHandler) cookie(value string, maxAge int) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     constants.AuthCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}

func mapAuthError(c fiber.Ctx, err error) error {
	if s := bodyStatus(err); s != 0 {
		return bodyError(c, s, err)
	}
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrPhoneMismatch),
		errors.Is(err, auth.ErrOTPInvalid):
		return unauthorized(c, err.Error())
	case errors.Is(err, auth.ErrPasswordTooShort):
		return badRequest(c, err.Error())
	default:
		return internalError(c, err)
	}
}
