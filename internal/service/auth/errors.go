package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPhoneMismatch      = errors.New("phone number does not match")
	ErrOTPInvalid         = errors.New("verification code is incorrect or expired")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
)
