package pasetotoken

import (
	"time"

	"github.com/google/uuid"
)

// Status is the outcome of verifying a token. Callers that guard admin pages
// treat every non-valid status the same way.
type Status int

const (
	StatusInvalid Status = iota
	StatusExpired
	StatusValid
)

func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusExpired:
		return "expired"
	default:
		return "invalid"
	}
}

// Claims is the app-facing token payload for the admin identity.
type Claims struct {
	Subject   string
	SessionID uuid.UUID
	TokenID   string

	IssuedAt  time.Time
	ExpiresAt time.Time
}

// GetSessionID returns the Redis session the token is bound to.
func (c *Claims) GetSessionID() uuid.UUID {
	return c.SessionID
}

// GetSubject is always SubjectAdmin for tokens this service issues.
func (c *Claims) GetSubject() string {
	return c.Subject
}

// TTL is the remaining lifetime relative to now, never negative.
func (c *Claims) TTL(now time.Time) time.Duration {
	if d := c.ExpiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}
