package contact

import "errors"

var (
	ErrNotFound     = errors.New("contact not found")
	ErrInvalidID    = errors.New("invalid contact id")
	ErrInvalidPhone = errors.New("invalid phone number")
	// ErrNotifyFailed means the contact was stored but the owner was not told.
	ErrNotifyFailed = errors.New("contact saved but notification failed")
)
