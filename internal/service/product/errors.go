package product

import "errors"

var (
	ErrNotFound     = errors.New("product not found")
	ErrInvalidID    = errors.New("invalid product id")
	ErrUpdateFailed = errors.New("product update matched no document")
	ErrDeleteFailed = errors.New("product delete removed no document")
	ErrSlugTaken    = errors.New("no free slug for product name")
)
