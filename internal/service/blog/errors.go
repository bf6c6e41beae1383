package blog

import "errors"

var (
	ErrNotFound     = errors.New("blog not found")
	ErrInvalidID    = errors.New("invalid blog id")
	ErrUpdateFailed = errors.New("blog update matched no document")
	ErrDeleteFailed = errors.New("blog delete removed no document")
)
