package cache

import "errors"

var (
	ErrNotFound  = errors.New("cache: entry not found")
	ErrClosed    = errors.New("cache: closed")
	ErrMarshal   = errors.New("cache: encode value")
	ErrUnmarshal = errors.New("cache: decode value")
)
