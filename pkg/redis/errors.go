package redis

import "errors"

// Connection errors. Open joins the underlying cause onto these.
var (
	ErrEmptyConnectionURL = errors.New("redis: connection URL is empty")
	ErrFailedToParseURL   = errors.New("redis: invalid connection URL")
	ErrConnectionFailed   = errors.New("redis: cannot reach server")
	ErrHealthcheckFailed  = errors.New("redis: ping failed")
)
