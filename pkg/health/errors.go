package health

import "errors"

// ErrCheckTimeout is joined into a check error when the probe deadline expires.
var ErrCheckTimeout = errors.New("health: check timeout")
