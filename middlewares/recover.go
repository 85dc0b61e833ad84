package middlewares

import (
	"runtime"

	"github.com/dmitrymomot/mailforge/internal"
)

// DefaultStackSize is the default maximum stack trace size in bytes.
const DefaultStackSize = 4096

// RecoverConfig configures the recover middleware.
type RecoverConfig struct {
	StackSize         int
	DisablePrintStack bool
}

// RecoverOption configures RecoverConfig.
type RecoverOption func(*RecoverConfig)

// WithRecoverStackSize sets the maximum stack trace size.
func WithRecoverStackSize(size int) RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.StackSize = size
	}
}

// WithRecoverDisablePrintStack drops the stack trace from logs and errors.
func WithRecoverDisablePrintStack() RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.DisablePrintStack = true
	}
}

// Recover turns panics into a *PanicError for the app's ErrorHandler,
// which renders it as a generic 500.
func Recover(opts ...RecoverOption) internal.Middleware {
	cfg := &RecoverConfig{StackSize: DefaultStackSize}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				if cfg.DisablePrintStack {
					c.LogError("panic recovered", "panic", r)
					err = &PanicError{Value: r}
					return
				}

				stack := make([]byte, cfg.StackSize)
				stack = stack[:runtime.Stack(stack, false)]
				c.LogError("panic recovered", "panic", r, "stack", string(stack))
				err = &PanicError{Value: r, Stack: stack}
			}()

			return next(c)
		}
	}
}
