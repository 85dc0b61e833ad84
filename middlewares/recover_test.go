package middlewares_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailforge/internal"
	"github.com/dmitrymomot/mailforge/middlewares"
)

func TestRecover(t *testing.T) {
	t.Parallel()

	boom := func(internal.Context) error { panic("template exploded") }

	t.Run("panic renders generic 500", func(t *testing.T) {
		t.Parallel()

		rec := serve(httptest.NewRequest(http.MethodPost, "/test", nil), boom, middlewares.Recover())

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"Internal Server Error"}`, rec.Body.String())
	})

	t.Run("catches panics in later global middleware", func(t *testing.T) {
		t.Parallel()

		explode := func(internal.HandlerFunc) internal.HandlerFunc {
			return func(internal.Context) error { panic("request id generator failed") }
		}
		req := httptest.NewRequest(http.MethodPost, "/test", nil)
		req.Header.Set("Origin", "http://localhost:3002")

		rec := serve(req, ok, middlewares.Recover(), middlewares.CORS(), explode)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "http://localhost:3002", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("error handler sees PanicError with stack", func(t *testing.T) {
		t.Parallel()

		var got *middlewares.PanicError
		app := internal.New(
			internal.WithMiddleware(middlewares.Recover()),
			internal.WithErrorHandler(func(c internal.Context, err error) error {
				got, _ = middlewares.AsPanicError(err)
				return internal.DefaultErrorHandler(c, err)
			}),
			internal.WithHandlers(routes(func(r internal.Router) { r.GET("/test", boom) })),
		)
		app.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))

		require.NotNil(t, got)
		assert.Equal(t, "template exploded", got.Value)
		assert.NotEmpty(t, got.Stack)
		assert.Equal(t, "panic: template exploded", got.Error())
	})

	t.Run("stack disabled", func(t *testing.T) {
		t.Parallel()

		mw := middlewares.Recover(middlewares.WithRecoverDisablePrintStack())
		var got *middlewares.PanicError
		app := internal.New(
			internal.WithMiddleware(mw),
			internal.WithErrorHandler(func(c internal.Context, err error) error {
				got, _ = middlewares.AsPanicError(err)
				return internal.DefaultErrorHandler(c, err)
			}),
			internal.WithHandlers(routes(func(r internal.Router) { r.GET("/test", boom) })),
		)
		app.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))

		require.NotNil(t, got)
		assert.Nil(t, got.Stack)
	})

	t.Run("no panic passes through", func(t *testing.T) {
		t.Parallel()

		rec := serve(httptest.NewRequest(http.MethodGet, "/test", nil), ok, middlewares.Recover())
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestIsPanicError(t *testing.T) {
	t.Parallel()

	assert.True(t, middlewares.IsPanicError(&middlewares.PanicError{Value: 1}))
	assert.False(t, middlewares.IsPanicError(errors.New("plain")))
	assert.False(t, middlewares.IsPanicError(nil))
}
