package internal_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailforge/internal"
	"github.com/dmitrymomot/mailforge/pkg/validator"
)

func TestIsHTTPError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		name string
		want bool
	}{
		{name: "direct", err: internal.ErrNotFound("not found"), want: true},
		{name: "wrapped", err: fmt.Errorf("handler: %w", internal.ErrBadRequest("bad")), want: true},
		{name: "double wrapped", err: fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", internal.ErrInternal("boom"))), want: true},
		{name: "joined", err: errors.Join(errors.New("x"), internal.ErrServiceUnavailable("down")), want: true},
		{name: "unrelated", err: errors.New("plain"), want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, internal.IsHTTPError(tt.err))
		})
	}
}

func TestAsHTTPError(t *testing.T) {
	t.Parallel()

	t.Run("wrapped keeps options", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("resend: invalid key (status 401)")
		httpErr := internal.ErrInternal("Failed to send email",
			internal.WithDetails(map[string]string{"message": "invalid key"}),
			internal.WithErrorCode("SEND_FAILED"),
			internal.WithRequestID("req-1"),
			internal.WithError(cause),
		)

		got := internal.AsHTTPError(fmt.Errorf("send: %w", httpErr))
		require.NotNil(t, got)
		assert.Equal(t, http.StatusInternalServerError, got.StatusCode())
		assert.Equal(t, "Failed to send email", got.Error())
		assert.Equal(t, "SEND_FAILED", got.ErrorCode)
		assert.Equal(t, "req-1", got.RequestID)
		assert.ErrorIs(t, got, cause)
	})

	t.Run("unrelated returns nil", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, internal.AsHTTPError(errors.New("plain")))
	})
}

func TestDefaultErrorHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err        error
		wantBody   map[string]any
		name       string
		wantStatus int
	}{
		{
			name:       "http error",
			err:        internal.ErrBadRequest("Invalid JSON", internal.WithErrorCode("BAD_JSON")),
			wantStatus: http.StatusBadRequest,
			wantBody:   map[string]any{"error": "Invalid JSON", "code": "BAD_JSON"},
		},
		{
			name: "validation errors",
			err: validator.ValidationErrors{
				{Field: "to", Message: "to is required"},
			},
			wantStatus: http.StatusBadRequest,
			wantBody: map[string]any{
				"error":  "Validation failed",
				"fields": []any{map[string]any{"field": "to", "message": "to is required"}},
			},
		},
		{
			name:       "unknown error hides cause",
			err:        errors.New("db password leaked"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   map[string]any{"error": "Internal Server Error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			app := internal.New(internal.WithHandlers(routeFunc(func(r internal.Router) {
				r.GET("/fail", func(internal.Context) error { return tt.err })
			})))

			rec := httptest.NewRecorder()
			app.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body)
		})
	}
}
