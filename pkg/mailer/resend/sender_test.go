package resend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailforge/pkg/mailer"
)

func newTestServer(t *testing.T, status int, body any, calls *atomic.Int32, got *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if got != nil {
			_ = json.NewDecoder(r.Body).Decode(got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSender_Send_Success(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	var got map[string]any
	srv := newTestServer(t, http.StatusOK, map[string]string{"id": "msg_123"}, &calls, &got)

	s := New(Config{APIKey: "re_test"}, WithBaseURL(srv.URL))
	id, err := s.Send(context.Background(), &mailer.Email{
		To:      []string{"ada@example.com"},
		Subject: "Welcome to Our Platform!",
		HTML:    "<p>Hello</p>",
		Tags:    mailer.SimpleTags("welcome"),
	})

	require.NoError(t, err)
	assert.Equal(t, "msg_123", id)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, DefaultFrom, got["from"])
	assert.Equal(t, "Welcome to Our Platform!", got["subject"])
	assert.Equal(t, []any{"ada@example.com"}, got["to"])
}

func TestSender_Send_ConfiguredFrom(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	var got map[string]any
	srv := newTestServer(t, http.StatusOK, map[string]string{"id": "msg_1"}, &calls, &got)

	s := New(Config{APIKey: "re_test", FromEmail: "hello@example.com", FromName: "Example"}, WithBaseURL(srv.URL))
	_, err := s.Send(context.Background(), &mailer.Email{To: []string{"ada@example.com"}, HTML: "<p>x</p>"})

	require.NoError(t, err)
	assert.Equal(t, "Example <hello@example.com>", got["from"])
}

func TestSender_Send_ProviderError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := newTestServer(t, http.StatusUnprocessableEntity, map[string]any{
		"statusCode": 422,
		"name":       "validation_error",
		"message":    "Invalid `to` field.",
	}, &calls, nil)

	s := New(Config{APIKey: "re_test"}, WithBaseURL(srv.URL))
	id, err := s.Send(context.Background(), &mailer.Email{To: []string{"bad"}, HTML: "<p>x</p>"})

	require.Error(t, err)
	assert.Empty(t, id)
	assert.Equal(t, int32(1), calls.Load())

	var pe *mailer.ProviderError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, ProviderName, pe.Provider)
	assert.Equal(t, "validation_error", pe.Name)
	assert.Equal(t, "Invalid `to` field.", pe.Message)
	assert.Equal(t, http.StatusUnprocessableEntity, pe.StatusCode)
}

func TestTagValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   any
		want string
	}{
		{struct{}{}, "true"},
		{nil, "true"},
		{"welcome", "welcome"},
		{false, "false"},
		{42, "42"},
		{3.5, "3.5"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tagValue(tt.in))
	}
}
