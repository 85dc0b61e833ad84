package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
)

// apiError mirrors the error body returned by the Resend API.
type apiError struct {
	Name       string `json:"name"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

type captureKey struct{}

// withCapture returns a context that makes captureTransport record the
// provider's error response into dst.
func withCapture(ctx context.Context, dst *apiError) context.Context {
	return context.WithValue(ctx, captureKey{}, dst)
}

// captureTransport records the status and decoded error body of failed
// responses. The body is restored so the client can still read it.
type captureTransport struct {
	base http.RoundTripper
}

func (t captureTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil || resp.StatusCode < 400 {
		return resp, err
	}

	dst, ok := req.Context().Value(captureKey{}).(*apiError)
	if !ok {
		return resp, nil
	}

	body, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(body))
	if readErr != nil {
		return resp, nil
	}

	_ = json.Unmarshal(body, dst)
	dst.StatusCode = resp.StatusCode
	return resp, nil
}
