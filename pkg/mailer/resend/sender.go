package resend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/resend/resend-go/v3"

	"github.com/dmitrymomot/mailforge/pkg/mailer"
)

// ProviderName identifies Resend in mailer.ProviderError.
const ProviderName = "resend"

// Sender implements mailer.Sender using the Resend API.
type Sender struct {
	client *resend.Client
	from   string
}

// Option configures a Sender.
type Option func(*Sender)

// WithBaseURL points the client at a different API endpoint.
func WithBaseURL(raw string) Option {
	return func(s *Sender) {
		if u, err := url.Parse(raw); err == nil {
			s.client.BaseURL = u
		}
	}
}

// New creates a Resend sender.
func New(cfg Config, opts ...Option) *Sender {
	httpClient := &http.Client{
		Timeout:   30 * time.Second,
		Transport: captureTransport{base: http.DefaultTransport},
	}

	s := &Sender{
		client: resend.NewCustomClient(httpClient, cfg.APIKey),
		from:   DefaultFrom,
	}
	if cfg.FromEmail != "" {
		s.from = mailer.Recipient(cfg.FromName, cfg.FromEmail)
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send implements mailer.Sender. Exactly one API request is made.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) (string, error) {
	from := email.From
	if from == "" {
		from = s.from
	}

	req := &resend.SendEmailRequest{
		From:    from,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
		ReplyTo: email.ReplyTo,
		Headers: email.Headers,
	}
	if len(email.Tags) > 0 {
		req.Tags = convertTags(email.Tags)
	}

	var captured apiError
	sent, err := s.client.Emails.SendWithContext(withCapture(ctx, &captured), req)
	if err != nil {
		return "", providerError(err, captured)
	}

	return sent.Id, nil
}

// providerError prefers the decoded API error body over the client's
// formatted error string.
func providerError(err error, captured apiError) *mailer.ProviderError {
	pe := &mailer.ProviderError{
		Provider:   ProviderName,
		Name:       captured.Name,
		Message:    captured.Message,
		StatusCode: captured.StatusCode,
	}
	if pe.Message == "" {
		pe.Message = strings.TrimPrefix(err.Error(), "[ERROR]: ")
	}
	return pe
}

func convertTags(tags mailer.Tags) []resend.Tag {
	result := make([]resend.Tag, 0, len(tags))
	for name, value := range tags {
		result = append(result, resend.Tag{
			Name:  name,
			Value: tagValue(value),
		})
	}
	return result
}

// tagValue converts any value to a string for Resend's tag API.
func tagValue(v any) string {
	switch val := v.(type) {
	case nil, struct{}:
		return "true"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
