package mailer

import "context"

// Sender is the minimal interface that email providers implement.
type Sender interface {
	// Send performs a single delivery call and returns the provider's message ID.
	// Failures should be reported as *ProviderError so the detail survives.
	Send(ctx context.Context, email *Email) (string, error)
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(ctx context.Context, email *Email) (string, error)

// Send implements Sender.
func (f SenderFunc) Send(ctx context.Context, email *Email) (string, error) {
	return f(ctx, email)
}
