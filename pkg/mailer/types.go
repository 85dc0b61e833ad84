package mailer

import "fmt"

// Tags label a message at the provider. A value of struct{}{} is a
// presence-only tag; providers that need name/value pairs render it as "true".
type Tags map[string]any

// SimpleTags creates presence-only tags from a list of names.
func SimpleTags(names ...string) Tags {
	t := make(Tags, len(names))
	for _, n := range names {
		t[n] = struct{}{}
	}
	return t
}

// Recipient formats a name and address as "Name <email>".
// Returns just the address when name is empty.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// Message is what callers hand to Mailer.Deliver.
type Message struct {
	Tags    Tags
	To      string
	Subject string // falls back to Config.Subject
	HTML    string
	Text    string // optional plain-text alternative
}

// Email is the provider-facing payload built from a Message.
type Email struct {
	Headers map[string]string
	Tags    Tags
	From    string // empty means the provider's configured sender
	Subject string
	HTML    string
	Text    string
	ReplyTo string
	To      []string
}

// Outcome is the result of exactly one delivery attempt.
type Outcome struct {
	Err       *ProviderError `json:"error,omitempty"`
	MessageID string         `json:"id,omitempty"`
	Accepted  bool           `json:"accepted"`
}
