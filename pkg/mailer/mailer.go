package mailer

import (
	"context"
	"errors"
	"strings"
)

// Mailer validates a Message locally and hands it to a Sender.
type Mailer struct {
	sender Sender
	config Config
}

// New creates a Mailer with the given sender.
func New(sender Sender, cfg Config) *Mailer {
	if cfg.Subject == "" {
		cfg.Subject = DefaultSubject
	}
	return &Mailer{sender: sender, config: cfg}
}

// Deliver sends msg with a single provider call. It never retries.
//
// ErrNoRecipient and ErrNoContent are returned before the provider is
// contacted. A provider failure returns an Outcome whose Err holds the
// provider detail, together with an error joining ErrSendFailed.
func (m *Mailer) Deliver(ctx context.Context, msg Message) (*Outcome, error) {
	to := strings.TrimSpace(msg.To)
	if to == "" {
		return nil, ErrNoRecipient
	}
	if strings.TrimSpace(msg.HTML) == "" {
		return nil, ErrNoContent
	}

	subject := msg.Subject
	if subject == "" {
		subject = m.config.Subject
	}

	email := &Email{
		To:      []string{to},
		Subject: subject,
		HTML:    msg.HTML,
		Text:    msg.Text,
		ReplyTo: m.config.ReplyTo,
		Tags:    msg.Tags,
	}

	id, err := m.sender.Send(ctx, email)
	if err != nil {
		pe := AsProviderError(err)
		return &Outcome{Err: pe}, errors.Join(ErrSendFailed, pe)
	}

	return &Outcome{Accepted: true, MessageID: id}, nil
}
