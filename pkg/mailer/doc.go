// Package mailer dispatches a single rendered email to a delivery provider.
//
// The package separates local checks from the provider call. A [Mailer]
// rejects messages without a recipient or HTML body before any network
// traffic, fills in the default subject, then calls its [Sender] exactly
// once. Providers live in subpackages; see mailer/resend.
//
// # Usage
//
//	sender := resend.New(resend.Config{
//	    APIKey:    os.Getenv("RESEND_API_KEY"),
//	    FromEmail: "no-reply@example.com",
//	    FromName:  "Demo App",
//	})
//	m := mailer.New(sender, mailer.Config{})
//
//	outcome, err := m.Deliver(ctx, mailer.Message{
//	    To:   "ada@example.com",
//	    HTML: html,
//	})
//	if err != nil {
//	    if outcome != nil && outcome.Err != nil {
//	        // outcome.Err.Message is the provider's own error text
//	    }
//	    return err
//	}
//	log.Println("sent", outcome.MessageID)
//
// # Errors
//
//   - ErrNoRecipient: no recipient, provider not called
//   - ErrNoContent: empty HTML, provider not called
//   - ErrSendFailed: provider call failed, joined with a *ProviderError
package mailer
