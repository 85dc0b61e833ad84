package mailer

import (
	"errors"
	"fmt"
)

var (
	// ErrNoRecipient indicates no recipient was specified.
	ErrNoRecipient = errors.New("email must have at least one recipient")

	// ErrNoContent indicates no HTML content was provided.
	ErrNoContent = errors.New("email must have HTML content")

	// ErrSendFailed indicates the provider rejected the message or could not be reached.
	ErrSendFailed = errors.New("failed to send email")
)

// ProviderError carries the provider's failure detail as reported.
type ProviderError struct {
	Provider   string `json:"provider"`
	Message    string `json:"message"`
	Name       string `json:"name,omitempty"`
	StatusCode int    `json:"statusCode,omitempty"`
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Provider, e.Message, e.StatusCode)
	}
	return e.Provider + ": " + e.Message
}

// AsProviderError returns the ProviderError carried by err.
// Errors that are not ProviderErrors are wrapped with provider set to "unknown".
func AsProviderError(err error) *ProviderError {
	if err == nil {
		return nil
	}
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe
	}
	return &ProviderError{Provider: "unknown", Message: err.Error()}
}
