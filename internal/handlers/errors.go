package handlers

import (
	"errors"
	"slices"
	"strings"

	"github.com/dmitrymomot/mailforge/internal"
	"github.com/dmitrymomot/mailforge/internal/welcome"
	"github.com/dmitrymomot/mailforge/middlewares"
	"github.com/dmitrymomot/mailforge/pkg/mailer"
	"github.com/dmitrymomot/mailforge/pkg/validator"
)

// ErrorHandler maps pipeline errors to HTTP responses and tags them with
// the request ID before handing off to internal.DefaultErrorHandler.
//
//	malformed JSON, bad design     400 {error}
//	validation failure             400 {error: "Missing required fields: to, ...", fields}
//	render failure                 500 {error: "Failed to render email"}
//	provider failure               500 {error: "Failed to send email", details}
func ErrorHandler(c internal.Context, err error) error {
	return internal.DefaultErrorHandler(c, mapError(err, middlewares.GetRequestID(c)))
}

func mapError(err error, requestID string) error {
	opts := []internal.HTTPErrorOption{internal.WithError(err)}
	if requestID != "" {
		opts = append(opts, internal.WithRequestID(requestID))
	}

	switch {
	case internal.IsHTTPError(err):
		httpErr := internal.AsHTTPError(err)
		if httpErr.RequestID == "" {
			httpErr.RequestID = requestID
		}
		return httpErr
	case errors.Is(err, internal.ErrInvalidJSON):
		return internal.ErrBadRequest("Invalid JSON body", opts...)
	case errors.Is(err, welcome.ErrInvalidDesign):
		return internal.ErrBadRequest("Invalid design", opts...)
	case validator.IsValidationError(err):
		ve := validator.ExtractValidationErrors(err)
		return internal.ErrBadRequest(validationMessage(ve), append(opts, internal.WithFields(ve))...)
	case errors.Is(err, mailer.ErrNoRecipient), errors.Is(err, mailer.ErrNoContent):
		return internal.ErrBadRequest(err.Error(), opts...)
	case errors.Is(err, welcome.ErrRender):
		return internal.ErrInternal("Failed to render email", opts...)
	case errors.Is(err, mailer.ErrSendFailed):
		return internal.ErrInternal("Failed to send email", append(opts, internal.WithDetails(mailer.AsProviderError(err)))...)
	}
	return err
}

// validationMessage names the failing fields. Absent values are reported
// as missing; anything else (a malformed address, an overlong name) as invalid.
func validationMessage(ve validator.ValidationErrors) string {
	var missing, invalid []string
	for _, e := range ve {
		switch e.TranslationKey {
		case "validation.required", "validation.required_without":
			missing = appendOnce(missing, e.Field)
		default:
			invalid = appendOnce(invalid, e.Field)
		}
	}

	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "Missing required fields: "+strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		parts = append(parts, "Invalid fields: "+strings.Join(invalid, ", "))
	}
	return strings.Join(parts, "; ")
}

func appendOnce(list []string, v string) []string {
	if slices.Contains(list, v) {
		return list
	}
	return append(list, v)
}
