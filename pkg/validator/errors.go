package validator

import (
	"errors"
	"slices"
	"strings"
)

// ErrInvalidInput indicates the value could not be validated at all.
var ErrInvalidInput = errors.New("validator: invalid input")

// ValidationError describes a single failed rule.
type ValidationError struct {
	TranslationValues map[string]any `json:"-"`
	Field             string         `json:"field"`
	Message           string         `json:"message"`
	TranslationKey    string         `json:"-"`
}

// ValidationErrors is a collection of failed rules. It implements error.
type ValidationErrors []ValidationError

// Error joins all messages with "; ".
func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Message
	}
	return strings.Join(msgs, "; ")
}

// Has reports whether any error refers to field.
func (e ValidationErrors) Has(field string) bool {
	return slices.ContainsFunc(e, func(ve ValidationError) bool { return ve.Field == field })
}

// Fields returns the distinct failing field names in order of appearance.
func (e ValidationErrors) Fields() []string {
	out := make([]string, 0, len(e))
	for _, ve := range e {
		if !slices.Contains(out, ve.Field) {
			out = append(out, ve.Field)
		}
	}
	return out
}

// TranslateFunc resolves a translation key with placeholder values.
type TranslateFunc func(key string, values map[string]any) string

// Translate rewrites messages in place using fn.
// Errors without a TranslationKey are left untouched. A nil fn is a no-op.
func (e ValidationErrors) Translate(fn TranslateFunc) {
	if fn == nil {
		return
	}
	for i := range e {
		if e[i].TranslationKey == "" {
			continue
		}
		e[i].Message = fn(e[i].TranslationKey, e[i].TranslationValues)
	}
}

// IsValidationError reports whether err carries ValidationErrors.
func IsValidationError(err error) bool {
	var ve ValidationErrors
	return errors.As(err, &ve)
}

// ExtractValidationErrors returns the ValidationErrors carried by err, or nil.
func ExtractValidationErrors(err error) ValidationErrors {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
