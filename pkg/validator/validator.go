package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	playground "github.com/go-playground/validator/v10"
)

var (
	engine   *playground.Validate
	initOnce sync.Once
)

func instance() *playground.Validate {
	initOnce.Do(func() {
		engine = playground.New(playground.WithRequiredStructEnabled())
		// Report JSON field names instead of Go field names.
		engine.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			switch name {
			case "-":
				return ""
			case "":
				return f.Name
			}
			return name
		})
	})
	return engine
}

// ValidateStruct checks v against its `validate` struct tags.
// Rule violations are returned as ValidationErrors; any other failure
// (for example a non-struct argument) is joined with ErrInvalidInput.
func ValidateStruct(v any) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Join(ErrInvalidInput, err)
	}

	out := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, fromFieldError(fe))
	}
	return out
}

// fromFieldError converts a playground error into a human-readable ValidationError.
func fromFieldError(fe playground.FieldError) ValidationError {
	field := fieldPath(fe)
	param := fe.Param()
	values := map[string]any{"field": field}

	var key, msg string
	switch fe.Tag() {
	case "required":
		key, msg = "validation.required", field+" is required"
	case "required_without":
		other := strings.ToLower(param)
		values["other"] = other
		key, msg = "validation.required_without", fmt.Sprintf("%s is required when %s is empty", field, other)
	case "email":
		key, msg = "validation.email", field+" must be a valid email address"
	case "url", "http_url":
		key, msg = "validation.url", field+" must be a valid URL"
	case "max":
		values["max"] = param
		key, msg = "validation.max_length", fmt.Sprintf("%s must not exceed %s characters", field, param)
	case "min":
		values["min"] = param
		key, msg = "validation.min_length", fmt.Sprintf("%s must be at least %s characters long", field, param)
	case "oneof":
		values["values"] = param
		key, msg = "validation.one_of", fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	default:
		values["rule"] = fe.Tag()
		key, msg = "validation.invalid", field+" is invalid"
	}

	return ValidationError{
		Field:             field,
		Message:           msg,
		TranslationKey:    key,
		TranslationValues: values,
	}
}

// fieldPath drops the root struct name from the namespace: "Req.blocks[0].kind" -> "blocks[0].kind".
func fieldPath(fe playground.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}
