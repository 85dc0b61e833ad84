package internal

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/mailforge/pkg/validator"
)

// ErrInvalidJSON is returned by BindJSON when the body is not valid JSON.
var ErrInvalidJSON = errors.New("invalid JSON body")

// HTTPError is an error that knows how it should be rendered.
type HTTPError struct {
	// Err is the underlying error (for logging, not exposed to users).
	Err error

	// Details is optional structured context, rendered as "details".
	Details any

	// Message is the user-facing error message.
	Message string

	// ErrorCode is an application-specific code for client handling.
	ErrorCode string

	// RequestID is the request tracking ID.
	RequestID string

	// Fields lists failed validation rules, rendered as "fields".
	Fields validator.ValidationErrors

	// Code is the HTTP status code.
	Code int
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func (e *HTTPError) StatusCode() int {
	return e.Code
}

// HTTPErrorOption configures an HTTPError.
type HTTPErrorOption func(*HTTPError)

// NewHTTPError creates an HTTPError with the given status code and message.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	e := &HTTPError{Code: code, Message: message}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func WithDetails(details any) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Details = details
	}
}

func WithFields(fields validator.ValidationErrors) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Fields = fields
	}
}

func WithErrorCode(code string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.ErrorCode = code
	}
}

func WithRequestID(id string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.RequestID = id
	}
}

func WithError(err error) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Err = err
	}
}

// Convenience constructors for the statuses the service returns.

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message, opts...)
}

func ErrMethodNotAllowed(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusMethodNotAllowed, message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, message, opts...)
}

func ErrServiceUnavailable(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusServiceUnavailable, message, opts...)
}

// IsHTTPError reports whether err wraps an HTTPError.
func IsHTTPError(err error) bool {
	return AsHTTPError(err) != nil
}

// AsHTTPError extracts the HTTPError from err, or returns nil.
func AsHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return nil
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Details   any                        `json:"details,omitempty"`
	Error     string                     `json:"error"`
	Code      string                     `json:"code,omitempty"`
	RequestID string                     `json:"request_id,omitempty"`
	Fields    validator.ValidationErrors `json:"fields,omitempty"`
}

// DefaultErrorHandler renders errors as JSON.
// HTTPErrors keep their status and message; ValidationErrors become 400;
// anything else is logged and rendered as a generic 500.
func DefaultErrorHandler(c Context, err error) error {
	if httpErr := AsHTTPError(err); httpErr != nil {
		if httpErr.Code >= http.StatusInternalServerError {
			c.LogError("request failed", "status", httpErr.Code, "error", err)
		}
		return c.JSON(httpErr.Code, errorBody{
			Error:     httpErr.Message,
			Code:      httpErr.ErrorCode,
			RequestID: httpErr.RequestID,
			Details:   httpErr.Details,
			Fields:    httpErr.Fields,
		})
	}

	if ve := validator.ExtractValidationErrors(err); ve != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "Validation failed", Fields: ve})
	}

	c.LogError("unhandled error", "error", err)
	return c.JSON(http.StatusInternalServerError, errorBody{Error: http.StatusText(http.StatusInternalServerError)})
}
