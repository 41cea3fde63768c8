package provider

import (
	"errors"
	"fmt"
)

// ErrEmptyData is returned when an upstream response contains no usable
// payload. It is distinct from transport failures so callers can surface
// "no results" separately from "request failed".
var ErrEmptyData = errors.New("no results found; try adjusting the query parameters")

// ValidationError reports a parameter that failed query construction.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for a field.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// APIError is a non-2xx response from a vendor endpoint.
type APIError struct {
	Provider   string
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s api error %d: %s", e.Provider, e.StatusCode, string(e.Body))
}
