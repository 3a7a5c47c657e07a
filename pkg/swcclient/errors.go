package swcclient

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is a 404 from the API. Never retried.
	ErrNotFound = errors.New("swcclient: not found")
	// ErrValidation covers rejected requests and response bodies that do not fit the schema.
	ErrValidation = errors.New("swcclient: validation failed")
	// ErrTransient covers network failures and 5xx responses.
	ErrTransient = errors.New("swcclient: transient failure")
)

// FieldError mirrors one entry of the API's field_errors list.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is a non-2xx response. It unwraps to one of the sentinel errors above.
type APIError struct {
	StatusCode  int
	Method      string
	URL         string
	Detail      string
	FieldErrors []FieldError
	kind        error
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.StatusCode, e.Detail)
}

func (e *APIError) Unwrap() error { return e.kind }

// ValidationError names the field of a response body or bulk row that failed to decode or validate.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("swcclient: invalid response: %v", e.Err)
	}
	return fmt.Sprintf("swcclient: invalid field %q: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() []error { return []error{ErrValidation, e.Err} }

func kindForStatus(status int) error {
	switch {
	case status == 404:
		return ErrNotFound
	case status >= 500:
		return ErrTransient
	default:
		return ErrValidation
	}
}

// IsRetryable is the default retry predicate: transport failures and 5xx only.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTransient)
}
