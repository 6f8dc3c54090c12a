package afl

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedMatch reports a table fragment that is neither a played match nor a bye.
	ErrMalformedMatch = errors.New("invalid match markup")

	// ErrMalformedField reports a sub-field (score, date, attendance, venue) that could not
	// be read once the fragment was known to be a match.
	ErrMalformedField = errors.New("malformed field")
)

// FieldError describes a single field that failed to parse
type FieldError struct {
	Field string
	Value string
	Err   error
}

// NewFieldError creates a FieldError for the named field
func NewFieldError(field, value string, err error) *FieldError {
	return &FieldError{Field: field, Value: value, Err: err}
}

func (e *FieldError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("parsing %s %q", e.Field, e.Value)
	}
	return fmt.Sprintf("parsing %s %q: %v", e.Field, e.Value, e.Err)
}

// Unwrap exposes both the ErrMalformedField sentinel and the underlying cause
func (e *FieldError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedField}
	}
	return []error{ErrMalformedField, e.Err}
}
