package apperrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common errors
var (
	ErrRecordNotFound     = errors.New("student onboarding record not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrValidationFailed   = errors.New("validation failed")
	ErrBadRequest         = errors.New("bad request")
)

// NonFieldErrors is the key used for validation failures that span more
// than one field (age derived from date_of_birth, income sign check).
const NonFieldErrors = "non_field_errors"

// ValidationError aggregates validation failures as a map from field name
// to the list of human-readable messages for that field. All failures are
// collected before the error is surfaced; callers never see only the first.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError creates an empty ValidationError
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// Add appends a message for the given field
func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Fields[field] = append(e.Fields[field], message)
	return e
}

// Has reports whether the given field has at least one message
func (e *ValidationError) Has(field string) bool {
	return len(e.Fields[field]) > 0
}

// HasErrors reports whether any field has a message
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// ErrOrNil returns e as an error, or nil when no messages were collected.
// Returning a typed nil pointer through an error interface would compare
// non-nil, so callers must use this instead of returning e directly.
func (e *ValidationError) ErrOrNil() error {
	if e == nil || !e.HasErrors() {
		return nil
	}
	return e
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}

// Unwrap lets errors.Is match ErrValidationFailed
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// AsValidationError extracts a *ValidationError from an error chain
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
