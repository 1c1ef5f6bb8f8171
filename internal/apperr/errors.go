// Package apperr defines the failure taxonomy shared by the request pipeline.
// Handlers never inspect these types themselves; the error-normalization
// middleware in internal/handlers is the single place they are mapped to HTTP
// status codes.
package apperr

import "fmt"

// MalformedPayloadError indicates a request body that could not be decoded
// (invalid JSON syntax or a type mismatch against the target shape).
type MalformedPayloadError struct {
	Err error
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("malformed request payload: %v", e.Err)
}

func (e *MalformedPayloadError) Unwrap() error {
	return e.Err
}

// ValidationError indicates a business-rule violation. Not-found conditions are
// deliberately raised through this type as well: the composite-key lookup
// failing is treated as a misuse signal, not a distinct not-found class.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError with a formatted message. The
// message is user-visible (it becomes the 400 response body).
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// UnauthenticatedError indicates the caller-identity claims were missing from
// the request context. It carries no dedicated status mapping.
type UnauthenticatedError struct {
	Message string
}

func (e *UnauthenticatedError) Error() string {
	return e.Message
}

// CorruptRecordError indicates a persisted item is missing one of the fixed
// required fields, which is a persistence-layer invariant violation rather
// than a normal business error.
type CorruptRecordError struct {
	Field string
}

func (e *CorruptRecordError) Error() string {
	return fmt.Sprintf("corrupt listing record: missing required field %q", e.Field)
}
