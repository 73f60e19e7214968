package types

import (
	"errors"
	"fmt"
)

// ErrorKind enumerates every failure class the API can surface. All
// component-level failures are constructed as one of these kinds at the
// point of detection; the HTTP layer owns the kind-to-status mapping.
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindNotFound     ErrorKind = "not_found"
	KindConflict     ErrorKind = "conflict"
	KindInternal     ErrorKind = "internal"
)

// FieldError describes a single invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError is the closed error variant carried through every layer of the
// pipeline. Callers match on Kind, never on message text.
type AppError struct {
	Kind    ErrorKind
	Message string
	Fields  []FieldError
	cause   error
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error { return e.cause }

func NewValidation(message string, fields ...FieldError) *AppError {
	return &AppError{Kind: KindValidation, Message: message, Fields: fields}
}

func NewUnauthorized(message string) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: message}
}

func NewForbidden(message string) *AppError {
	return &AppError{Kind: KindForbidden, Message: message}
}

func NewNotFound(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func NewConflict(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

// IsKind reports whether err carries the given kind. Errors outside the
// taxonomy count as KindInternal.
func IsKind(err error, kind ErrorKind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return kind == KindInternal
}

// NewInternal wraps an unexpected failure. The wrapped cause is kept for
// logs; only the generic message ever reaches a client.
func NewInternal(message string, cause error) *AppError {
	return &AppError{Kind: KindInternal, Message: message, cause: cause}
}
