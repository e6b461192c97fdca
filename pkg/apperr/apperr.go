// Package apperr defines the closed set of error kinds the API can surface.
// Services and repositories return *Error values; the HTTP boundary maps each
// kind to a status code exactly once, so no error category is flattened away.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error into one of the API's failure categories.
type Kind int

const (
	KindInternal Kind = iota
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindValidation
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation_failed"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error carries a kind, a human-readable message and optional per-field detail.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Unauthenticated reports a missing, invalid or expired credential.
func Unauthenticated(message string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

// Forbidden reports an authenticated caller whose role is not allowed.
func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// NotFound reports an absent entity.
func NotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Message: entity + " not found"}
}

// Validation reports a schema or business-rule violation.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Validationf formats a validation message.
func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// FieldErrors reports validation failures with per-field detail.
func FieldErrors(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: "Validation failed", Fields: fields}
}

// Conflict reports a uniqueness or database-constraint violation.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Internal wraps an unexpected failure.
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf extracts the kind from any error chain, defaulting to KindInternal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// FieldsOf extracts per-field detail from an error chain, if any.
func FieldsOf(err error) map[string]string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Fields
	}
	return nil
}
