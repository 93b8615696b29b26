// Package apperr defines the error taxonomy shared by the stores, the
// attachment lifecycle and the HTTP layer. Handlers map each Kind to one
// HTTP status; everything below the handlers speaks Kinds, not statuses.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the transport layer.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindUnsupportedMedia
	KindPayloadTooLarge
	KindStorage
	KindDatabase
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnsupportedMedia:
		return "unsupported_media"
	case KindPayloadTooLarge:
		return "payload_too_large"
	case KindStorage:
		return "storage"
	case KindDatabase:
		return "database"
	}
	return "unknown"
}

// FieldError pins a validation failure to one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the one error type the rest of the system produces and inspects.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError

	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// Validation builds a client-input error, optionally with per-field detail.
func Validation(message string, fields ...FieldError) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// NotFound names the missing entity and the key it was looked up by.
func NotFound(entity string, key interface{}) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s %v not found", entity, key),
	}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// KindOf extracts the Kind from an error chain, KindUnknown if none.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// IsKind reports whether the error chain carries the given Kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
