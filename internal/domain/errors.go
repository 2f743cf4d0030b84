package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain error. The presentation layer maps kinds to
// transport status codes; the core never encodes transport codes itself.
type ErrorKind string

const (
	KindValidation        ErrorKind = "validation"
	KindInvalidInterval   ErrorKind = "invalid_interval"
	KindConflict          ErrorKind = "conflict"
	KindInvalidTransition ErrorKind = "invalid_transition"
	KindForbidden         ErrorKind = "forbidden"
	KindNotFound          ErrorKind = "not_found"
	KindUpstream          ErrorKind = "upstream"
	KindStorage           ErrorKind = "storage"
)

// Error is a kind-tagged domain error.
type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// NewValidationError reports invalid input that is not an interval problem.
func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// NewInvalidIntervalError reports a time range that fails start < end or policy checks.
func NewInvalidIntervalError(message string) *Error {
	return &Error{Kind: KindInvalidInterval, Message: message}
}

// NewConflictError reports an overlap with an existing active booking or window.
func NewConflictError(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// NewInvalidStateError reports an illegal status transition.
func NewInvalidStateError(from, to string) *Error {
	return &Error{
		Kind:    KindInvalidTransition,
		Message: fmt.Sprintf("cannot transition from '%s' to '%s'", from, to),
	}
}

// NewForbiddenError reports an authorization failure.
func NewForbiddenError(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// NewNotFoundError reports a missing entity.
func NewNotFoundError(entity, id string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s not found: %s", entity, id)}
}

// NewUpstreamError reports a failure of an external collaborator service.
func NewUpstreamError(service string, cause error) *Error {
	return &Error{Kind: KindUpstream, Message: fmt.Sprintf("upstream %s failed", service), cause: cause}
}

// NewStorageError reports a persistence failure. Never swallowed; always
// surfaces to the caller as a retryable failure.
func NewStorageError(cause error) *Error {
	return &Error{Kind: KindStorage, Message: "storage failure", cause: cause}
}

// KindOf returns the kind of err, or "" if err is not a domain error.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
