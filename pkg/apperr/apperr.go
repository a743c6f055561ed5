// Package apperr defines the tagged error taxonomy shared by services,
// repositories, and the HTTP boundary.
//
// Every core operation returns either a success value or exactly one
// *apperr.Error. Controllers map the Kind to an HTTP status via Status();
// Dependency errors carry the underlying cause for logging but never
// expose it to the caller.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for boundary mapping.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindAuth
	KindDependency
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindAuth:
		return "auth"
	case KindDependency:
		return "dependency"
	}
	return "unknown"
}

// Error is a tagged application error.
type Error struct {
	Kind    Kind
	Message string // safe to show to the caller
	Fields  map[string]string
	Err     error // underlying cause, never exposed
	status  int   // optional explicit status override
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// WithStatus overrides the HTTP status derived from the Kind.
func (e *Error) WithStatus(code int) *Error {
	e.status = code
	return e
}

// Validation builds a client-input error (400).
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// ValidationFields builds a 422-style error carrying field-level messages.
func ValidationFields(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: "validation failed", Fields: fields}
}

// NotFound builds an entity-absent error (404).
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Conflict builds a uniqueness or invariant violation error (409 by default).
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// Auth builds a credential error (401). The message is deliberately
// uniform regardless of which check failed.
func Auth(msg string) *Error {
	return &Error{Kind: KindAuth, Message: msg}
}

// Dependency wraps a store or backend failure (500). msg is the safe
// public message; err is the real cause, kept for logs only.
func Dependency(msg string, err error) *Error {
	return &Error{Kind: KindDependency, Message: msg, Err: err}
}

// KindOf extracts the Kind from err, unwrapping as needed.
// Untagged errors are treated as dependency failures.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindDependency
}

// IsNotFound reports whether err is tagged KindNotFound.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// Status maps err to the HTTP status code the boundary should return.
func Status(err error) int {
	var ae *Error
	if !errors.As(err, &ae) {
		return http.StatusInternalServerError
	}
	if ae.status != 0 {
		return ae.status
	}
	switch ae.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindAuth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Public returns the caller-safe message for err. Dependency and untagged
// errors collapse to a generic message so internals never leak.
func Public(err error) string {
	var ae *Error
	if !errors.As(err, &ae) || ae.Kind == KindDependency || ae.Kind == KindUnknown {
		return "Internal server error"
	}
	return ae.Message
}
