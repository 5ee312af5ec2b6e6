// Package apperr defines the error taxonomy shared by all core components.
// The HTTP layer maps kinds to status codes; the core never produces a
// transport status itself.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a recoverable failure reported to the caller.
type Kind int

const (
	// KindNotFound means a referenced user or wallet does not exist.
	KindNotFound Kind = iota
	// KindConflict covers duplicate mail, duplicate wallet-in-slot and
	// same-wallet transfers.
	KindConflict
	// KindResourceExhausted means all three wallet slots are occupied.
	KindResourceExhausted
	// KindInvalidInput covers malformed mail and insufficient balance.
	KindInvalidInput
	// KindUnauthorized means the caller does not own the target wallet.
	KindUnauthorized
	// KindUnavailable wraps unexpected storage faults (connectivity,
	// corruption). Retried at most once at the boundary.
	KindUnavailable
)

// Error carries a kind plus enough context to render a user-facing message.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error of the given kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind to an underlying error.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// NotFound reports a missing user or wallet.
func NotFound(format string, args ...any) *Error {
	return New(KindNotFound, format, args...)
}

// Conflict reports a duplicate or self-referential operation.
func Conflict(format string, args ...any) *Error {
	return New(KindConflict, format, args...)
}

// Exhausted reports that no wallet slots remain.
func Exhausted(format string, args ...any) *Error {
	return New(KindResourceExhausted, format, args...)
}

// Invalid reports malformed or unacceptable input.
func Invalid(format string, args ...any) *Error {
	return New(KindInvalidInput, format, args...)
}

// Unauthorized reports a caller acting on a wallet it does not own.
func Unauthorized(format string, args ...any) *Error {
	return New(KindUnauthorized, format, args...)
}

// Unavailable wraps a storage fault.
func Unavailable(err error, format string, args ...any) *Error {
	return Wrap(KindUnavailable, err, format, args...)
}

// IsKind reports whether err (or anything it wraps) is an Error of kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// KindOf extracts the kind of err, with ok=false for untyped errors.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
