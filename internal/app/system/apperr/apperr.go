// Package apperr defines the failure kinds returned by the lifecycle services.
//
// Every kind is a sentinel that works with errors.Is. Services return an
// *Error carrying the kind plus a caller-facing message; the boundary decides
// how to render it. No kind is fatal: a failed operation leaves all records
// exactly as they were.
package apperr

import (
	"errors"
	"fmt"
)

// Failure kinds.
var (
	// ErrValidation: malformed or out-of-policy input (bad level, dates out of
	// order, quota exceeded, submission guard failed).
	ErrValidation = errors.New("validation failed")

	// ErrInvalidState: the entity is in the wrong lifecycle state for the operation.
	ErrInvalidState = errors.New("invalid state")

	// ErrNotFound: the referenced record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized: the acting user may not perform the operation.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNoRequestPending: a withdrawal decision was made with no request outstanding.
	ErrNoRequestPending = errors.New("no withdrawal request pending")
)

// Error is a typed failure. Kind is one of the sentinels above.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return e.Msg
}

// Is lets errors.Is(err, apperr.ErrValidation) and friends match.
func (e *Error) Is(target error) bool {
	return e.Kind == target
}

// Unwrap exposes the kind.
func (e *Error) Unwrap() error {
	return e.Kind
}

func newf(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Validation returns an ErrValidation failure.
func Validation(format string, args ...any) error {
	return newf(ErrValidation, format, args...)
}

// InvalidState returns an ErrInvalidState failure.
func InvalidState(format string, args ...any) error {
	return newf(ErrInvalidState, format, args...)
}

// NotFound returns an ErrNotFound failure.
func NotFound(format string, args ...any) error {
	return newf(ErrNotFound, format, args...)
}

// Unauthorized returns an ErrUnauthorized failure.
func Unauthorized(format string, args ...any) error {
	return newf(ErrUnauthorized, format, args...)
}

// NoRequestPending returns an ErrNoRequestPending failure.
func NoRequestPending(format string, args ...any) error {
	return newf(ErrNoRequestPending, format, args...)
}

// KindOf returns the sentinel kind of err, or nil when err is not an app failure.
func KindOf(err error) error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	for _, k := range []error{ErrValidation, ErrInvalidState, ErrNotFound, ErrUnauthorized, ErrNoRequestPending} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
