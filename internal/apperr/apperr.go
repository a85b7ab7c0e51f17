// Package apperr defines the error kinds the chat service exposes to its callers.
// Every error crossing a service boundary either is, or wraps, one of the
// sentinel kinds below, so callers branch with errors.Is.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrForbidden  = errors.New("forbidden")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrAuth       = errors.New("unauthorized")
)

// Error carries a caller-facing message together with its kind.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Kind }

func newf(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) error { return newf(ErrValidation, format, args...) }
func Forbidden(format string, args ...any) error  { return newf(ErrForbidden, format, args...) }
func NotFound(format string, args ...any) error   { return newf(ErrNotFound, format, args...) }
func Conflict(format string, args ...any) error   { return newf(ErrConflict, format, args...) }
func Auth(format string, args ...any) error       { return newf(ErrAuth, format, args...) }

// Kind returns the sentinel kind of err, or nil when err is not classified.
func Kind(err error) error {
	for _, k := range []error{ErrValidation, ErrForbidden, ErrNotFound, ErrConflict, ErrAuth} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
