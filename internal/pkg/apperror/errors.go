package apperror

import (
	"errors"
	"fmt"
)

// Error kinds. Match with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrInvalidState = errors.New("invalid state")
	ErrInternal     = errors.New("internal error")
)

// Error carries a client-safe message and the kind it belongs to.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

func NotFound(format string, args ...interface{}) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...interface{}) error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func InvalidState(format string, args ...interface{}) error {
	return &Error{Kind: ErrInvalidState, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps an unexpected failure. The cause is kept for logs only.
func Internal(cause error, format string, args ...interface{}) error {
	return &Error{Kind: ErrInternal, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Message returns the client-facing message of err, or "" when err is not an *Error.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return ""
}

func IsNotFound(err error) bool     { return errors.Is(err, ErrNotFound) }
func IsValidation(err error) bool   { return errors.Is(err, ErrValidation) }
func IsInvalidState(err error) bool { return errors.Is(err, ErrInvalidState) }
